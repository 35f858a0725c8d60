package embedding

// DefaultFastEmbedModel is the local model used when none is configured.
const DefaultFastEmbedModel = "BAAI/bge-small-en-v1.5"

var fastEmbedDimensions = map[string]int{
	"BAAI/bge-small-en-v1.5":                 384,
	"BAAI/bge-small-en":                      384,
	"BAAI/bge-base-en-v1.5":                  768,
	"BAAI/bge-base-en":                       768,
	"sentence-transformers/all-MiniLM-L6-v2": 384,
}

// FastEmbedDimension reports the output dimension of a known local model.
func FastEmbedDimension(model string) (int, bool) {
	if model == "" {
		model = DefaultFastEmbedModel
	}
	dim, ok := fastEmbedDimensions[model]
	return dim, ok
}
