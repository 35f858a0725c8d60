package cmd

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/talent-matcher/internal/matching"
)

// applyWeightOverrides decodes --weight key=value pairs over w. Keys use the
// config file names (text-similarity, skills-match, experience).
func applyWeightOverrides(w *matching.Weights, overrides map[string]string) error {
	if len(overrides) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           w,
	})
	if err != nil {
		return fmt.Errorf("creating weights decoder: %w", err)
	}

	if err := decoder.Decode(overrides); err != nil {
		return fmt.Errorf("decoding --weight: %w", err)
	}
	return nil
}
