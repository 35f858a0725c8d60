package matching

import "fmt"

// InputError represents malformed caller input.
type InputError struct {
	Field       string
	Message     string
	CandidateID string
}

func (e *InputError) Error() string {
	msg := fmt.Sprintf("invalid input: %s", e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("invalid input in %s: %s", e.Field, e.Message)
	}
	if e.CandidateID != "" {
		msg = fmt.Sprintf("%s (candidate %q)", msg, e.CandidateID)
	}
	return msg
}

// ConfigurationError represents invalid scoring configuration, such as weights
// that are negative or do not sum to one.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Message)
}

// DimensionMismatchError is returned when vectors of different length are compared.
type DimensionMismatchError struct {
	Left  int
	Right int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: %d != %d", e.Left, e.Right)
}

// EmbeddingError represents a failure of the embedding provider.
type EmbeddingError struct {
	Message string
	Cause   error
}

func (e *EmbeddingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding failed: %s", e.Message)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Cause
}

// ExtractionError represents a failure of the requirement extractor.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("requirement extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("requirement extraction failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// CandidateError attaches the offending candidate id to an error raised while
// scoring that candidate.
type CandidateError struct {
	CandidateID string
	Err         error
}

func (e *CandidateError) Error() string {
	return fmt.Sprintf("candidate %q: %v", e.CandidateID, e.Err)
}

func (e *CandidateError) Unwrap() error {
	return e.Err
}
