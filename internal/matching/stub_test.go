package matching

import (
	"context"
	"fmt"
	"sync"
)

// stubEmbedder returns fixed vectors per text and records every call.
type stubEmbedder struct {
	mu       sync.Mutex
	vectors  map[string]Vector
	fallback Vector
	errs     map[string]error
	calls    []string
}

func newStubEmbedder(fallback Vector) *stubEmbedder {
	return &stubEmbedder{
		vectors:  make(map[string]Vector),
		errs:     make(map[string]error),
		fallback: fallback,
	}
}

func (s *stubEmbedder) Embed(_ context.Context, text string) (Vector, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, text)
	if err, ok := s.errs[text]; ok {
		return nil, err
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	if s.fallback == nil {
		return nil, fmt.Errorf("no vector for %q", text)
	}
	return s.fallback, nil
}

func (s *stubEmbedder) callCount(text string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c == text {
			n++
		}
	}
	return n
}

type stubExtractor struct {
	tokens []string
	err    error
}

func (s *stubExtractor) Extract(context.Context, string) ([]string, error) {
	return s.tokens, s.err
}
