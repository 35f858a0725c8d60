// Package embedding provides text embedders for profile building: an offline
// feature-hashing embedder, a local ONNX model through fastembed and decorators
// adding memoisation and metrics to any matching.Embedder.
package embedding
