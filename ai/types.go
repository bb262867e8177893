package ai

// EmbeddingDimensions is the fixed width of embedding vectors produced and
// consumed across the system. All stored vectors and query vectors share it.
const EmbeddingDimensions = 384

// ZeroVector returns an all-zero embedding of the standard width.
// It is the degraded-mode stand-in when an embedding cannot be generated;
// cosine similarity against it is defined as 0.
func ZeroVector() []float32 {
	return make([]float32, EmbeddingDimensions)
}
