package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hannakb/NevisSearchAPI/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements ai.Embedder using OpenAI-compatible embedding APIs.
//
// Embedding is best-effort: service failures are logged and produce the zero
// vector instead of an error, so callers never fail because the embedding
// service is down.
type Embedder struct {
	embedder embeddings.Embedder
	logger   *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder: embedder,
		logger:   slog.Default().With("component", "openai-embedder"),
	}, nil
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a vector embedding for a single text string.
// Empty or whitespace-only input yields the zero vector without a service call.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return ai.ZeroVector(), nil
	}

	e.logger.Debug("generating embedding for single text", "length", len(text))

	vectors, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Warn("embedding service unavailable, degrading to zero vector", "err", err)
		return ai.ZeroVector(), nil
	}

	if len(vectors) == 0 {
		e.logger.Warn("embedder returned empty result, degrading to zero vector")
		return ai.ZeroVector(), nil
	}

	return vectors[0], nil
}

// EmbedTexts generates vector embeddings for multiple text strings in a batch.
// On service failure every text degrades to the zero vector.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts))

	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil || len(vectors) != len(texts) {
		if err != nil {
			e.logger.Warn("embedding service unavailable, degrading batch to zero vectors",
				"count", len(texts), "err", err)
		}
		degraded := make([][]float32, len(texts))
		for i := range degraded {
			degraded[i] = ai.ZeroVector()
		}
		return degraded, nil
	}

	return vectors, nil
}
