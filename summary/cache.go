// Copyright 2025 Nevis Search Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package summary

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hannakb/NevisSearchAPI/ai"
	"github.com/hannakb/NevisSearchAPI/storage"
)

// Result is the outcome of a summary request.
type Result struct {
	// Summary is the cached or freshly generated summary text.
	Summary string
	// Length is len(Summary) in bytes.
	Length int
	// WasCached reports whether the summary was served from the document's
	// stored summary without regeneration.
	WasCached bool
}

// Cache serves document summaries, generating and persisting them on demand.
// A stored summary is reused until a caller asks for regeneration. Summarizer
// failures never surface to the caller; they trigger the extractive fallback.
//
// The persist step is a read-modify-write on the document; concurrent writers
// to the same document are last-writer-wins.
type Cache struct {
	documentRepository storage.DocumentRepository
	summarizer         ai.Summarizer
	config             *Config
	logger             *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithConfig sets a custom summary configuration.
// Default is DefaultConfig().
func WithConfig(config *Config) Option {
	return func(c *Cache) error {
		if config == nil {
			config = DefaultConfig()
		}
		if err := config.Validate(); err != nil {
			return err
		}
		c.config = config
		return nil
	}
}

// NewCache creates a new summary cache.
func NewCache(
	documentRepository storage.DocumentRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Cache, error) {
	if documentRepository == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	c := &Cache{
		documentRepository: documentRepository,
		summarizer:         provider.Summarizer(),
		config:             DefaultConfig(),
		logger:             slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// GetOrGenerate returns the summary for a document, generating and persisting
// one if needed. A maxLength of 0 uses the configured default.
//
// When the document already carries a summary and regenerate is false, the
// stored value is returned with no external call. Content that already fits
// within maxLength is used verbatim (still persisted). Otherwise the
// summarizer runs; on any failure the extractive fallback takes over.
func (c *Cache) GetOrGenerate(ctx context.Context, documentID string, maxLength int, regenerate bool) (*Result, error) {
	if maxLength == 0 {
		maxLength = c.config.LengthDefault
	}
	if maxLength < c.config.LengthMin || maxLength > c.config.LengthMax {
		return nil, ErrInvalidLength
	}

	document, err := c.documentRepository.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if document.Summary != "" && !regenerate {
		return &Result{
			Summary:   document.Summary,
			Length:    len(document.Summary),
			WasCached: true,
		}, nil
	}

	content := strings.TrimSpace(document.Content)

	var generated string
	if len(content) <= maxLength {
		// Short content is its own summary; no external call
		generated = content
	} else {
		raw, err := c.summarizer.Summarize(ctx, content, maxLength)
		if err != nil {
			c.logger.Warn("summarizer unavailable, using extractive fallback",
				"document", documentID, "err", err)
			generated = FallbackSummary(content, maxLength)
		} else {
			generated = stripWrappingQuotes(raw)
		}
	}

	document.Summary = generated
	if _, err := c.documentRepository.UpdateDocuments(ctx, document); err != nil {
		return nil, err
	}

	return &Result{
		Summary:   generated,
		Length:    len(generated),
		WasCached: false,
	}, nil
}
