package ingestion

import (
	"context"
	"errors"
	"sync"

	"github.com/hannakb/NevisSearchAPI/core"
)

// BackfillReport summarizes an embedding backfill pass.
type BackfillReport struct {
	// Embedded is the number of documents that received a vector.
	Embedded int
	// Remaining is the number of documents still unembedded after the pass,
	// typically because the embedding service degraded to zero vectors.
	Remaining int
}

// BackfillEmbeddings embeds every document that is missing a vector.
// Work runs in batches on the worker pool. Documents whose embedding comes
// back as the zero vector stay unembedded and are counted as remaining.
func (p *Pipeline) BackfillEmbeddings(ctx context.Context) (*BackfillReport, error) {
	pending, err := p.documentRepository.ListUnembedded(ctx)
	if err != nil {
		return nil, err
	}

	report := &BackfillReport{}
	if len(pending) == 0 {
		return report, nil
	}

	p.logger.Info("backfilling embeddings", "documents", len(pending))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		errs     []error
		embedded int
	)

	for start := 0; start < len(pending); start += p.batchSize {
		end := start + p.batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		wg.Add(1)
		submitErr := p.embeddingPool.Submit(func() {
			defer wg.Done()
			n, err := p.backfillBatch(ctx, batch)
			mu.Lock()
			embedded += n
			if err != nil {
				errs = append(errs, err)
			}
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
		}
	}
	wg.Wait()

	report.Embedded = embedded
	report.Remaining = len(pending) - embedded

	if len(errs) > 0 {
		return report, errors.Join(errs...)
	}
	return report, nil
}

// backfillBatch embeds one batch and updates the documents that got a
// non-zero vector. Returns how many were embedded.
func (p *Pipeline) backfillBatch(ctx context.Context, batch []*core.Document) (int, error) {
	texts := make([]string, len(batch))
	for i, document := range batch {
		texts[i] = embeddingText(document)
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, err
	}

	updated := make([]*core.Document, 0, len(batch))
	for i, document := range batch {
		if i >= len(vectors) || isZeroVector(vectors[i]) {
			continue
		}
		document.Embedding = vectors[i]
		updated = append(updated, document)
	}
	if len(updated) == 0 {
		return 0, nil
	}

	if _, err := p.documentRepository.UpdateDocuments(ctx, updated...); err != nil {
		return 0, err
	}
	return len(updated), nil
}
