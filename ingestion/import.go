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


package ingestion

import (
	"context"
	"errors"
	"sync"

	"github.com/hannakb/NevisSearchAPI/core"
)

// ImportItem is one document in a bulk import request.
type ImportItem struct {
	Title   string
	Content string
}

// ImportReport summarizes a bulk import.
type ImportReport struct {
	// Imported is the number of documents stored.
	Imported int
	// Skipped is the number of items dropped as duplicates, either of a
	// document the owner already has or of an earlier item in the same batch.
	Skipped int
}

// ImportDocuments bulk-imports documents for one owner. Duplicates are
// detected by content fingerprint against the owner's existing documents and
// within the batch itself. Embedding runs in batches on the worker pool; a
// batch whose embeddings degrade to zero vectors is stored unembedded and
// picked up by the next backfill.
func (p *Pipeline) ImportDocuments(ctx context.Context, ownerID string, items []ImportItem) (*ImportReport, error) {
	if _, err := p.recordRepository.GetRecord(ctx, ownerID); err != nil {
		return nil, err
	}

	existing, err := p.documentRepository.GetOwnerDocuments(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint64]struct{}, len(existing)+len(items))
	for _, document := range existing {
		seen[core.Fingerprint(document.Title+"\n"+document.Content)] = struct{}{}
	}

	report := &ImportReport{}
	fresh := make([]*core.Document, 0, len(items))
	for _, item := range items {
		fp := core.Fingerprint(item.Title + "\n" + item.Content)
		if _, dup := seen[fp]; dup {
			report.Skipped++
			continue
		}
		seen[fp] = struct{}{}

		document := &core.Document{
			OwnerId: ownerID,
			Title:   item.Title,
			Content: item.Content,
		}
		if err := core.ValidateDocument(document); err != nil {
			return nil, err
		}
		fresh = append(fresh, document)
	}

	if len(fresh) == 0 {
		return report, nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		errs     []error
		imported int
	)

	for start := 0; start < len(fresh); start += p.batchSize {
		end := start + p.batchSize
		if end > len(fresh) {
			end = len(fresh)
		}
		batch := fresh[start:end]

		wg.Add(1)
		submitErr := p.embeddingPool.Submit(func() {
			defer wg.Done()
			err := p.importBatch(ctx, batch)
			mu.Lock()
			if err != nil {
				errs = append(errs, err)
			} else {
				imported += len(batch)
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

	// Imported reflects what was actually stored, even when other batches
	// failed.
	report.Imported = imported

	if len(errs) > 0 {
		return report, errors.Join(errs...)
	}
	return report, nil
}

// importBatch embeds and stores one batch of documents.
func (p *Pipeline) importBatch(ctx context.Context, batch []*core.Document) error {
	texts := make([]string, len(batch))
	for i, document := range batch {
		texts[i] = embeddingText(document)
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		p.logger.Warn("batch embedding failed, importing unembedded", "count", len(batch), "err", err)
	} else {
		for i := range batch {
			if i < len(vectors) && !isZeroVector(vectors[i]) {
				batch[i].Embedding = vectors[i]
			}
		}
	}

	_, err = p.documentRepository.AddDocuments(ctx, batch...)
	return err
}
