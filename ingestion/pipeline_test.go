package ingestion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hannakb/NevisSearchAPI/ai/mock"
	"github.com/hannakb/NevisSearchAPI/core"
	"github.com/hannakb/NevisSearchAPI/storage"
	"github.com/hannakb/NevisSearchAPI/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T, opts ...Option) (*Pipeline, storage.RecordRepository, storage.DocumentRepository, *mock.MockEmbedder) {
	t.Helper()

	recordRepo, documentRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		documentRepo.Close()
		recordRepo.Close()
		backend.Close()
	})

	embedder := mock.NewMockEmbedder()
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockSummarizer())

	pipeline, err := NewPipeline(recordRepo, documentRepo, provider, opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline, recordRepo, documentRepo, embedder
}

func newOwner(t *testing.T, pipeline *Pipeline) *core.Record {
	t.Helper()
	owner, err := pipeline.CreateRecord(context.Background(), &core.Record{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     fmt.Sprintf("ada+%s@example.com", core.NewRecordID()),
	})
	require.NoError(t, err)
	return owner
}

func TestNewPipeline(t *testing.T) {
	_, recordRepo, documentRepo, _ := newTestPipeline(t)
	provider := mock.NewMockProvider()

	t.Run("nil record repository", func(t *testing.T) {
		_, err := NewPipeline(nil, documentRepo, provider)
		assert.Equal(t, ErrRecordRepositoryRequired, err)
	})

	t.Run("nil document repository", func(t *testing.T) {
		_, err := NewPipeline(recordRepo, nil, provider)
		assert.Equal(t, ErrDocumentRepositoryRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewPipeline(recordRepo, documentRepo, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})
}

func TestCreateRecord(t *testing.T) {
	pipeline, _, _, _ := newTestPipeline(t)
	ctx := context.Background()

	t.Run("valid record", func(t *testing.T) {
		record, err := pipeline.CreateRecord(ctx, &core.Record{
			FirstName: "John", LastName: "Doe", Email: "john@example.com",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, record.Id)
	})

	t.Run("invalid record rejected", func(t *testing.T) {
		_, err := pipeline.CreateRecord(ctx, &core.Record{
			FirstName: "", LastName: "Doe", Email: "x@example.com",
		})
		assert.ErrorIs(t, err, core.ErrInvalidRecord)
	})
}

func TestCreateDocument(t *testing.T) {
	pipeline, _, documentRepo, _ := newTestPipeline(t)
	ctx := context.Background()
	owner := newOwner(t, pipeline)

	t.Run("embeds at creation", func(t *testing.T) {
		document, err := pipeline.CreateDocument(ctx, &core.Document{
			OwnerId: owner.Id,
			Title:   "Meeting Notes",
			Content: "Discussed the quarterly roadmap.",
		})
		require.NoError(t, err)
		assert.True(t, document.HasEmbedding())

		stored, err := documentRepo.GetDocument(ctx, document.Id)
		require.NoError(t, err)
		assert.True(t, stored.HasEmbedding())
	})

	t.Run("unknown owner rejected", func(t *testing.T) {
		_, err := pipeline.CreateDocument(ctx, &core.Document{
			OwnerId: "record-missing",
			Title:   "Orphan",
			Content: "No owner.",
		})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("invalid document rejected", func(t *testing.T) {
		_, err := pipeline.CreateDocument(ctx, &core.Document{
			OwnerId: owner.Id,
			Title:   "",
			Content: "Missing title.",
		})
		assert.ErrorIs(t, err, core.ErrInvalidDocument)
	})

	t.Run("embeds the content, not the title", func(t *testing.T) {
		captured, _, _, embedder := newTestPipeline(t)
		capturedOwner := newOwner(t, captured)

		var embeddedText string
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			embeddedText = text
			return []float32{1, 0, 0}, nil
		}

		_, err := captured.CreateDocument(ctx, &core.Document{
			OwnerId: capturedOwner.Id,
			Title:   "Quarterly Review",
			Content: "Revenue grew in every region.",
		})
		require.NoError(t, err)
		assert.Equal(t, "Revenue grew in every region.", embeddedText)
	})

	t.Run("degraded embedding stored unembedded", func(t *testing.T) {
		degraded, _, repo, embedder := newTestPipeline(t)
		degradedOwner := newOwner(t, degraded)
		embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
			return make([]float32, 8), nil
		}

		document, err := degraded.CreateDocument(ctx, &core.Document{
			OwnerId: degradedOwner.Id,
			Title:   "Unembeddable",
			Content: "Service was down.",
		})
		require.NoError(t, err)
		assert.False(t, document.HasEmbedding())

		pending, err := repo.ListUnembedded(ctx)
		require.NoError(t, err)
		assert.Len(t, pending, 1)
	})
}

func TestDeleteRecordCascades(t *testing.T) {
	pipeline, recordRepo, documentRepo, _ := newTestPipeline(t)
	ctx := context.Background()
	owner := newOwner(t, pipeline)

	for i := 0; i < 3; i++ {
		_, err := pipeline.CreateDocument(ctx, &core.Document{
			OwnerId: owner.Id,
			Title:   fmt.Sprintf("Doc %d", i),
			Content: "content",
		})
		require.NoError(t, err)
	}

	require.NoError(t, pipeline.DeleteRecord(ctx, owner.Id))

	_, err := recordRepo.GetRecord(ctx, owner.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	owned, err := documentRepo.GetOwnerDocuments(ctx, owner.Id)
	require.NoError(t, err)
	assert.Empty(t, owned)
}

func TestImportDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("imports and embeds", func(t *testing.T) {
		pipeline, _, documentRepo, _ := newTestPipeline(t, WithBatchSize(2))
		owner := newOwner(t, pipeline)

		report, err := pipeline.ImportDocuments(ctx, owner.Id, []ImportItem{
			{Title: "One", Content: "first body"},
			{Title: "Two", Content: "second body"},
			{Title: "Three", Content: "third body"},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, report.Imported)
		assert.Equal(t, 0, report.Skipped)

		owned, err := documentRepo.GetOwnerDocuments(ctx, owner.Id)
		require.NoError(t, err)
		require.Len(t, owned, 3)
		for _, document := range owned {
			assert.True(t, document.HasEmbedding())
		}
	})

	t.Run("skips in-batch duplicates", func(t *testing.T) {
		pipeline, _, _, _ := newTestPipeline(t)
		owner := newOwner(t, pipeline)

		report, err := pipeline.ImportDocuments(ctx, owner.Id, []ImportItem{
			{Title: "Same", Content: "identical"},
			{Title: "Same", Content: "identical"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Imported)
		assert.Equal(t, 1, report.Skipped)
	})

	t.Run("skips duplicates of existing documents", func(t *testing.T) {
		pipeline, _, _, _ := newTestPipeline(t)
		owner := newOwner(t, pipeline)

		_, err := pipeline.CreateDocument(ctx, &core.Document{
			OwnerId: owner.Id, Title: "Existing", Content: "already stored",
		})
		require.NoError(t, err)

		report, err := pipeline.ImportDocuments(ctx, owner.Id, []ImportItem{
			{Title: "Existing", Content: "already stored"},
			{Title: "New", Content: "fresh"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Imported)
		assert.Equal(t, 1, report.Skipped)
	})

	t.Run("unknown owner rejected", func(t *testing.T) {
		pipeline, _, _, _ := newTestPipeline(t)

		_, err := pipeline.ImportDocuments(ctx, "record-missing", []ImportItem{
			{Title: "X", Content: "y"},
		})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("failed batch still reports what was stored", func(t *testing.T) {
		recordRepo, documentRepo, backend, err := badger.NewMemoryRepositories()
		require.NoError(t, err)
		t.Cleanup(func() {
			documentRepo.Close()
			recordRepo.Close()
			backend.Close()
		})

		flaky := &addFailsOnceRepository{DocumentRepository: documentRepo}
		pipeline, err := NewPipeline(recordRepo, flaky, mock.NewMockProvider(), WithBatchSize(2))
		require.NoError(t, err)
		t.Cleanup(pipeline.Release)
		owner := newOwner(t, pipeline)

		report, err := pipeline.ImportDocuments(ctx, owner.Id, []ImportItem{
			{Title: "One", Content: "first"},
			{Title: "Two", Content: "second"},
			{Title: "Three", Content: "third"},
			{Title: "Four", Content: "fourth"},
		})
		require.Error(t, err)
		assert.Equal(t, 2, report.Imported)
		assert.Equal(t, 0, report.Skipped)

		owned, err := documentRepo.GetOwnerDocuments(ctx, owner.Id)
		require.NoError(t, err)
		assert.Len(t, owned, 2)
	})
}

// addFailsOnceRepository fails the second AddDocuments call and delegates
// everything else to the wrapped repository.
type addFailsOnceRepository struct {
	storage.DocumentRepository
	mu    sync.Mutex
	calls int
}

func (r *addFailsOnceRepository) AddDocuments(ctx context.Context, documents ...*core.Document) ([]*core.Document, error) {
	r.mu.Lock()
	r.calls++
	fail := r.calls == 2
	r.mu.Unlock()
	if fail {
		return nil, errors.New("store unavailable")
	}
	return r.DocumentRepository.AddDocuments(ctx, documents...)
}

func TestBackfillEmbeddings(t *testing.T) {
	ctx := context.Background()

	t.Run("embeds pending documents", func(t *testing.T) {
		pipeline, _, documentRepo, _ := newTestPipeline(t, WithBatchSize(2))

		// Stored directly, bypassing creation-time embedding
		_, err := documentRepo.AddDocuments(ctx,
			&core.Document{OwnerId: "record-a", Title: "A", Content: "alpha"},
			&core.Document{OwnerId: "record-a", Title: "B", Content: "beta"},
			&core.Document{OwnerId: "record-a", Title: "C", Content: "gamma"},
		)
		require.NoError(t, err)

		report, err := pipeline.BackfillEmbeddings(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, report.Embedded)
		assert.Equal(t, 0, report.Remaining)

		pending, err := documentRepo.ListUnembedded(ctx)
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("zero vectors stay pending", func(t *testing.T) {
		pipeline, _, documentRepo, embedder := newTestPipeline(t)
		embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			vectors := make([][]float32, len(texts))
			for i := range vectors {
				vectors[i] = make([]float32, 8)
			}
			return vectors, nil
		}

		_, err := documentRepo.AddDocuments(ctx,
			&core.Document{OwnerId: "record-a", Title: "A", Content: "alpha"},
		)
		require.NoError(t, err)

		report, err := pipeline.BackfillEmbeddings(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, report.Embedded)
		assert.Equal(t, 1, report.Remaining)
	})

	t.Run("nothing to do", func(t *testing.T) {
		pipeline, _, _, _ := newTestPipeline(t)

		report, err := pipeline.BackfillEmbeddings(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, report.Embedded)
		assert.Equal(t, 0, report.Remaining)
	})
}
