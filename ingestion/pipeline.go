package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"strings"

	"github.com/hannakb/NevisSearchAPI/ai"
	"github.com/hannakb/NevisSearchAPI/core"
	"github.com/hannakb/NevisSearchAPI/storage"
	"github.com/panjf2000/ants/v2"
)

// Pipeline orchestrates record and document ingestion: validation, embedding
// at creation time, bulk import with duplicate detection, and embedding
// backfill for documents that missed theirs.
type Pipeline struct {
	recordRepository   storage.RecordRepository
	documentRepository storage.DocumentRepository
	embedder           ai.Embedder
	embeddingPool      *ants.Pool
	batchSize          int
	logger             *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding work.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.embeddingPool = pool
		return nil
	}
}

// WithBatchSize sets how many documents are embedded per service call during
// import and backfill. Default is 32.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	recordRepository storage.RecordRepository,
	documentRepository storage.DocumentRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if recordRepository == nil {
		return nil, ErrRecordRepositoryRequired
	}
	if documentRepository == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		recordRepository:   recordRepository,
		documentRepository: documentRepository,
		embedder:           provider.Embedder(),
		embeddingPool:      pool,
		batchSize:          32,
		logger:             slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// CreateRecord validates and stores a new profile record.
func (p *Pipeline) CreateRecord(ctx context.Context, record *core.Record) (*core.Record, error) {
	if err := core.ValidateRecord(record); err != nil {
		return nil, err
	}

	added, err := p.recordRepository.AddRecords(ctx, record)
	if err != nil {
		return nil, err
	}
	return added[0], nil
}

// CreateDocument validates and stores a new document, embedding it at
// creation time. A degraded (all-zero) embedding is not stored, leaving the
// document for a later backfill pass instead of polluting semantic search.
func (p *Pipeline) CreateDocument(ctx context.Context, document *core.Document) (*core.Document, error) {
	if err := core.ValidateDocument(document); err != nil {
		return nil, err
	}
	if _, err := p.recordRepository.GetRecord(ctx, document.OwnerId); err != nil {
		return nil, err
	}

	vector, err := p.embedder.EmbedText(ctx, embeddingText(document))
	if err != nil {
		p.logger.Warn("embedding failed at creation, document queued for backfill",
			"owner", document.OwnerId, "err", err)
	} else if !isZeroVector(vector) {
		document.Embedding = vector
	}

	added, err := p.documentRepository.AddDocuments(ctx, document)
	if err != nil {
		return nil, err
	}
	return added[0], nil
}

// DeleteRecord removes a record and cascades to all documents it owns.
func (p *Pipeline) DeleteRecord(ctx context.Context, recordID string) error {
	documents, err := p.documentRepository.GetOwnerDocuments(ctx, recordID)
	if err != nil {
		return err
	}

	if len(documents) > 0 {
		ids := make([]string, len(documents))
		for i, document := range documents {
			ids[i] = document.Id
		}
		if err := p.documentRepository.DeleteDocuments(ctx, ids...); err != nil {
			return err
		}
	}

	return p.recordRepository.DeleteRecords(ctx, recordID)
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
}

// embeddingText is the canonical text a document is embedded from: the
// content alone. Titles stay out of the vector; they are served by keyword
// ranking.
func embeddingText(document *core.Document) string {
	return strings.TrimSpace(document.Content)
}

func isZeroVector(vector []float32) bool {
	for _, v := range vector {
		if v != 0 {
			return false
		}
	}
	return true
}
