package storage

import (
	"context"

	"github.com/hannakb/NevisSearchAPI/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}

// RecordRepository provides operations for managing profile records.
type RecordRepository interface {
	Repository

	// AddRecords adds one or more records to storage.
	// Generates IDs for records with an empty Id and sets CreatedAt.
	// Returns ErrDuplicateKey if a record's email is already taken.
	AddRecords(ctx context.Context, records ...*core.Record) ([]*core.Record, error)

	// GetRecord retrieves a single record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetRecord(ctx context.Context, id string) (*core.Record, error)

	// GetRecords retrieves multiple records by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetRecords(ctx context.Context, ids ...string) ([]*core.Record, error)

	// ListRecords retrieves all records.
	ListRecords(ctx context.Context) ([]*core.Record, error)

	// DeleteRecords removes records by their IDs.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteRecords(ctx context.Context, ids ...string) error

	// ScanRecords retrieves records whose email, first name, last name, or
	// description contains the given lowercased substring, up to limit.
	// Results are in stable insertion-key order.
	ScanRecords(ctx context.Context, substr string, limit int) ([]*core.Record, error)
}

// DocumentRepository provides operations for managing documents.
type DocumentRepository interface {
	Repository

	// AddDocuments adds one or more documents to storage.
	// Generates IDs for documents with an empty Id and sets CreatedAt.
	AddDocuments(ctx context.Context, documents ...*core.Document) ([]*core.Document, error)

	// UpdateDocuments updates existing documents.
	// Returns ErrNotFound if any document doesn't exist.
	UpdateDocuments(ctx context.Context, documents ...*core.Document) ([]*core.Document, error)

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id string) (*core.Document, error)

	// GetDocuments retrieves multiple documents by their IDs.
	// Returns only the documents that exist (no error for missing documents).
	GetDocuments(ctx context.Context, ids ...string) ([]*core.Document, error)

	// GetOwnerDocuments retrieves all documents owned by a record.
	GetOwnerDocuments(ctx context.Context, ownerID string) ([]*core.Document, error)

	// DeleteDocuments removes documents by their IDs.
	// Returns ErrNotFound if any document doesn't exist.
	DeleteDocuments(ctx context.Context, ids ...string) error

	// ScanDocuments retrieves documents whose title or content contains any
	// of the given lowercased words, up to limit. Results are in stable
	// insertion-key order.
	ScanDocuments(ctx context.Context, words []string, limit int) ([]*core.Document, error)

	// ListEmbedded retrieves all documents that carry an embedding vector.
	// Documents without embeddings are excluded so similarity math stays
	// well-defined downstream.
	ListEmbedded(ctx context.Context) ([]*core.Document, error)

	// ListUnembedded retrieves all documents missing an embedding vector,
	// the work queue for embedding backfill.
	ListUnembedded(ctx context.Context) ([]*core.Document, error)
}
