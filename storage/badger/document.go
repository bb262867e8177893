package badger

import (
	"context"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/hannakb/NevisSearchAPI/core"
	"github.com/hannakb/NevisSearchAPI/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
type DocumentRepository struct {
	backend *Backend
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) (*DocumentRepository, error) {
	return &DocumentRepository{backend: backend}, nil
}

// Close releases repository resources.
func (r *DocumentRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *DocumentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddDocuments adds one or more documents to storage and maintains the
// owner index.
func (r *DocumentRepository) AddDocuments(ctx context.Context, documents ...*core.Document) ([]*core.Document, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, document := range documents {
			if document.Id == "" {
				document.Id = core.NewDocumentID()
			}
			document.CreatedAt = time.Now().UTC()

			key := makeDocumentKey(document.Id)
			if err := tx.Set(key, storage.MarshalDocument(document)); err != nil {
				return err
			}

			ownerKey := makeDocumentOwnerKey(document.OwnerId, document.Id)
			if err := tx.Set(ownerKey, []byte(document.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return documents, err
}

// UpdateDocuments updates existing documents. The owner index is rewritten
// if the owner changed.
func (r *DocumentRepository) UpdateDocuments(ctx context.Context, documents ...*core.Document) ([]*core.Document, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, document := range documents {
			key := makeDocumentKey(document.Id)

			old, err := readDocument(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			if err := tx.Set(key, storage.MarshalDocument(document)); err != nil {
				return err
			}

			if old.OwnerId != document.OwnerId {
				if err := tx.Delete(makeDocumentOwnerKey(old.OwnerId, old.Id)); err != nil {
					return err
				}
				if err := tx.Set(makeDocumentOwnerKey(document.OwnerId, document.Id), []byte(document.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return documents, err
}

// GetDocument retrieves a single document by ID.
func (r *DocumentRepository) GetDocument(ctx context.Context, id string) (*core.Document, error) {
	var result *core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readDocument(tx, makeDocumentKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetDocuments retrieves multiple documents by their IDs.
func (r *DocumentRepository) GetDocuments(ctx context.Context, ids ...string) ([]*core.Document, error) {
	var result []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			document, err := readDocument(tx, makeDocumentKey(id))
			if err != nil {
				return err
			}
			if document != nil {
				result = append(result, document)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetOwnerDocuments retrieves all documents owned by a record, via the
// owner index.
func (r *DocumentRepository) GetOwnerDocuments(ctx context.Context, ownerID string) ([]*core.Document, error) {
	var results []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialDocumentOwnerKey(ownerID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var documentID string
			if err := iter.Item().Value(func(val []byte) error {
				documentID = string(val)
				return nil
			}); err != nil {
				return err
			}

			document, err := readDocument(tx, makeDocumentKey(documentID))
			if err != nil {
				return err
			}
			if document != nil {
				results = append(results, document)
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteDocuments removes documents and their owner index entries.
func (r *DocumentRepository) DeleteDocuments(ctx context.Context, ids ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeDocumentKey(id)
			document, err := readDocument(tx, key)
			if err != nil {
				return err
			}
			if document == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeDocumentOwnerKey(document.OwnerId, document.Id)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// ScanDocuments retrieves documents whose title or content contains any of
// the given lowercased words.
func (r *DocumentRepository) ScanDocuments(ctx context.Context, words []string, limit int) ([]*core.Document, error) {
	needles := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			needles = append(needles, w)
		}
	}
	if len(needles) == 0 {
		return nil, nil
	}

	return r.scan(func(document *core.Document) bool {
		title := strings.ToLower(document.Title)
		content := strings.ToLower(document.Content)
		for _, needle := range needles {
			if strings.Contains(title, needle) || strings.Contains(content, needle) {
				return true
			}
		}
		return false
	}, limit)
}

// ListEmbedded retrieves all documents that carry an embedding vector.
func (r *DocumentRepository) ListEmbedded(ctx context.Context) ([]*core.Document, error) {
	return r.scan(func(document *core.Document) bool {
		return document.HasEmbedding()
	}, 0)
}

// ListUnembedded retrieves all documents missing an embedding vector.
func (r *DocumentRepository) ListUnembedded(ctx context.Context) ([]*core.Document, error) {
	return r.scan(func(document *core.Document) bool {
		return !document.HasEmbedding()
	}, 0)
}

// scan iterates all primary document keys and collects documents matching
// keep, up to limit (0 = unbounded).
func (r *DocumentRepository) scan(keep func(*core.Document) bool, limit int) ([]*core.Document, error) {
	var results []*core.Document
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if limit > 0 && len(results) >= limit {
				break
			}

			var document *core.Document
			err := iter.Item().Value(func(val []byte) error {
				var err error
				document, err = storage.UnmarshalDocument(val)
				return err
			})
			if err != nil {
				return err
			}
			if document != nil && keep(document) {
				results = append(results, document)
			}
		}
		return nil
	}, false)

	return results, err
}

// readDocument reads a document from the transaction.
func readDocument(tx *badger.Txn, key []byte) (*core.Document, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var document *core.Document
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		document, unmarshalErr = storage.UnmarshalDocument(val)
		return unmarshalErr
	})
	return document, err
}
