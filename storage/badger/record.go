package badger

import (
	"context"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/hannakb/NevisSearchAPI/core"
	"github.com/hannakb/NevisSearchAPI/storage"
)

// RecordRepository implements storage.RecordRepository for BadgerDB.
type RecordRepository struct {
	backend *Backend
}

var _ storage.RecordRepository = (*RecordRepository)(nil)

// NewRecordRepository creates a new RecordRepository.
func NewRecordRepository(backend *Backend) (*RecordRepository, error) {
	return &RecordRepository{backend: backend}, nil
}

// Close releases repository resources.
func (r *RecordRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *RecordRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddRecords adds one or more records to storage. Email uniqueness is
// enforced through the email index within the same transaction.
func (r *RecordRepository) AddRecords(ctx context.Context, records ...*core.Record) ([]*core.Record, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if record.Id == "" {
				record.Id = core.NewRecordID()
			}
			record.CreatedAt = time.Now().UTC()

			emailKey := makeRecordEmailKey(strings.ToLower(record.Email))
			if _, err := tx.Get(emailKey); err == nil {
				return storage.ErrDuplicateKey
			} else if err != badger.ErrKeyNotFound {
				return err
			}

			key := makeRecordKey(record.Id)
			if err := tx.Set(key, storage.MarshalRecord(record)); err != nil {
				return err
			}
			if err := tx.Set(emailKey, []byte(record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// GetRecord retrieves a single record by ID.
func (r *RecordRepository) GetRecord(ctx context.Context, id string) (*core.Record, error) {
	var result *core.Record
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readRecord(tx, makeRecordKey(id))
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

// GetRecords retrieves multiple records by their IDs.
func (r *RecordRepository) GetRecords(ctx context.Context, ids ...string) ([]*core.Record, error) {
	var result []*core.Record
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			record, err := readRecord(tx, makeRecordKey(id))
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// ListRecords retrieves all records in key order.
func (r *RecordRepository) ListRecords(ctx context.Context) ([]*core.Record, error) {
	return r.scan(func(*core.Record) bool { return true }, 0)
}

// DeleteRecords removes records and their email index entries.
func (r *RecordRepository) DeleteRecords(ctx context.Context, ids ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeRecordKey(id)
			record, err := readRecord(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeRecordEmailKey(strings.ToLower(record.Email))); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// ScanRecords retrieves records matching the substring predicate used by
// keyword search: the lowercased needle must appear in the email, full
// name ("first last"), or description.
func (r *RecordRepository) ScanRecords(ctx context.Context, substr string, limit int) ([]*core.Record, error) {
	needle := strings.ToLower(strings.TrimSpace(substr))
	if needle == "" {
		return nil, nil
	}

	return r.scan(func(record *core.Record) bool {
		return strings.Contains(strings.ToLower(record.Email), needle) ||
			strings.Contains(strings.ToLower(record.FullName()), needle) ||
			strings.Contains(strings.ToLower(record.Description), needle)
	}, limit)
}

// scan iterates all primary record keys and collects records matching keep,
// up to limit (0 = unbounded).
func (r *RecordRepository) scan(keep func(*core.Record) bool, limit int) ([]*core.Record, error) {
	var results []*core.Record
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if limit > 0 && len(results) >= limit {
				break
			}

			var record *core.Record
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record != nil && keep(record) {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// readRecord reads a record from the transaction.
func readRecord(tx *badger.Txn, key []byte) (*core.Record, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.Record
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalRecord(val)
		return unmarshalErr
	})
	return record, err
}
