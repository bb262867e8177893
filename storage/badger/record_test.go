package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/hannakb/NevisSearchAPI/core"
	"github.com/hannakb/NevisSearchAPI/storage"
)

func TestRecordBasics(t *testing.T) {
	// Create in-memory repositories
	recordRepo, documentRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		documentRepo.Close()
		recordRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	record := &core.Record{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		Description: "Analytical engines",
	}

	added, err := recordRepo.AddRecords(ctx, record)
	if err != nil {
		t.Fatalf("Failed to add record: %v", err)
	}

	if len(added) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(added))
	}

	if added[0].Id == "" {
		t.Fatal("Expected non-empty ID")
	}

	if added[0].CreatedAt.IsZero() {
		t.Fatal("Expected CreatedAt to be set")
	}

	retrieved, err := recordRepo.GetRecord(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}

	if retrieved.Email != "ada@example.com" {
		t.Fatalf("Expected 'ada@example.com', got '%s'", retrieved.Email)
	}
}

func TestRecordDuplicateEmail(t *testing.T) {
	recordRepo, documentRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { documentRepo.Close(); recordRepo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = recordRepo.AddRecords(ctx, &core.Record{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("Failed to add record: %v", err)
	}

	// Same email with different case must be rejected
	_, err = recordRepo.AddRecords(ctx, &core.Record{
		FirstName: "Augusta", LastName: "King", Email: "ADA@example.com",
	})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestRecordNotFound(t *testing.T) {
	recordRepo, documentRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { documentRepo.Close(); recordRepo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = recordRepo.GetRecord(ctx, "record-missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	err = recordRepo.DeleteRecords(ctx, "record-missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on delete, got %v", err)
	}
}

func TestRecordDeleteFreesEmail(t *testing.T) {
	recordRepo, documentRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { documentRepo.Close(); recordRepo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := recordRepo.AddRecords(ctx, &core.Record{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("Failed to add record: %v", err)
	}

	if err := recordRepo.DeleteRecords(ctx, added[0].Id); err != nil {
		t.Fatalf("Failed to delete record: %v", err)
	}

	// Email index entry must be gone so the address can be reused
	_, err = recordRepo.AddRecords(ctx, &core.Record{
		FirstName: "Ada", LastName: "Byron", Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("Expected email to be reusable after delete, got %v", err)
	}
}

func TestRecordListAndGetMany(t *testing.T) {
	recordRepo, documentRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { documentRepo.Close(); recordRepo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := recordRepo.AddRecords(ctx,
		&core.Record{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		&core.Record{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com"},
		&core.Record{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"},
	)
	if err != nil {
		t.Fatalf("Failed to add records: %v", err)
	}

	all, err := recordRepo.ListRecords(ctx)
	if err != nil {
		t.Fatalf("Failed to list records: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(all))
	}

	// GetRecords skips missing IDs instead of failing
	some, err := recordRepo.GetRecords(ctx, added[0].Id, "record-missing", added[2].Id)
	if err != nil {
		t.Fatalf("Failed to get records: %v", err)
	}
	if len(some) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(some))
	}
}

func TestRecordScan(t *testing.T) {
	recordRepo, documentRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { documentRepo.Close(); recordRepo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = recordRepo.AddRecords(ctx,
		&core.Record{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Description: "mathematics"},
		&core.Record{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", Description: "computation"},
		&core.Record{FirstName: "Grace", LastName: "Hopper", Email: "grace@navy.mil", Description: "compilers and mathematics"},
	)
	if err != nil {
		t.Fatalf("Failed to add records: %v", err)
	}

	matches, err := recordRepo.ScanRecords(ctx, "mathematics", 0)
	if err != nil {
		t.Fatalf("Failed to scan records: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches on description, got %d", len(matches))
	}

	// Case-insensitive match on names
	matches, err = recordRepo.ScanRecords(ctx, "TURING", 0)
	if err != nil {
		t.Fatalf("Failed to scan records: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match on last name, got %d", len(matches))
	}

	// Limit caps the result set
	matches, err = recordRepo.ScanRecords(ctx, "example.com", 1)
	if err != nil {
		t.Fatalf("Failed to scan records: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match with limit, got %d", len(matches))
	}

	// Blank query matches nothing
	matches, err = recordRepo.ScanRecords(ctx, "   ", 0)
	if err != nil {
		t.Fatalf("Failed to scan records: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("Expected no matches for blank query, got %d", len(matches))
	}
}
