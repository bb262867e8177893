package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// ID prefixes for the two entity kinds. IDs are opaque strings of the form
// "<prefix>-<uuid>".
const (
	RecordIDPrefix   = "record"
	DocumentIDPrefix = "document"
)

// NewRecordID generates a fresh record identifier.
func NewRecordID() string {
	return RecordIDPrefix + "-" + uuid.NewString()
}

// NewDocumentID generates a fresh document identifier.
func NewDocumentID() string {
	return DocumentIDPrefix + "-" + uuid.NewString()
}

// Fingerprint generates a deterministic 64-bit digest of text content using
// BLAKE2b hashing. Identical content produces identical fingerprints, which
// is used to deduplicate bulk imports.
func Fingerprint(text string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// Record represents a profile entity with contact and descriptive fields.
// Email is unique across all records (enforced by the storage layer).
type Record struct {
	Id          string
	FirstName   string
	LastName    string
	Email       string
	Description string    // optional, empty means absent
	CreatedAt   time.Time // when the record was inserted into the database
}

// FullName returns "first last", the form used for full-name matching.
func (r *Record) FullName() string {
	return r.FirstName + " " + r.LastName
}

// Document represents free-text content owned by a Record. The embedding is
// computed at creation time, or by a later backfill pass when the embedding
// service was unavailable. The summary starts absent and is populated by the
// summary cache.
type Document struct {
	Id        string
	OwnerId   string // references a Record
	Title     string
	Content   string
	Summary   string    // optional, empty means absent
	Embedding []float32 // optional, nil until embedded
	CreatedAt time.Time
}

// HasEmbedding reports whether the document carries an embedding vector.
func (d *Document) HasEmbedding() bool {
	return len(d.Embedding) > 0
}

// ScoredResult pairs an entity with its relevance score in [0,1] and a tag
// naming the field that produced the match. Result lists are ordered by
// score descending; equal scores keep the order the scorer produced them in.
type ScoredResult[T any] struct {
	Entity     T
	Score      float64
	MatchField string
}
