// Package ingestion provides pipeline orchestration for creating records and
// documents.
//
// The Pipeline type manages the write path:
//   - Validating and storing records and documents
//   - Generating embeddings at document creation time
//   - Bulk import with content-fingerprint duplicate detection
//   - Backfilling embeddings for documents that missed theirs
//
// Batch embedding work runs concurrently on a worker pool. Embedding failures
// never fail a write; affected documents are stored unembedded and picked up
// by the next backfill pass.
package ingestion
