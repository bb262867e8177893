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


// Package nevissearch wires storage, AI services and the search, summary and
// ingestion layers into a single embeddable database handle.
package nevissearch

import (
	"log/slog"

	"github.com/hannakb/NevisSearchAPI/ai"
	"github.com/hannakb/NevisSearchAPI/ai/openai"
	"github.com/hannakb/NevisSearchAPI/ingestion"
	"github.com/hannakb/NevisSearchAPI/search"
	"github.com/hannakb/NevisSearchAPI/storage"
	"github.com/hannakb/NevisSearchAPI/storage/badger"
	"github.com/hannakb/NevisSearchAPI/summary"
)

// Database aggregates the storage backend, repositories and AI provider.
// It is the composition root; the search, summary and ingestion layers are
// created from it on demand.
type Database struct {
	backend      *badger.Backend
	recordRepo   storage.RecordRepository
	documentRepo storage.DocumentRepository
	provider     ai.AIProvider
	logger       *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	inMemory bool
}

// WithAIConfig sets the AI service configuration used to build the default
// OpenAI-compatible provider.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider injects a pre-built AI provider instead of constructing one
// from configuration. Used for testing with mock services.
func WithProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemory opens an ephemeral database, discarded on close.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// NewDatabase opens (or creates) a database at filePath.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	recordRepo, err := badger.NewRecordRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	documentRepo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		recordRepo.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			documentRepo.Close()
			recordRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:      backend,
		recordRepo:   recordRepo,
		documentRepo: documentRepo,
		provider:     provider,
		logger:       slog.Default(),
	}, nil
}

// Close shuts down the AI provider, repositories and storage backend.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.documentRepo.Close(); err != nil {
		db.logger.Error("error closing document repository", "err", err)
		return err
	}
	if err := db.recordRepo.Close(); err != nil {
		db.logger.Error("error closing record repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// RecordRepository exposes the profile record store.
func (db *Database) RecordRepository() storage.RecordRepository {
	return db.recordRepo
}

// DocumentRepository exposes the document store.
func (db *Database) DocumentRepository() storage.DocumentRepository {
	return db.documentRepo
}

// NewSearcher creates a searcher bound to this database.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.recordRepo, db.documentRepo, db.provider, opts...)
}

// NewSummaryCache creates a summary cache bound to this database.
func (db *Database) NewSummaryCache(opts ...summary.Option) (*summary.Cache, error) {
	return summary.NewCache(db.documentRepo, db.provider, opts...)
}

// NewIngestionPipeline creates an ingestion pipeline bound to this database.
func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.recordRepo, db.documentRepo, db.provider, opts...)
}
