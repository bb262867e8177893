package search

import (
	"context"
	"log/slog"

	"github.com/hannakb/NevisSearchAPI/ai"
	"github.com/hannakb/NevisSearchAPI/core"
	"github.com/hannakb/NevisSearchAPI/storage"
)

// Scope selects which entity kinds a search covers.
type Scope int

const (
	// ScopeAll searches both records and documents.
	ScopeAll Scope = iota
	// ScopeRecords searches profile records only.
	ScopeRecords
	// ScopeDocuments searches documents only.
	ScopeDocuments
)

// Results holds the ranked output of a search. Records and Documents are
// independently ranked; TotalCount is the sum of both lists.
type Results struct {
	Records    []core.ScoredResult[*core.Record]
	Documents  []core.ScoredResult[*core.Document]
	TotalCount int
}

// Searcher is the top-level search entry point. Records are ranked by pure
// keyword scoring; documents always go through the hybrid keyword+semantic
// merge.
type Searcher struct {
	recordRepository   storage.RecordRepository
	documentRepository storage.DocumentRepository
	embedder           ai.Embedder
	config             *Config
	logger             *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithConfig sets a custom search configuration.
// Default is DefaultConfig().
func WithConfig(config *Config) Option {
	return func(s *Searcher) error {
		if config == nil {
			config = DefaultConfig()
		}
		if err := config.Validate(); err != nil {
			return err
		}
		s.config = config
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	recordRepository storage.RecordRepository,
	documentRepository storage.DocumentRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Searcher, error) {
	if recordRepository == nil {
		return nil, ErrRecordRepositoryRequired
	}
	if documentRepository == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		recordRepository:   recordRepository,
		documentRepository: documentRepository,
		embedder:           provider.Embedder(),
		config:             DefaultConfig(),
		logger:             slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search runs a query against the selected scope.
// Returns ranked records and documents, each capped at limit.
// A limit of 0 uses the configured default.
func (s *Searcher) Search(ctx context.Context, query string, scope Scope, limit int) (*Results, error) {
	return s.SearchWithMonitor(ctx, query, scope, limit, nil)
}

// SearchWithMonitor runs a query with monitoring. The monitor receives
// callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, scope Scope, limit int, monitor SearchMonitor) (*Results, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if normalizeQuery(query) == "" {
		return nil, ErrInvalidQuery
	}
	if limit == 0 {
		limit = s.config.LimitDefault
	}
	if limit < s.config.LimitMin || limit > s.config.LimitMax {
		return nil, ErrInvalidLimit
	}

	monitor.Start(query)

	// Scored pools are kept larger than the final limit so the merge never
	// truncates a side before combining. Candidate scans themselves are
	// unbounded: truncating in storage key order could drop a top-ranked hit.
	workingLimit := limit * 3
	results := &Results{}

	if scope == ScopeAll || scope == ScopeRecords {
		records, err := s.searchRecords(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		results.Records = records
		monitor.AfterRecordSearch(records)
	}

	if scope == ScopeAll || scope == ScopeDocuments {
		documents, err := s.searchDocuments(ctx, query, limit, workingLimit, monitor)
		if err != nil {
			return nil, err
		}
		results.Documents = documents
	}

	results.TotalCount = len(results.Records) + len(results.Documents)
	monitor.Finish(results)

	return results, nil
}

// searchRecords ranks profile records by pure keyword scoring.
func (s *Searcher) searchRecords(ctx context.Context, query string, limit int) ([]core.ScoredResult[*core.Record], error) {
	candidates, err := s.recordRepository.ScanRecords(ctx, query, 0)
	if err != nil {
		s.logger.Error("error scanning record candidates", "err", err)
		return nil, err
	}
	return ScoreRecords(query, candidates, limit), nil
}

// searchDocuments runs the hybrid keyword+semantic pipeline for documents.
func (s *Searcher) searchDocuments(ctx context.Context, query string, limit, workingLimit int, monitor SearchMonitor) ([]core.ScoredResult[*core.Document], error) {
	// 1. Keyword side
	keywordCandidates, err := s.documentRepository.ScanDocuments(ctx, queryWords(query), 0)
	if err != nil {
		s.logger.Error("error scanning document candidates", "err", err)
		return nil, err
	}
	keywordResults := ScoreDocuments(query, keywordCandidates, workingLimit)
	monitor.AfterKeywordSearch(keywordResults)

	// 2. Semantic side. Embedding degrades to the zero vector on failure,
	// which yields zero similarities and leaves keyword ranking intact.
	queryEmbedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Warn("error generating query embedding, degrading to keyword-only", "err", err)
		queryEmbedding = ai.ZeroVector()
	}

	embedded, err := s.documentRepository.ListEmbedded(ctx)
	if err != nil {
		s.logger.Error("error listing embedded documents", "err", err)
		return nil, err
	}

	candidates := make([]Candidate, 0, len(embedded))
	resolve := make(map[string]*core.Document, len(embedded))
	for _, document := range embedded {
		candidates = append(candidates, Candidate{ID: document.Id, Embedding: document.Embedding})
		resolve[document.Id] = document
	}

	semanticResults := SemanticSearch(queryEmbedding, candidates, workingLimit, s.config.SimilarityThreshold)
	monitor.AfterSemanticSearch(semanticResults)

	// 3. Merge
	merged := MergeHybrid(keywordResults, semanticResults, resolve, s.config.Weights, limit)
	monitor.AfterHybridMerge(merged)

	return merged, nil
}
