package search

import "github.com/hannakb/NevisSearchAPI/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterRecordSearch(results []core.ScoredResult[*core.Record])
	AfterKeywordSearch(results []core.ScoredResult[*core.Document])
	AfterSemanticSearch(results []core.ScoredResult[string])
	AfterHybridMerge(results []core.ScoredResult[*core.Document])
	Finish(results *Results)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                           {}
func (n *noopMonitor) AfterRecordSearch(_ []core.ScoredResult[*core.Record])    {}
func (n *noopMonitor) AfterKeywordSearch(_ []core.ScoredResult[*core.Document]) {}
func (n *noopMonitor) AfterSemanticSearch(_ []core.ScoredResult[string])        {}
func (n *noopMonitor) AfterHybridMerge(_ []core.ScoredResult[*core.Document])   {}
func (n *noopMonitor) Finish(_ *Results)                                        {}
