package search

import "github.com/flamehaven/filesearch/core"

// SearchMonitor provides hooks to observe the search pipeline.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	CacheHit(query, store string)
	AfterEmbedding(vector []float32)
	AfterSimilaritySearch(results []*core.SearchResult)
	VerbatimBoost(doc *core.Document)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                {}
func (n *noopMonitor) CacheHit(_, _ string)                          {}
func (n *noopMonitor) AfterEmbedding(_ []float32)                    {}
func (n *noopMonitor) AfterSimilaritySearch(_ []*core.SearchResult)  {}
func (n *noopMonitor) VerbatimBoost(_ *core.Document)                {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)                 {}
