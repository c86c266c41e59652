package search

import "github.com/poiesic/facultydir/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterCatalogFetch(catalog core.Catalog)
	AfterCollect(results []core.SearchResult)
	AfterMerge(results []core.SearchResult)
	AfterTrendingFetch(department string, names []string)
	Finish(trending, regular []core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                             {}
func (n *noopMonitor) AfterCatalogFetch(_ core.Catalog)           {}
func (n *noopMonitor) AfterCollect(_ []core.SearchResult)         {}
func (n *noopMonitor) AfterMerge(_ []core.SearchResult)           {}
func (n *noopMonitor) AfterTrendingFetch(_ string, _ []string)    {}
func (n *noopMonitor) Finish(_, _ []core.SearchResult)            {}
