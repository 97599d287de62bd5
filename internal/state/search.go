package state

import "github.com/fitsearch/fitsearch-go/internal/domain"

// Search defaults
const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// SearchStore holds the product-search state: the current query, its
// results, and paging. Cells are independently observable; the derived
// values update with them.
type SearchStore struct {
	Query        *Signal[string]
	Image        *Signal[string] // optional image URL, "" when unset
	Results      *Signal[[]domain.Product]
	Filters      *Signal[map[string]any]
	Params       *Signal[domain.SearchParams]
	IsSearching  *Signal[bool]
	Error        *Signal[string] // "" when clear
	ResultsTotal *Signal[int]

	HasResults      *Computed[bool]
	CurrentPage     *Computed[int]
	TotalPages      *Computed[int]
	HasNextPage     *Computed[bool]
	HasPreviousPage *Computed[bool]
}

// NewSearchStore creates a search store with its documented defaults.
func NewSearchStore(hub *Hub) *SearchStore {
	s := &SearchStore{
		Query:        NewSignal(hub, ""),
		Image:        NewSignal(hub, ""),
		Results:      NewSignal(hub, []domain.Product{}),
		Filters:      NewSignal(hub, map[string]any{}),
		Params:       NewSignal(hub, DefaultSearchParams()),
		IsSearching:  NewSignal(hub, false),
		Error:        NewSignal(hub, ""),
		ResultsTotal: NewSignal(hub, 0),
	}

	s.HasResults = NewComputed(hub, func() bool {
		return len(s.Results.Get()) > 0
	}, s.Results)

	s.CurrentPage = NewComputed(hub, func() int {
		page := s.Params.Get().Pagination.Page
		if page == 0 {
			return DefaultPage
		}
		return page
	}, s.Params)

	s.TotalPages = NewComputed(hub, func() int {
		limit := s.Params.Get().Pagination.Limit
		if limit == 0 {
			limit = DefaultLimit
		}
		total := s.ResultsTotal.Get()
		return (total + limit - 1) / limit
	}, s.Params, s.ResultsTotal)

	s.HasNextPage = NewComputed(hub, func() bool {
		return s.CurrentPage.Get() < s.TotalPages.Get()
	}, s.CurrentPage, s.TotalPages)

	s.HasPreviousPage = NewComputed(hub, func() bool {
		return s.CurrentPage.Get() > 1
	}, s.CurrentPage)

	return s
}

// DefaultSearchParams returns the default pagination window.
func DefaultSearchParams() domain.SearchParams {
	return domain.SearchParams{
		Pagination: domain.Pagination{Page: DefaultPage, Limit: DefaultLimit},
	}
}
