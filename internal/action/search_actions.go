package action

import (
	"context"

	"go.uber.org/zap"

	"github.com/fitsearch/fitsearch-go/internal/api"
	"github.com/fitsearch/fitsearch-go/internal/domain"
	"github.com/fitsearch/fitsearch-go/internal/state"
)

// genericSearchError is the fallback when a failed search carries no message.
const genericSearchError = "An error occurred during search"

// SearchAPI is the slice of the search service the search actions need.
type SearchAPI interface {
	Search(ctx context.Context, req *domain.SearchRequest) *api.Response[domain.SearchResult]
	Trending(ctx context.Context, limit int) *api.Response[domain.SearchResult]
}

// SearchActions mutates the search store and talks to the search service.
type SearchActions struct {
	store  *state.Store
	search SearchAPI
	logger *zap.Logger
}

// NewSearchActions creates the search action set.
func NewSearchActions(store *state.Store, search SearchAPI, logger *zap.Logger) *SearchActions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchActions{store: store, search: search, logger: logger}
}

// PerformSearch runs a search with the current query, image, filters and
// paging. On success results and total are applied atomically; on failure
// the error cell is set and the previous results stay untouched. Returns
// the result payload, or nil on failure.
func (a *SearchActions) PerformSearch(ctx context.Context) *domain.SearchResult {
	search := a.store.Search

	a.store.Batch(func() {
		search.IsSearching.Set(true)
		search.Error.Set("")
	})

	params := search.Params.Get()
	req := &domain.SearchRequest{
		Query:    search.Query.Get(),
		ImageURL: search.Image.Get(),
		Filters:  search.Filters.Get(),
		Page:     params.Pagination.Page,
		Limit:    params.Pagination.Limit,
		Sort:     params.Sort,
	}

	resp := a.search.Search(ctx, req)
	if !resp.Success {
		a.applySearchFailure(resp.Error)
		return nil
	}

	a.applySearchResult(resp.Data)
	result := resp.Data
	return &result
}

// LoadTrending fills the results from the trending feed, applying them the
// same way PerformSearch does.
func (a *SearchActions) LoadTrending(ctx context.Context, limit int) *domain.SearchResult {
	search := a.store.Search

	a.store.Batch(func() {
		search.IsSearching.Set(true)
		search.Error.Set("")
	})

	resp := a.search.Trending(ctx, limit)
	if !resp.Success {
		a.applySearchFailure(resp.Error)
		return nil
	}

	a.applySearchResult(resp.Data)
	result := resp.Data
	return &result
}

func (a *SearchActions) applySearchResult(result domain.SearchResult) {
	search := a.store.Search

	products := result.Products
	if products == nil {
		products = []domain.Product{}
	}
	a.store.Batch(func() {
		search.Results.Set(products)
		search.ResultsTotal.Set(result.Total)
		search.IsSearching.Set(false)
	})
}

func (a *SearchActions) applySearchFailure(apiErr *api.Error) {
	search := a.store.Search

	message := genericSearchError
	if apiErr != nil && apiErr.Message != "" {
		message = apiErr.Message
	}
	a.logger.Warn("search failed", zap.String("error", message))
	a.store.Batch(func() {
		search.Error.Set(message)
		search.IsSearching.Set(false)
	})
}

// UpdateQuery replaces the search query.
func (a *SearchActions) UpdateQuery(query string) {
	a.store.Search.Query.Set(query)
}

// UpdateImage replaces the search image URL ("" clears it).
func (a *SearchActions) UpdateImage(imageURL string) {
	a.store.Search.Image.Set(imageURL)
}

// UpdateFilters replaces the search filters.
func (a *SearchActions) UpdateFilters(filters map[string]any) {
	a.store.Search.Filters.Set(filters)
}

// UpdatePagination moves to the given page. A non-positive limit keeps the
// current one, defaulting to the standard page size.
func (a *SearchActions) UpdatePagination(page, limit int) {
	search := a.store.Search

	params := search.Params.Get()
	if limit <= 0 {
		limit = params.Pagination.Limit
	}
	if limit <= 0 {
		limit = state.DefaultLimit
	}
	params.Pagination = domain.Pagination{Page: page, Limit: limit}
	search.Params.Set(params)
}

// ClearResults drops the results and their total in one notification.
func (a *SearchActions) ClearResults() {
	search := a.store.Search

	a.store.Batch(func() {
		search.Results.Set([]domain.Product{})
		search.ResultsTotal.Set(0)
	})
}

// ResetSearch restores every search cell to its default in one atomic
// update.
func (a *SearchActions) ResetSearch() {
	search := a.store.Search

	a.store.Batch(func() {
		search.Query.Set("")
		search.Image.Set("")
		search.Results.Set([]domain.Product{})
		search.Filters.Set(map[string]any{})
		search.Params.Set(state.DefaultSearchParams())
		search.Error.Set("")
		search.IsSearching.Set(false)
		search.ResultsTotal.Set(0)
	})
}
