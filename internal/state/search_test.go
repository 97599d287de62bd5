package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fitsearch/fitsearch-go/internal/domain"
)

func TestSearchStoreDefaults(t *testing.T) {
	s := NewSearchStore(NewHub())

	assert.Equal(t, "", s.Query.Get())
	assert.Equal(t, "", s.Image.Get())
	assert.Empty(t, s.Results.Get())
	assert.Empty(t, s.Filters.Get())
	assert.Equal(t, DefaultSearchParams(), s.Params.Get())
	assert.False(t, s.IsSearching.Get())
	assert.Equal(t, "", s.Error.Get())
	assert.Equal(t, 0, s.ResultsTotal.Get())

	assert.False(t, s.HasResults.Get())
	assert.Equal(t, 1, s.CurrentPage.Get())
	assert.Equal(t, 0, s.TotalPages.Get())
	assert.False(t, s.HasNextPage.Get())
	assert.False(t, s.HasPreviousPage.Get())
}

func TestSearchStorePaging(t *testing.T) {
	s := NewSearchStore(NewHub())

	// 45 results at 20 per page span 3 pages.
	s.ResultsTotal.Set(45)
	assert.Equal(t, 3, s.TotalPages.Get())

	assert.True(t, s.HasNextPage.Get())
	assert.False(t, s.HasPreviousPage.Get())

	params := s.Params.Get()
	params.Pagination.Page = 2
	s.Params.Set(params)
	assert.True(t, s.HasNextPage.Get())
	assert.True(t, s.HasPreviousPage.Get())

	params.Pagination.Page = 3
	s.Params.Set(params)
	assert.False(t, s.HasNextPage.Get())
	assert.True(t, s.HasPreviousPage.Get())
}

func TestSearchStoreZeroParamsFallBack(t *testing.T) {
	s := NewSearchStore(NewHub())

	s.Params.Set(domain.SearchParams{})
	s.ResultsTotal.Set(45)

	assert.Equal(t, 1, s.CurrentPage.Get(), "missing page falls back to 1")
	assert.Equal(t, 3, s.TotalPages.Get(), "missing limit falls back to 20")
}

func TestSearchStoreHasResults(t *testing.T) {
	s := NewSearchStore(NewHub())

	s.Results.Set([]domain.Product{{ID: "p-1"}})
	assert.True(t, s.HasResults.Get())

	s.Results.Set([]domain.Product{})
	assert.False(t, s.HasResults.Get())
}
