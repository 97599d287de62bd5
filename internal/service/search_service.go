// Package service provides typed storefront API operations built on the
// api client. Services are pure pass-throughs: no retries, no caching, one
// round trip per call, and the client envelope is returned unchanged.
package service

import (
	"context"
	"fmt"

	"github.com/fitsearch/fitsearch-go/internal/api"
	"github.com/fitsearch/fitsearch-go/internal/domain"
)

// DefaultFeedLimit is the limit used by list endpoints when none is given.
const DefaultFeedLimit = 10

// SearchService handles product search and discovery calls
type SearchService struct {
	client *api.Client
}

// NewSearchService creates a new search service
func NewSearchService(client *api.Client) *SearchService {
	return &SearchService{client: client}
}

// Search searches for products
func (s *SearchService) Search(ctx context.Context, req *domain.SearchRequest) *api.Response[domain.SearchResult] {
	return api.Post[domain.SearchResult](s.client, ctx, api.EndpointSearch, req, nil)
}

// Trending returns the trending product feed
func (s *SearchService) Trending(ctx context.Context, limit int) *api.Response[domain.SearchResult] {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return api.Get[domain.SearchResult](s.client, ctx, api.EndpointTrending, &api.Options{
		Params: map[string]any{"limit": limit},
	})
}

// Recommendations returns products related to the given product
func (s *SearchService) Recommendations(ctx context.Context, productID string, limit int) *api.Response[domain.SearchResult] {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	endpoint := fmt.Sprintf("%s/%s/recommendations", api.EndpointProducts, productID)
	return api.Get[domain.SearchResult](s.client, ctx, endpoint, &api.Options{
		Params: map[string]any{"limit": limit},
	})
}

// Brands returns the retailer brands available in the catalog
func (s *SearchService) Brands(ctx context.Context) *api.Response[[]domain.Brand] {
	return api.Get[[]domain.Brand](s.client, ctx, api.EndpointBrands, nil)
}

// Product returns a single product by ID
func (s *SearchService) Product(ctx context.Context, productID string) *api.Response[domain.Product] {
	endpoint := fmt.Sprintf("%s/%s", api.EndpointProducts, productID)
	return api.Get[domain.Product](s.client, ctx, endpoint, nil)
}
