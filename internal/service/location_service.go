package service

import (
	"context"

	"github.com/fitsearch/fitsearch-go/internal/api"
	"github.com/fitsearch/fitsearch-go/internal/domain"
)

// LocationService handles location API calls
type LocationService struct {
	client *api.Client
}

// NewLocationService creates a new location service
func NewLocationService(client *api.Client) *LocationService {
	return &LocationService{client: client}
}

// Detect detects the caller's location. The request carries no body; the
// server infers the location from the request origin.
func (s *LocationService) Detect(ctx context.Context) *api.Response[domain.Location] {
	return api.Get[domain.Location](s.client, ctx, api.EndpointLocation, nil)
}

// Set sets the location manually
func (s *LocationService) Set(ctx context.Context, countryCode string) *api.Response[domain.Location] {
	body := map[string]string{"countryCode": countryCode}
	return api.Post[domain.Location](s.client, ctx, api.EndpointLocation, body, nil)
}

// Countries returns the supported-country list
func (s *LocationService) Countries(ctx context.Context) *api.Response[[]domain.Country] {
	return api.Get[[]domain.Country](s.client, ctx, api.EndpointLocation+"/countries", nil)
}
