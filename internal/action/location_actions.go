package action

import (
	"context"

	"go.uber.org/zap"

	"github.com/fitsearch/fitsearch-go/internal/api"
	"github.com/fitsearch/fitsearch-go/internal/domain"
	"github.com/fitsearch/fitsearch-go/internal/state"
)

// genericLocationError is the fallback when a location call carries no message.
const genericLocationError = "An error occurred while detecting location"

// LocationAPI is the slice of the location service the location actions need.
type LocationAPI interface {
	Detect(ctx context.Context) *api.Response[domain.Location]
	Set(ctx context.Context, countryCode string) *api.Response[domain.Location]
	Countries(ctx context.Context) *api.Response[[]domain.Country]
}

// LocationActions mutates the location store and talks to the location
// service.
type LocationActions struct {
	store    *state.Store
	location LocationAPI
	logger   *zap.Logger
}

// NewLocationActions creates the location action set.
func NewLocationActions(store *state.Store, location LocationAPI, logger *zap.Logger) *LocationActions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocationActions{store: store, location: location, logger: logger}
}

// Detect asks the server to infer the caller's location.
func (a *LocationActions) Detect(ctx context.Context) *domain.Location {
	return a.apply(func() *api.Response[domain.Location] {
		return a.location.Detect(ctx)
	})
}

// Set selects a country manually.
func (a *LocationActions) Set(ctx context.Context, countryCode string) *domain.Location {
	return a.apply(func() *api.Response[domain.Location] {
		return a.location.Set(ctx, countryCode)
	})
}

func (a *LocationActions) apply(call func() *api.Response[domain.Location]) *domain.Location {
	loc := a.store.Location

	a.store.Batch(func() {
		loc.IsDetecting.Set(true)
		loc.Error.Set("")
	})

	resp := call()
	if !resp.Success {
		message := genericLocationError
		if resp.Error != nil && resp.Error.Message != "" {
			message = resp.Error.Message
		}
		a.logger.Warn("location call failed", zap.String("error", message))
		a.store.Batch(func() {
			loc.Error.Set(message)
			loc.IsDetecting.Set(false)
		})
		return nil
	}

	current := resp.Data
	a.store.Batch(func() {
		loc.Current.Set(&current)
		loc.IsDetecting.Set(false)
	})
	return &current
}

// LoadCountries refreshes the supported-country list from the server. The
// static seed stays in place when the call fails or returns nothing.
func (a *LocationActions) LoadCountries(ctx context.Context) {
	loc := a.store.Location

	resp := a.location.Countries(ctx)
	if !resp.Success {
		if resp.Error != nil {
			loc.Error.Set(resp.Error.Message)
		}
		return
	}
	if len(resp.Data) > 0 {
		loc.AvailableCountries.Set(resp.Data)
	}
}
