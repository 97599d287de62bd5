package state

import "github.com/fitsearch/fitsearch-go/internal/domain"

// Location fallbacks used when nothing has been detected or selected.
const (
	FallbackCountryCode = "US"
	FallbackCountryName = "United States"
	FallbackCurrency    = "USD"
)

// LocationStore holds the shopper's location state.
type LocationStore struct {
	Current            *Signal[*domain.Location]
	AvailableCountries *Signal[[]domain.Country]
	IsDetecting        *Signal[bool]
	Error              *Signal[string] // "" when clear

	CountryCode *Computed[string]
	CountryName *Computed[string]
	HasLocation *Computed[bool]
	Currency    *Computed[string]
}

// NewLocationStore creates a location store seeded with the static
// supported-country list.
func NewLocationStore(hub *Hub) *LocationStore {
	s := &LocationStore{
		Current:            NewSignal[*domain.Location](hub, nil),
		AvailableCountries: NewSignal(hub, SeedCountries()),
		IsDetecting:        NewSignal(hub, false),
		Error:              NewSignal(hub, ""),
	}

	s.CountryCode = NewComputed(hub, func() string {
		if loc := s.Current.Get(); loc != nil && loc.CountryCode != "" {
			return loc.CountryCode
		}
		return FallbackCountryCode
	}, s.Current)

	s.CountryName = NewComputed(hub, func() string {
		code := s.CountryCode.Get()
		for _, country := range s.AvailableCountries.Get() {
			if country.Code == code {
				return country.Name
			}
		}
		return FallbackCountryName
	}, s.CountryCode, s.AvailableCountries)

	s.HasLocation = NewComputed(hub, func() bool {
		return s.Current.Get() != nil
	}, s.Current)

	s.Currency = NewComputed(hub, func() string {
		if loc := s.Current.Get(); loc != nil && loc.Currency != "" {
			return loc.Currency
		}
		return FallbackCurrency
	}, s.Current)

	return s
}

// SeedCountries returns the static supported-country list.
func SeedCountries() []domain.Country {
	return []domain.Country{
		{Code: "US", Name: "United States"},
		{Code: "GB", Name: "United Kingdom"},
		{Code: "CA", Name: "Canada"},
		{Code: "AU", Name: "Australia"},
		{Code: "DE", Name: "Germany"},
		{Code: "FR", Name: "France"},
		{Code: "ES", Name: "Spain"},
		{Code: "IT", Name: "Italy"},
		{Code: "JP", Name: "Japan"},
		{Code: "KR", Name: "South Korea"},
	}
}
