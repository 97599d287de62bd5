package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fitsearch/fitsearch-go/internal/domain"
)

func TestLocationStoreFallbacks(t *testing.T) {
	s := NewLocationStore(NewHub())

	assert.Nil(t, s.Current.Get())
	assert.False(t, s.HasLocation.Get())
	assert.Equal(t, "US", s.CountryCode.Get())
	assert.Equal(t, "United States", s.CountryName.Get())
	assert.Equal(t, "USD", s.Currency.Get())
}

func TestLocationStoreResolvesCountryName(t *testing.T) {
	s := NewLocationStore(NewHub())

	s.Current.Set(&domain.Location{Country: "Germany", CountryCode: "DE", Currency: "EUR"})

	assert.True(t, s.HasLocation.Get())
	assert.Equal(t, "DE", s.CountryCode.Get())
	assert.Equal(t, "Germany", s.CountryName.Get())
	assert.Equal(t, "EUR", s.Currency.Get())
}

func TestLocationStoreUnknownCodeFallsBack(t *testing.T) {
	s := NewLocationStore(NewHub())

	s.Current.Set(&domain.Location{Country: "Atlantis", CountryCode: "AT"})

	assert.Equal(t, "AT", s.CountryCode.Get())
	assert.Equal(t, "United States", s.CountryName.Get(), "codes outside the seed list fall back")
}

func TestUserStoreDefaults(t *testing.T) {
	s := NewUserStore(NewHub())

	assert.Nil(t, s.CurrentUser.Get())
	assert.False(t, s.IsAuthenticated.Get())
	assert.Equal(t, DefaultPreferences(), s.Preferences.Get())
	assert.Equal(t, "Guest", s.UserName.Get())
	assert.Equal(t, "USD", s.UserCurrency.Get())
	assert.False(t, s.HasPreferences.Get())
}

func TestUserStoreDerivations(t *testing.T) {
	s := NewUserStore(NewHub())

	s.CurrentUser.Set(&domain.User{ID: "u-1", Name: "Dana"})
	assert.Equal(t, "Dana", s.UserName.Get())

	prefs := s.Preferences.Get()
	prefs.Location = "DE"
	prefs.Currency = "EUR"
	s.Preferences.Set(prefs)

	assert.Equal(t, "DE", s.UserLocation.Get())
	assert.Equal(t, "EUR", s.UserCurrency.Get())
	assert.True(t, s.HasPreferences.Get())
}
