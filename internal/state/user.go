package state

import "github.com/fitsearch/fitsearch-go/internal/domain"

// FallbackUserName is shown when nobody is signed in.
const FallbackUserName = "Guest"

// UserStore holds the shopper's account state.
type UserStore struct {
	CurrentUser     *Signal[*domain.User]
	IsAuthenticated *Signal[bool]
	Preferences     *Signal[domain.UserPreferences]
	Error           *Signal[string] // "" when clear
	IsLoading       *Signal[bool]

	UserLocation   *Computed[string]
	UserCurrency   *Computed[string]
	UserName       *Computed[string]
	HasPreferences *Computed[bool]
}

// NewUserStore creates a user store with its documented defaults.
func NewUserStore(hub *Hub) *UserStore {
	s := &UserStore{
		CurrentUser:     NewSignal[*domain.User](hub, nil),
		IsAuthenticated: NewSignal(hub, false),
		Preferences:     NewSignal(hub, DefaultPreferences()),
		Error:           NewSignal(hub, ""),
		IsLoading:       NewSignal(hub, false),
	}

	s.UserLocation = NewComputed(hub, func() string {
		return s.Preferences.Get().Location
	}, s.Preferences)

	s.UserCurrency = NewComputed(hub, func() string {
		if currency := s.Preferences.Get().Currency; currency != "" {
			return currency
		}
		return FallbackCurrency
	}, s.Preferences)

	s.UserName = NewComputed(hub, func() string {
		if user := s.CurrentUser.Get(); user != nil && user.Name != "" {
			return user.Name
		}
		return FallbackUserName
	}, s.CurrentUser)

	s.HasPreferences = NewComputed(hub, func() bool {
		return s.Preferences.Get().Location != ""
	}, s.Preferences)

	return s
}

// DefaultPreferences returns the always-present preference defaults.
func DefaultPreferences() domain.UserPreferences {
	return domain.UserPreferences{
		Location: "",
		Currency: "USD",
		Language: "en",
	}
}
