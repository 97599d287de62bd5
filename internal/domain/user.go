package domain

// User represents the signed-in shopper
type User struct {
	ID          string           `json:"id"`
	Name        string           `json:"name,omitempty"`
	Email       string           `json:"email,omitempty"`
	Preferences *UserPreferences `json:"preferences,omitempty"`
}

// UserPreferences holds per-user display preferences
type UserPreferences struct {
	Location string `json:"location,omitempty"`
	Currency string `json:"currency,omitempty"`
	Language string `json:"language,omitempty"`
}
