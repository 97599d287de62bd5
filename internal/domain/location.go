package domain

// Location represents a detected or manually selected location
type Location struct {
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	City        string `json:"city,omitempty"`
	Region      string `json:"region,omitempty"`
	Currency    string `json:"currency,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
}

// Country is one entry of the supported-country list
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
