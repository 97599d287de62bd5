package domain

// Product represents a single storefront product
type Product struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Brand         string         `json:"brand"`
	Price         float64        `json:"price"`
	OriginalPrice float64        `json:"original_price,omitempty"`
	Discount      float64        `json:"discount,omitempty"`
	Currency      string         `json:"currency"`
	Description   string         `json:"description,omitempty"`
	ImageURL      string         `json:"image_url"`
	Images        []string       `json:"images,omitempty"`
	Colors        []ProductColor `json:"colors,omitempty"`
	Sizes         []ProductSize  `json:"sizes,omitempty"`
	Categories    []string       `json:"categories,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	Rating        float64        `json:"rating,omitempty"`
	ReviewCount   int            `json:"review_count,omitempty"`
	InStock       bool           `json:"in_stock"`
	URL           string         `json:"url"` // product page on the retailer's site
}

// ProductColor represents one color variant of a product
type ProductColor struct {
	Name     string `json:"name"`
	Value    string `json:"value"` // hex code or color name
	ImageURL string `json:"image_url,omitempty"`
}

// ProductSize represents one size variant of a product
type ProductSize struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	InStock bool   `json:"in_stock"`
}

// Brand represents a retailer brand
type Brand struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Logo        string `json:"logo,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
}

// SortParams describes a sort field and direction
type SortParams struct {
	Field string `json:"field"`
	Order string `json:"order"` // asc, desc
}

// Pagination describes a page window
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// SearchParams holds the client-side search parameters (pagination + sort)
type SearchParams struct {
	Pagination Pagination  `json:"pagination"`
	Sort       *SortParams `json:"sort,omitempty"`
}

// SearchRequest is the request body for a product search
type SearchRequest struct {
	Query    string         `json:"query,omitempty"`
	ImageURL string         `json:"imageUrl,omitempty"`
	Filters  map[string]any `json:"filters,omitempty"`
	Page     int            `json:"page,omitempty"`
	Limit    int            `json:"limit,omitempty"`
	Sort     *SortParams    `json:"sort,omitempty"`
}

// SearchResult is the payload returned by the search and trending endpoints
type SearchResult struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}
