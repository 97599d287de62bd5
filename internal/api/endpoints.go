package api

// Storefront API endpoints, relative to the configured base URL.
const (
	EndpointSearch   = "/api/search"
	EndpointTrending = "/api/trending"
	EndpointProducts = "/api/products"
	EndpointChat     = "/api/chat"
	EndpointLocation = "/api/location"
	EndpointBrands   = "/api/brands"
)
