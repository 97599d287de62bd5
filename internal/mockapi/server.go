package mockapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fitsearch/fitsearch-go/internal/domain"
)

// Server serves the storefront API endpoints from the local catalog.
type Server struct {
	catalog       *Catalog
	conversations *ConversationStore
	logger        *zap.Logger
}

// NewServer creates a mock API server.
func NewServer(catalog *Catalog, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		catalog:       catalog,
		conversations: NewConversationStore(),
		logger:        logger,
	}
}

// Router builds the Gin router for the mock API.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/search", s.search)
		apiGroup.GET("/trending", s.trending)
		apiGroup.GET("/products/:id", s.product)
		apiGroup.GET("/products/:id/recommendations", s.recommendations)
		apiGroup.GET("/brands", s.brands)

		apiGroup.POST("/chat", s.chat)
		apiGroup.GET("/chat", s.listConversations)
		apiGroup.GET("/chat/:id", s.getConversation)
		apiGroup.DELETE("/chat/:id", s.deleteConversation)

		apiGroup.GET("/location", s.detectLocation)
		apiGroup.POST("/location", s.setLocation)
		apiGroup.GET("/location/countries", s.countries)
	}

	return r
}

// respond writes the success envelope.
func respond(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"data":    data,
		"success": true,
		"meta":    gin.H{"timestamp": time.Now().UnixMilli()},
	})
}

// fail writes the error body the client's envelope parser expects: code and
// message at the top level.
func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"code":    code,
		"message": message,
	})
}

func limitParam(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		return 10
	}
	return limit
}

func (s *Server) search(c *gin.Context) {
	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := s.catalog.Search(req.Query, req.Page, req.Limit)
	if err != nil {
		s.logger.Error("catalog search failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "search failed")
		return
	}
	respond(c, result)
}

func (s *Server) trending(c *gin.Context) {
	result, err := s.catalog.Trending(limitParam(c))
	if err != nil {
		s.logger.Error("catalog trending failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "trending failed")
		return
	}
	respond(c, result)
}

func (s *Server) product(c *gin.Context) {
	product, err := s.catalog.Get(c.Param("id"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "product lookup failed")
		return
	}
	if product == nil {
		fail(c, http.StatusNotFound, "NOT_FOUND", "product not found")
		return
	}
	respond(c, product)
}

func (s *Server) recommendations(c *gin.Context) {
	result, err := s.catalog.Recommendations(c.Param("id"), limitParam(c))
	if err == domain.ErrNotFound {
		fail(c, http.StatusNotFound, "NOT_FOUND", "product not found")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "recommendations failed")
		return
	}
	respond(c, result)
}

func (s *Server) brands(c *gin.Context) {
	brands, err := s.catalog.Brands()
	if err != nil {
		s.logger.Error("catalog brands failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "CATALOG_ERROR", "brand listing failed")
		return
	}
	respond(c, brands)
}

func (s *Server) chat(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	conv := s.conversations.Get(req.ConversationID)
	if conv == nil {
		conv = s.conversations.Create()
	}

	s.conversations.Append(conv.ID, domain.ChatMessage{
		ID:        "user-" + uuid.NewString(),
		Content:   req.Message,
		Sender:    domain.SenderUser,
		Timestamp: time.Now().UnixMilli(),
	})

	reply := s.buildReply(conv.ID, req.Message)
	s.conversations.Append(conv.ID, domain.ChatMessage{
		ID:          reply.ID,
		Content:     reply.Message,
		Sender:      domain.SenderSystem,
		Timestamp:   time.Now().UnixMilli(),
		Attachments: reply.Attachments,
	})

	respond(c, reply)
}

// buildReply produces a deterministic assistant reply: matching catalog
// products become product attachments.
func (s *Server) buildReply(conversationID, message string) domain.ChatReply {
	reply := domain.ChatReply{
		ID:             "system-" + uuid.NewString(),
		ConversationID: conversationID,
	}

	result, err := s.catalog.Search(message, 1, 3)
	if err != nil || result.Total == 0 {
		reply.Message = fmt.Sprintf("I couldn't find anything matching %q. Try a different color, brand or category.", message)
		return reply
	}

	reply.Message = fmt.Sprintf("I found %d items matching %q. Here are the top picks:", result.Total, message)
	for _, p := range result.Products {
		reply.Attachments = append(reply.Attachments, domain.ChatAttachment{
			ID:          "attachment-" + uuid.NewString(),
			Type:        domain.AttachmentProduct,
			ProductID:   p.ID,
			URL:         p.URL,
			PreviewURL:  p.ImageURL,
			Title:       p.Name,
			Description: fmt.Sprintf("%s — %.2f %s", p.Brand, p.Price, p.Currency),
		})
	}
	return reply
}

func (s *Server) listConversations(c *gin.Context) {
	respond(c, s.conversations.List(limitParam(c)))
}

func (s *Server) getConversation(c *gin.Context) {
	conv := s.conversations.Get(c.Param("id"))
	if conv == nil {
		fail(c, http.StatusNotFound, "NOT_FOUND", "conversation not found")
		return
	}
	respond(c, conv)
}

func (s *Server) deleteConversation(c *gin.Context) {
	if !s.conversations.Delete(c.Param("id")) {
		fail(c, http.StatusNotFound, "NOT_FOUND", "conversation not found")
		return
	}
	respond(c, gin.H{"deleted": true})
}

func (s *Server) detectLocation(c *gin.Context) {
	// The real backend geolocates the caller; the mock always answers with
	// the default storefront region.
	respond(c, domain.Location{
		Country:     "United States",
		CountryCode: "US",
		City:        "New York",
		Region:      "NY",
		Currency:    "USD",
		Timezone:    "America/New_York",
	})
}

func (s *Server) setLocation(c *gin.Context) {
	var req struct {
		CountryCode string `json:"countryCode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	for _, country := range supportedCountries() {
		if country.location.CountryCode == req.CountryCode {
			respond(c, country.location)
			return
		}
	}
	fail(c, http.StatusBadRequest, "UNSUPPORTED_COUNTRY",
		fmt.Sprintf("country %q is not supported", req.CountryCode))
}

func (s *Server) countries(c *gin.Context) {
	countries := []domain.Country{}
	for _, country := range supportedCountries() {
		countries = append(countries, domain.Country{
			Code: country.location.CountryCode,
			Name: country.location.Country,
		})
	}
	respond(c, countries)
}

type supportedCountry struct {
	location domain.Location
}

func supportedCountries() []supportedCountry {
	return []supportedCountry{
		{domain.Location{Country: "United States", CountryCode: "US", Currency: "USD", Timezone: "America/New_York"}},
		{domain.Location{Country: "United Kingdom", CountryCode: "GB", Currency: "GBP", Timezone: "Europe/London"}},
		{domain.Location{Country: "Canada", CountryCode: "CA", Currency: "CAD", Timezone: "America/Toronto"}},
		{domain.Location{Country: "Australia", CountryCode: "AU", Currency: "AUD", Timezone: "Australia/Sydney"}},
		{domain.Location{Country: "Germany", CountryCode: "DE", Currency: "EUR", Timezone: "Europe/Berlin"}},
		{domain.Location{Country: "France", CountryCode: "FR", Currency: "EUR", Timezone: "Europe/Paris"}},
		{domain.Location{Country: "Spain", CountryCode: "ES", Currency: "EUR", Timezone: "Europe/Madrid"}},
		{domain.Location{Country: "Italy", CountryCode: "IT", Currency: "EUR", Timezone: "Europe/Rome"}},
		{domain.Location{Country: "Japan", CountryCode: "JP", Currency: "JPY", Timezone: "Asia/Tokyo"}},
		{domain.Location{Country: "South Korea", CountryCode: "KR", Currency: "KRW", Timezone: "Asia/Seoul"}},
	}
}
