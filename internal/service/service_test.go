package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsearch/fitsearch-go/internal/api"
	"github.com/fitsearch/fitsearch-go/internal/domain"
)

// recorder captures the last request the services issued.
type recorder struct {
	method string
	path   string
	query  string
	body   []byte
}

func newRecordedClient(t *testing.T, rec *recorder, responseBody string) *api.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.body, _ = io.ReadAll(r.Body)
		io.WriteString(w, responseBody)
	}))
	t.Cleanup(srv.Close)
	return api.NewClient(api.Config{BaseURL: srv.URL})
}

func TestSearchServiceSearch(t *testing.T) {
	rec := &recorder{}
	svc := NewSearchService(newRecordedClient(t, rec,
		`{"data":{"products":[{"id":"p-1"}],"total":1,"page":1,"limit":20}}`))

	resp := svc.Search(context.Background(), &domain.SearchRequest{Query: "red dress", Page: 1, Limit: 20})

	require.True(t, resp.Success)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/search", rec.path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	assert.Equal(t, "red dress", sent["query"])

	assert.Equal(t, 1, resp.Data.Total)
	require.Len(t, resp.Data.Products, 1)
}

func TestSearchServiceTrendingDefaultsLimit(t *testing.T) {
	rec := &recorder{}
	svc := NewSearchService(newRecordedClient(t, rec, `{"data":{"products":[],"total":0}}`))

	svc.Trending(context.Background(), 0)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/trending", rec.path)
	assert.Equal(t, "limit=10", rec.query)
}

func TestSearchServiceRecommendationsPath(t *testing.T) {
	rec := &recorder{}
	svc := NewSearchService(newRecordedClient(t, rec, `{"data":{"products":[],"total":0}}`))

	svc.Recommendations(context.Background(), "p-1001", 5)

	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/products/p-1001/recommendations", rec.path)
	assert.Equal(t, "limit=5", rec.query)
}

func TestSearchServiceProductPath(t *testing.T) {
	rec := &recorder{}
	svc := NewSearchService(newRecordedClient(t, rec, `{"data":{"id":"p-1001"}}`))

	resp := svc.Product(context.Background(), "p-1001")

	require.True(t, resp.Success)
	assert.Equal(t, "/api/products/p-1001", rec.path)
	assert.Equal(t, "p-1001", resp.Data.ID)
}

func TestSearchServiceBrands(t *testing.T) {
	rec := &recorder{}
	svc := NewSearchService(newRecordedClient(t, rec,
		`{"data":[{"id":"velora","name":"Velora"}]}`))

	resp := svc.Brands(context.Background())

	require.True(t, resp.Success)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/brands", rec.path)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Velora", resp.Data[0].Name)
}

func TestChatServiceSendMessage(t *testing.T) {
	rec := &recorder{}
	svc := NewChatService(newRecordedClient(t, rec,
		`{"data":{"id":"reply-1","message":"found it"}}`))

	resp := svc.SendMessage(context.Background(), &domain.ChatRequest{
		Message:        "red dress",
		ConversationID: "conversation-9",
		Attachments:    []domain.PendingAttachment{{Type: domain.AttachmentImage, Content: "http://x/y.jpg"}},
	})

	require.True(t, resp.Success)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/chat", rec.path)
	assert.Equal(t, "found it", resp.Data.Message)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	assert.Equal(t, "conversation-9", sent["conversationId"])
}

func TestChatServiceConversationRoutes(t *testing.T) {
	rec := &recorder{}
	svc := NewChatService(newRecordedClient(t, rec, `{"data":[]}`))

	svc.Conversations(context.Background(), 0)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/chat", rec.path)
	assert.Equal(t, "limit=10", rec.query)

	svc.Conversation(context.Background(), "conv-1")
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/chat/conv-1", rec.path)

	svc.DeleteConversation(context.Background(), "conv-1")
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/api/chat/conv-1", rec.path)
}

func TestLocationServiceRoutes(t *testing.T) {
	rec := &recorder{}
	svc := NewLocationService(newRecordedClient(t, rec,
		`{"data":{"country":"Germany","countryCode":"DE"}}`))

	resp := svc.Detect(context.Background())
	require.True(t, resp.Success)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/location", rec.path)
	assert.Equal(t, "DE", resp.Data.CountryCode)

	svc.Set(context.Background(), "DE")
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/location", rec.path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	assert.Equal(t, "DE", sent["countryCode"])

	svc.Countries(context.Background())
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/location/countries", rec.path)
}
