package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL})
}

func TestRequestWrappedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data":{"name":"wrapped"},"meta":{"timestamp":123}}`)
	})

	resp := Get[payload](client, context.Background(), "/api/thing", nil)

	require.True(t, resp.Success)
	assert.Equal(t, "wrapped", resp.Data.Name)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(123), resp.Meta.Timestamp)
	assert.Nil(t, resp.Error)
}

func TestRequestBareBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"name":"bare"}`)
	})

	resp := Get[payload](client, context.Background(), "/api/thing", nil)

	require.True(t, resp.Success)
	assert.Equal(t, "bare", resp.Data.Name, "a body without a data wrapper is the payload itself")
}

func TestRequestBareArrayBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"name":"a"},{"name":"b"}]`)
	})

	resp := Get[[]payload](client, context.Background(), "/api/things", nil)

	require.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "b", resp.Data[1].Name)
}

func TestRequestHTTPErrorWithBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"code":"UNSUPPORTED_COUNTRY","message":"country not supported","details":{"countryCode":"XX"}}`)
	})

	resp := Get[payload](client, context.Background(), "/api/thing", nil)

	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNSUPPORTED_COUNTRY", resp.Error.Code)
	assert.Equal(t, "country not supported", resp.Error.Message)
	assert.Equal(t, "XX", resp.Error.Details["countryCode"])
}

func TestRequestHTTPErrorFallbacks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, `{}`)
	})

	resp := Get[payload](client, context.Background(), "/api/thing", nil)

	require.False(t, resp.Success)
	assert.Equal(t, "503", resp.Error.Code, "missing code falls back to the status")
	assert.Equal(t, http.StatusText(http.StatusServiceUnavailable), resp.Error.Message)
}

func TestRequestNumericErrorCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"code":4001,"message":"bad filter"}`)
	})

	resp := Get[payload](client, context.Background(), "/api/thing", nil)

	require.False(t, resp.Success)
	assert.Equal(t, "4001", resp.Error.Code)
}

func TestRequestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing is listening any more

	client := NewClient(Config{BaseURL: srv.URL})
	resp := Get[payload](client, context.Background(), "/api/thing", nil)

	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNetwork, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.Message)
}

func TestRequestInvalidJSONIsNetworkError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html>definitely not json</html>`)
	})

	resp := Get[payload](client, context.Background(), "/api/thing", nil)

	require.False(t, resp.Success)
	assert.Equal(t, ErrCodeNetwork, resp.Error.Code)
}

func TestGetEncodesParams(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		io.WriteString(w, `{}`)
	})

	Get[payload](client, context.Background(), "/api/thing", &Options{
		Params: map[string]any{
			"limit":   10,
			"q":       "red dress",
			"skipped": nil,
			"flag":    true,
		},
	})

	assert.Equal(t, "flag=true&limit=10&q=red+dress", gotQuery, "nil params are omitted, the rest stringified")
}

func TestPostSerializesBody(t *testing.T) {
	var gotBody map[string]any
	var gotContentType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{}`)
	})

	Post[payload](client, context.Background(), "/api/thing", map[string]string{"query": "red dress"}, nil)

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "red dress", gotBody["query"])
}

func TestBuildURL(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://localhost:8000"})

	assert.Equal(t, "http://localhost:8000/api/search", client.buildURL("/api/search"))
	assert.Equal(t, "http://localhost:8000/api/search", client.buildURL("api/search"), "missing slash is added")
	assert.Equal(t, "https://elsewhere.example.com/x", client.buildURL("https://elsewhere.example.com/x"), "absolute endpoints pass through")
}

func TestRequestHeadersMerge(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	client := NewClient(Config{
		BaseURL: srv.URL,
		Headers: map[string]string{"X-Store": "fitsearch"},
	})
	Get[payload](client, context.Background(), "/api/thing", &Options{
		Headers: map[string]string{"X-Request": "override"},
	})

	assert.Equal(t, "fitsearch", got.Get("X-Store"))
	assert.Equal(t, "override", got.Get("X-Request"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
}
