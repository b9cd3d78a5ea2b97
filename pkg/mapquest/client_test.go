package mapquest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresKey(t *testing.T) {
	client, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Nil(t, client)
}

func TestStaticMapURL(t *testing.T) {
	client, err := NewClient(Config{APIKey: "test-key"})
	require.NoError(t, err)

	raw := client.StaticMapURL("500 Sansome St", "San Francisco", "CA")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "www.mapquestapi.com", u.Host)
	assert.Equal(t, "/staticmap/v5/map", u.Path)

	q := u.Query()
	assert.Equal(t, "test-key", q.Get("key"))
	assert.Equal(t, "500 Sansome St,San Francisco,CA", q.Get("center"))
	assert.Equal(t, "500 Sansome St,San Francisco,CA", q.Get("locations"))
	assert.Equal(t, "@2x", q.Get("size"))
	assert.Equal(t, "15", q.Get("zoom"))
}

func TestFetchStaticMap(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	body, err := client.FetchStaticMap(context.Background(), "1 Main St", "Oakland", "CA")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), body)
	assert.Equal(t, "1 Main St,Oakland,CA", gotQuery.Get("center"))
}

func TestFetchStaticMap_NonOKStillReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad key"))
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	body, err := client.FetchStaticMap(context.Background(), "1 Main St", "Oakland", "CA")
	require.NoError(t, err)
	assert.Equal(t, []byte("bad key"), body)
}

func TestFetchStaticMap_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: baseURL})
	require.NoError(t, err)

	_, err = client.FetchStaticMap(context.Background(), "1 Main St", "Oakland", "CA")
	assert.Error(t, err)
}
