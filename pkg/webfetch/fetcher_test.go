package webfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPageStripsMarkup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><script>alert(1)</script><style>p{}</style></head>` +
			`<body><h1>Market News</h1><p>Shipping rates rose today.</p></body></html>`))
	}))
	defer srv.Close()

	f := NewFetcher(2 * time.Second)
	got, err := f.FetchPage(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Contains(t, got, "Market News")
	assert.Contains(t, got, "Shipping rates rose today.")
	assert.NotContains(t, got, "alert(1)")
	assert.NotContains(t, got, "<p>")
}

func TestFetchPageNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewFetcher(2 * time.Second)
	_, err := f.FetchPage(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetchPageRespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	f := NewFetcher(2 * time.Second)
	_, err := f.FetchPage(ctx, srv.URL)
	assert.Error(t, err)
}
