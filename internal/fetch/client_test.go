package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetDocumentParsesPage(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`<html><body><div class="event-item">VCT</div></body></html>`))
	}))
	defer srv.Close()

	c := NewClient(0) // no pacing in tests
	doc, err := c.GetDocument(context.Background(), srv.URL)

	require.NoError(t, err)
	require.Equal(t, "VCT", doc.Find(".event-item").Text())
	require.Equal(t, UserAgent, gotUA)
}

func TestGetDocumentStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(0)
	_, err := c.GetDocument(context.Background(), srv.URL+"/event/999999")

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, http.StatusNotFound, fe.StatusCode)
	require.Contains(t, fe.Error(), "status 404")
}

func TestGetDocumentNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse the connection

	c := NewClient(0)
	_, err := c.GetDocument(context.Background(), srv.URL)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	require.Zero(t, fe.StatusCode)
	require.Error(t, fe.Unwrap())
}

func TestWaitHonorsCancellation(t *testing.T) {
	c := NewClient(10 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.wait(ctx)
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestWithUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	c := NewClient(0, WithUserAgent("stats-bot/1.0"))
	_, err := c.GetDocument(context.Background(), srv.URL)

	require.NoError(t, err)
	require.Equal(t, "stats-bot/1.0", gotUA)
}
