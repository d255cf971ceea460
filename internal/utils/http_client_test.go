package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_Defaults(t *testing.T) {
	var gotAgent, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewHTTPClient(5 * time.Second)
	require.NotNil(t, client.Client)
	assert.Equal(t, 5*time.Second, client.GetClient().Timeout)

	resp, err := client.R().Get(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode())
	assert.Equal(t, UserAgent, gotAgent)
	assert.Equal(t, "application/json", gotAccept)
}

func TestNewHTTPClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewHTTPClient(50 * time.Millisecond).R().Get(srv.URL)
	assert.Error(t, err)
}

func TestNewHTTPClient_Independence(t *testing.T) {
	a := NewHTTPClient(time.Second)
	b := NewHTTPClient(time.Second)

	assert.NotSame(t, a.Client, b.Client)
}
