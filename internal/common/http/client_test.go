// internal/common/http/client_test.go
package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetSetsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "availability-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(2 * time.Second).WithUserAgent("availability-test")
	resp, err := client.Get(context.Background(), server.URL, map[string]string{"Accept": "application/json"})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 2*time.Second, client.Timeout())
}

func TestClient_TimeoutIsDetected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(50 * time.Millisecond)
	ctx := context.Background()
	resp, err := client.Get(ctx, server.URL, nil)
	if resp != nil {
		resp.Body.Close()
	}

	require.Error(t, err)
	assert.True(t, IsTimeout(ctx, err), "expected timeout, got %v", err)
}

func TestIsTimeout(t *testing.T) {
	assert.False(t, IsTimeout(context.Background(), nil))
	assert.False(t, IsTimeout(context.Background(), errors.New("connection refused")))
	assert.True(t, IsTimeout(context.Background(), context.DeadlineExceeded))

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()
	assert.True(t, IsTimeout(ctx, errors.New("anything")))
}
