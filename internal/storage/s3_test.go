package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"functionallab/coach-os/internal/config"
)

// fakeS3 records the requests an S3 client sends to a path-style endpoint.
type fakeS3 struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	switch r.Method {
	case http.MethodPut:
		b, _ := io.ReadAll(r.Body)
		f.bodies[r.URL.Path] = string(b)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestStorage(t *testing.T, endpoint string) FileStorage {
	t.Helper()
	s, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        endpoint,
		Region:          "us-east-1",
		AccessKeyID:     "test",
		SecretAccessKey: "test-secret",
		BucketName:      "coachos",
	}, zerolog.Nop())
	require.NoError(t, err)
	return s
}

func TestS3Storage_GeneratePresignedDownloadURL(t *testing.T) {
	s := newTestStorage(t, "http://127.0.0.1:9000")

	url, err := s.GeneratePresignedDownloadURL(context.Background(), "backups/a.json", time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://127.0.0.1:9000/coachos/backups/a.json?"), url)
	assert.Contains(t, url, "X-Amz-Expires=60")
	assert.Contains(t, url, "X-Amz-Signature=")
}

func TestS3Storage_PutAndDelete(t *testing.T) {
	fake := &fakeS3{bodies: map[string]string{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s := newTestStorage(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, s.PutObject(ctx, "backups/b.json", "application/json", []byte(`{"history":[]}`)))
	require.NoError(t, s.DeleteObject(ctx, "backups/b.json"))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.requests, 2)
	assert.Equal(t, "PUT /coachos/backups/b.json", fake.requests[0])
	assert.Equal(t, "DELETE /coachos/backups/b.json", fake.requests[1])
	assert.Contains(t, fake.bodies["/coachos/backups/b.json"], `{"history":[]}`)
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "", endpointURL(config.S3Config{}))
	assert.Equal(t, "https://minio:9000", endpointURL(config.S3Config{Endpoint: "minio:9000", UseSSL: true}))
	assert.Equal(t, "http://minio:9000", endpointURL(config.S3Config{Endpoint: "minio:9000"}))
	assert.Equal(t, "http://x", endpointURL(config.S3Config{Endpoint: "http://x", UseSSL: true}))
}
