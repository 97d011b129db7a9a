package thumbnail

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/InstaSync_Go/internal/domain"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

func TestHash(t *testing.T) {
	h := Hash("17895695668004550")
	assert.Len(t, h, 43, "unpadded base64 of 32 bytes")
	assert.NotContains(t, h, "=")
	assert.NotContains(t, h, "+")
	assert.NotContains(t, h, "/")
	assert.Equal(t, h, Hash("17895695668004550"))
}

func TestExtension(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		contentType string
		data        []byte
		want        string
	}{
		{"from path", "https://cdn.test/a/photo.JPG?x=1", "image/png", pngBytes, "jpg"},
		{"from content type", "https://cdn.test/a/photo", "image/png", jpegBytes, "png"},
		{"content type with params", "https://cdn.test/a/photo", "image/jpeg; charset=binary", nil, "jpg"},
		{"from content", "https://cdn.test/a/photo", "", pngBytes, "png"},
		{"unknown", "https://cdn.test/a/photo", "", []byte("hello"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extension(tt.url, tt.contentType, tt.data))
		})
	}
}

func newImageServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/photo.jpg", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(jpegBytes)
	})
	mux.HandleFunc("/sniff", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		// Suppress automatic content type detection
		w.Header()["Content-Type"] = nil
		_, _ = w.Write(pngBytes)
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_DownloadsOnceAndReuses(t *testing.T) {
	var hits atomic.Int32
	srv := newImageServer(t, &hits)
	dir := filepath.Join(t.TempDir(), "media_instagram")
	f := NewFetcher(NewDirStore(dir), srv.Client())

	post := domain.Post{ID: "1", ThumbnailURL: srv.URL + "/photo.jpg", MediaURL: srv.URL + "/gone"}

	uri, ok := f.LocalURI(context.Background(), post)
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(uri, Hash("1")+".jpg"), uri)

	data, err := os.ReadFile(filepath.FromSlash(uri))
	require.NoError(t, err)
	assert.Equal(t, jpegBytes, data)

	again, ok := f.LocalURI(context.Background(), post)
	require.True(t, ok)
	assert.Equal(t, uri, again)
	assert.Equal(t, int32(1), hits.Load(), "existing file is reused")
}

func TestFetcher_ReusesFileWithAnyExtension(t *testing.T) {
	var hits atomic.Int32
	srv := newImageServer(t, &hits)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, Hash("7")+".webp"), []byte("x"), 0o644))

	f := NewFetcher(NewDirStore(dir), srv.Client())
	uri, ok := f.LocalURI(context.Background(), domain.Post{ID: "7", MediaURL: srv.URL + "/photo.jpg"})

	require.True(t, ok)
	assert.True(t, strings.HasSuffix(uri, ".webp"))
	assert.Zero(t, hits.Load())
}

func TestFetcher_FallsBackToMediaURLAndSniffs(t *testing.T) {
	var hits atomic.Int32
	srv := newImageServer(t, &hits)
	f := NewFetcher(NewDirStore(t.TempDir()), srv.Client())

	uri, ok := f.LocalURI(context.Background(), domain.Post{ID: "2", MediaURL: srv.URL + "/sniff"})
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(uri, ".png"), uri)
}

func TestFetcher_Failures(t *testing.T) {
	var hits atomic.Int32
	srv := newImageServer(t, &hits)
	f := NewFetcher(NewDirStore(t.TempDir()), srv.Client())

	_, ok := f.LocalURI(context.Background(), domain.Post{ID: "3", ThumbnailURL: srv.URL + "/gone"})
	assert.False(t, ok, "non-200 status")

	_, ok = f.LocalURI(context.Background(), domain.Post{ID: "4"})
	assert.False(t, ok, "no image url")

	_, ok = f.LocalURI(context.Background(), domain.Post{ID: "5", ThumbnailURL: "http://127.0.0.1:1/x.jpg"})
	assert.False(t, ok, "unreachable host")
}

func TestFetcher_RejectsOversizedImage(t *testing.T) {
	const limit = 64
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/big.jpg", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(append(append([]byte{}, jpegBytes...), make([]byte, limit)...))
	})
	mux.HandleFunc("/exact.jpg", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(append(append([]byte{}, jpegBytes...), make([]byte, limit-len(jpegBytes))...))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	f := NewFetcher(NewDirStore(dir), srv.Client())
	f.maxSize = limit

	_, ok := f.LocalURI(context.Background(), domain.Post{ID: "big", MediaURL: srv.URL + "/big.jpg"})
	assert.False(t, ok, "truncated image must not be stored")

	matches, err := filepath.Glob(filepath.Join(dir, Hash("big")+".*"))
	require.NoError(t, err)
	assert.Empty(t, matches)

	// Nothing was cached, so the next lookup downloads again
	_, ok = f.LocalURI(context.Background(), domain.Post{ID: "big", MediaURL: srv.URL + "/big.jpg"})
	assert.False(t, ok)
	assert.Equal(t, int32(2), hits.Load())

	uri, ok := f.LocalURI(context.Background(), domain.Post{ID: "exact", MediaURL: srv.URL + "/exact.jpg"})
	require.True(t, ok, "an image at the limit is accepted")
	data, err := os.ReadFile(filepath.FromSlash(uri))
	require.NoError(t, err)
	assert.Len(t, data, limit)
}
