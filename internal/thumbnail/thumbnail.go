// Package thumbnail keeps one local copy of each post's image, named after a hash of the post id.
package thumbnail

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"

	"github.com/osse101/InstaSync_Go/internal/domain"
	"github.com/osse101/InstaSync_Go/internal/logger"
	"github.com/osse101/InstaSync_Go/internal/metrics"
)

// Store persists thumbnails by name
type Store interface {
	// Find returns the URI of a stored file named "<hash>.<ext>" for any extension
	Find(ctx context.Context, hash string) (uri string, ok bool, err error)
	// Save writes data under name and returns its URI
	Save(ctx context.Context, name, contentType string, data []byte) (uri string, err error)
}

// Fetcher downloads post images into a Store
type Fetcher struct {
	store   Store
	client  *http.Client
	maxSize int64
}

// NewFetcher creates a new thumbnail fetcher
func NewFetcher(store Store, client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{store: store, client: client, maxSize: maxImageSize}
}

// Hash returns the unpadded URL-safe base64 SHA-256 of a post id
func Hash(id string) string {
	sum := sha256.Sum256([]byte(id))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// LocalURI returns the URI of the post's stored thumbnail, downloading it on first use.
// Failures are logged and reported as false.
func (f *Fetcher) LocalURI(ctx context.Context, post domain.Post) (string, bool) {
	log := logger.FromContext(ctx).With("post_id", post.ID)
	hash := Hash(post.ID)

	uri, ok, err := f.store.Find(ctx, hash)
	if err != nil {
		metrics.ThumbnailsTotal.WithLabelValues(metrics.ResultError).Inc()
		log.Warn(LogMsgLookupFailed, "error", err)
		return "", false
	}
	if ok {
		metrics.ThumbnailsTotal.WithLabelValues(metrics.ResultHit).Inc()
		return uri, true
	}

	imageURL := post.ImageURL()
	if imageURL == "" {
		metrics.ThumbnailsTotal.WithLabelValues(metrics.ResultError).Inc()
		log.Warn(LogMsgNoImageURL)
		return "", false
	}

	data, contentType, ok := f.download(ctx, imageURL)
	if !ok {
		metrics.ThumbnailsTotal.WithLabelValues(metrics.ResultError).Inc()
		return "", false
	}

	ext := Extension(imageURL, contentType, data)
	if ext == "" {
		metrics.ThumbnailsTotal.WithLabelValues(metrics.ResultError).Inc()
		log.Warn(LogMsgUnknownExtension, "content_type", contentType)
		return "", false
	}

	uri, err = f.store.Save(ctx, hash+"."+ext, contentType, data)
	if err != nil {
		metrics.ThumbnailsTotal.WithLabelValues(metrics.ResultError).Inc()
		log.Warn(LogMsgStoreFailed, "error", err)
		return "", false
	}

	metrics.ThumbnailsTotal.WithLabelValues(metrics.ResultMiss).Inc()
	log.Debug(LogMsgThumbnailStored, "uri", uri)
	return uri, true
}

func (f *Fetcher) download(ctx context.Context, imageURL string) ([]byte, string, bool) {
	log := logger.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		log.Warn(LogMsgDownloadFailed, "error", err)
		return nil, "", false
	}

	resp, err := f.client.Do(req)
	if err != nil {
		log.Warn(LogMsgDownloadFailed, "error", err)
		return nil, "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn(LogMsgUnexpectedStatus, "status", resp.StatusCode)
		return nil, "", false
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		log.Warn(LogMsgDownloadFailed, "error", err)
		return nil, "", false
	}
	if int64(len(data)) > f.maxSize {
		log.Warn(LogMsgImageTooLarge, "limit_bytes", f.maxSize)
		return nil, "", false
	}
	return data, resp.Header.Get("Content-Type"), true
}

// Extension picks a file extension, without the dot, from the URL path,
// then the Content-Type header, then the content itself
func Extension(imageURL, contentType string, data []byte) string {
	if u, err := url.Parse(imageURL); err == nil {
		if ext := strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), ".")); ext != "" {
			return ext
		}
	}

	if contentType != "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
			if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
				return strings.TrimPrefix(pickExtension(exts), ".")
			}
		}
	}

	head := data
	if len(head) > sniffLength {
		head = head[:sniffLength]
	}
	kind, err := filetype.Match(head)
	if err != nil || kind == types.Unknown {
		return ""
	}
	return kind.Extension
}

func pickExtension(exts []string) string {
	for _, p := range preferredExtensions {
		if slices.Contains(exts, p) {
			return p
		}
	}
	return exts[0]
}

// DetectContentType returns the MIME type of data when the server did not send one
func DetectContentType(contentType string, data []byte) string {
	if contentType != "" {
		return contentType
	}
	kind, err := filetype.Match(data)
	if err != nil || kind == types.Unknown {
		return http.DetectContentType(data)
	}
	return kind.MIME.Value
}
