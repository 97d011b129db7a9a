package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/osse101/InstaSync_Go/internal/config"
	"github.com/osse101/InstaSync_Go/internal/media"
	"github.com/osse101/InstaSync_Go/internal/thumbnail"
)

// InitializeThumbnails builds the thumbnail source selected by THUMBNAIL_STORE.
// It returns nil when thumbnails are disabled, which leaves thumbnail_uri unresolved.
func InitializeThumbnails(ctx context.Context, cfg *config.Config, client *http.Client) (media.ThumbnailSource, error) {
	var store thumbnail.Store

	switch cfg.ThumbnailStore {
	case config.ThumbnailStoreNone:
		slog.Info(LogMsgThumbnailsDisabled)
		return nil, nil

	case config.ThumbnailStoreDir:
		store = thumbnail.NewDirStore(cfg.ThumbnailDir)

	case config.ThumbnailStoreS3:
		s3cfg := thumbnail.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Prefix:    config.DefaultThumbnailDirectory,
			PublicURL: cfg.S3PublicURL,
		}
		s3Client, err := thumbnail.NewS3Client(ctx, s3cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateS3, err)
		}
		store = thumbnail.NewS3Store(s3Client, s3cfg)

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownThumbStore, cfg.ThumbnailStore)
	}

	slog.Info(LogMsgThumbnailsEnabled, "store", cfg.ThumbnailStore)
	return thumbnail.NewFetcher(store, client), nil
}
