// Package iostorage implements the pkg/storage ObjectStore contract
// for the local filesystem, AWS S3 and MinIO-compatible stores.
package iostorage

import (
	"fmt"

	"github.com/playlake/playlake/pkg/config"
	"github.com/playlake/playlake/pkg/storage"
)

// New creates the ObjectStore selected by cfg.Storage.Backend.
func New(cfg *config.Config) (storage.ObjectStore, error) {
	switch cfg.Storage.Backend {
	case "fs":
		return NewFS(cfg.Storage.Root)
	case "s3":
		return NewS3(&cfg.Storage)
	case "minio":
		return NewMinio(&cfg.Storage)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %q", cfg.Storage.Backend)
	}
}
