package iostorage

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/playlake/playlake/pkg/config"
	"github.com/playlake/playlake/pkg/storage"
)

type minioStore struct {
	client *minio.Client
	bucket string
}

// NewMinio creates an ObjectStore backed by a MinIO server.
func NewMinio(cfg *config.StorageConfig) (storage.ObjectStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio storage: endpoint is not configured")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio storage: bucket is not configured")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio storage: cannot create client: %w", err)
	}

	return &minioStore{client: client, bucket: cfg.Bucket}, nil
}

// List implements storage.ObjectStore.
func (m *minioStore) List(ctx context.Context, prefix string) ([]string, error) {
	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var keys []string
	for obj := range objectCh {
		if obj.Err != nil {
			return nil, fmt.Errorf("minio storage: list %q: %w", prefix, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Get implements storage.ObjectStore.
func (m *minioStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("minio storage: get %q: %w", key, err)
	}
	return obj, nil
}

// Put implements storage.ObjectStore.
func (m *minioStore) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("minio storage: put %q: %w", key, err)
	}
	return nil
}

// Remove implements storage.ObjectStore.
func (m *minioStore) Remove(ctx context.Context, prefix string) error {
	keys, err := m.List(ctx, prefix)
	if err != nil {
		return err
	}
	for _, key := range keys {
		err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
		if err != nil {
			return fmt.Errorf("minio storage: remove %q: %w", key, err)
		}
	}
	return nil
}
