package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOClient is the object-storage gateway used by the organizer and the
// run-log mirror.
type MinIOClient struct {
	client     *minio.Client
	bucketName string
}

// MinIOConfig holds object-storage connection settings.
type MinIOConfig struct {
	Endpoint  string // e.g., "localhost:9000"
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string // used when the bucket has to be created
	UseSSL    bool
}

// NewMinIOClient creates the gateway and ensures the bucket exists,
// creating it in the configured region when absent. Safe to call on
// every startup.
func NewMinIOClient(ctx context.Context, cfg MinIOConfig) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOClient{
		client:     client,
		bucketName: cfg.Bucket,
	}, nil
}

// ListRootObjects returns the keys of all objects sitting at the bucket
// root, i.e. keys without a path separator. Objects already filed under a
// prefix directory are not returned.
func (m *MinIOClient) ListRootObjects(ctx context.Context) ([]string, error) {
	var keys []string
	for obj := range m.client.ListObjects(ctx, m.bucketName, minio.ListObjectsOptions{Recursive: false}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		if strings.Contains(obj.Key, "/") {
			continue
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// Exists reports whether an object is present at key.
func (m *MinIOClient) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucketName, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", key, err)
	}
	return true, nil
}

// Copy duplicates an object within the bucket.
func (m *MinIOClient) Copy(ctx context.Context, srcKey, dstKey string) error {
	_, err := m.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: m.bucketName, Object: dstKey},
		minio.CopySrcOptions{Bucket: m.bucketName, Object: srcKey},
	)
	if err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", srcKey, dstKey, err)
	}
	return nil
}

// Remove deletes an object.
func (m *MinIOClient) Remove(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Put stores an object. size may be -1 when unknown.
func (m *MinIOClient) Put(ctx context.Context, key string, reader io.Reader, size int64) error {
	_, err := m.client.PutObject(ctx, m.bucketName, key, reader, size, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// PutFile uploads a local file to key.
func (m *MinIOClient) PutFile(ctx context.Context, key, filePath string) error {
	_, err := m.client.FPutObject(ctx, m.bucketName, key, filePath, minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return fmt.Errorf("failed to upload file %s: %w", filePath, err)
	}
	return nil
}
