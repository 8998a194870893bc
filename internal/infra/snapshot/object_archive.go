package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectArchive stores frames in an S3-compatible bucket.
type ObjectArchive struct {
	client *minio.Client
	bucket string
	logger *slog.Logger

	mu          sync.Mutex
	bucketReady bool
}

// NewObjectArchive connects to the bucket at endpoint. The scheme of endpoint selects TLS.
func NewObjectArchive(endpoint, accessKey, secretKey, bucket, region string, logger *slog.Logger) (*ObjectArchive, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := minio.New(hostOnly(endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       strings.HasPrefix(strings.ToLower(strings.TrimSpace(endpoint)), "https"),
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object archive client: %w", err)
	}
	return &ObjectArchive{client: client, bucket: bucket, logger: logger.With("component", "snapshot.object_archive")}, nil
}

func (a *ObjectArchive) ensureBucket(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.bucketReady {
		return nil
	}
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err == nil && !exists {
		err = a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{})
		if err != nil && minio.ToErrorResponse(err).Code == "BucketAlreadyOwnedByYou" {
			err = nil
		}
		if err == nil {
			a.logger.Info("created snapshot bucket", "bucket", a.bucket)
		}
	}
	if err != nil {
		return fmt.Errorf("ensure bucket %s: %w", a.bucket, err)
	}
	a.bucketReady = true
	return nil
}

// Put uploads data as a single part object, replacing any previous version.
func (a *ObjectArchive) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := a.ensureBucket(ctx); err != nil {
		return err
	}
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:      contentType,
		CacheControl:     "no-cache",
		DisableMultipart: true,
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Get downloads the object under key.
func (a *ObjectArchive) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	if _, err := obj.Stat(); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return io.ReadAll(obj)
}

var _ Archive = (*ObjectArchive)(nil)

// hostOnly strips scheme and path, which minio.New does not accept.
func hostOnly(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if host, _, found := strings.Cut(raw, "/"); found {
		return host
	}
	return raw
}
