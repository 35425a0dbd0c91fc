package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Ensure Minio implements Storage
var _ Storage = (*Minio)(nil)

// MinioClient is the subset of *minio.Client used by the Minio driver.
type MinioClient interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// Minio stores files in an S3-compatible server.
type Minio struct {
	client MinioClient
	bucket string
	prefix string
}

// NewMinio connects to cfg.Endpoint with static credentials.
func NewMinio(cfg S3Config) (*Minio, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("minio endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("minio bucket is required")
	}

	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return NewMinioWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewMinioWithClient wraps an existing client.
func NewMinioWithClient(client MinioClient, bucket, prefix string) *Minio {
	return &Minio{client: client, bucket: bucket, prefix: normalizePrefix(prefix)}
}

func (m *Minio) key(name string) string {
	return m.prefix + name
}

func (m *Minio) Write(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	_, err := m.client.PutObject(ctx, m.bucket, m.key(name), r, -1, minio.PutObjectOptions{
		ContentType: ContentType(name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return "s3://" + m.bucket + "/" + m.key(name), nil
}

func (m *Minio) Delete(ctx context.Context, name string) (bool, error) {
	exists, err := m.Exists(ctx, name)
	if err != nil || !exists {
		return false, err
	}
	if err := m.client.RemoveObject(ctx, m.bucket, m.key(name), minio.RemoveObjectOptions{}); err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return true, nil
}

func (m *Minio) Exists(ctx context.Context, name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}
	_, err := m.client.StatObject(ctx, m.bucket, m.key(name), minio.StatObjectOptions{})
	if err != nil {
		if isMinioNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *Minio) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	exists, err := m.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, name)
	}
	obj, err := m.client.GetObject(ctx, m.bucket, m.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func (m *Minio) List(ctx context.Context) ([]string, error) {
	var names []string
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    m.prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list bucket %s: %w", m.bucket, obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, m.prefix)
		if ValidateName(name) == nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func isMinioNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}
