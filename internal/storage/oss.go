package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/stemsi/institute-backend/internal/config"
)

// OSSStore uploads documents to an Alibaba Cloud OSS bucket.
type OSSStore struct {
	bucket     *oss.Bucket
	endpoint   string
	bucketName string
}

// NewOSSStore connects to the bucket named in cfg.
func NewOSSStore(cfg *config.Config) (*OSSStore, error) {
	if cfg.OSSEndpoint == "" || cfg.OSSAccessKey == "" || cfg.OSSSecretKey == "" || cfg.OSSBucket == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	return &OSSStore{bucket: bucket, endpoint: cfg.OSSEndpoint, bucketName: cfg.OSSBucket}, nil
}

// Store uploads r under key name, overwriting any existing object, and
// returns its public URL.
func (s *OSSStore) Store(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
	}
	if err := s.bucket.PutObject(name, r, opts...); err != nil {
		return "", fmt.Errorf("put object %s: %w", name, err)
	}
	return s.PublicURL(name), nil
}

// PublicURL returns the virtual-hosted URL of key.
func (s *OSSStore) PublicURL(key string) string {
	end := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, end, key)
}
