package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	infraconfig "github.com/cajachica/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure S3ArchiveStore implements ArchiveStore
var _ ArchiveStore = (*S3ArchiveStore)(nil)

// S3ArchiveStore keeps report documents in an S3-compatible bucket
// (AWS S3, MinIO, etc.)
type S3ArchiveStore struct {
	client            *s3.Client
	presignClient     *s3.PresignClient
	bucket            string
	urlPrefix         string
	presignExpiration time.Duration
	logger            *zap.Logger
}

// S3ArchiveStoreOption is a functional option for configuring S3ArchiveStore
type S3ArchiveStoreOption func(*S3ArchiveStore)

// WithLogger sets a custom logger for S3ArchiveStore
func WithLogger(logger *zap.Logger) S3ArchiveStoreOption {
	return func(s *S3ArchiveStore) {
		s.logger = logger
	}
}

// WithPresignExpiration sets a custom presign expiration duration
func WithPresignExpiration(d time.Duration) S3ArchiveStoreOption {
	return func(s *S3ArchiveStore) {
		s.presignExpiration = d
	}
}

// NewS3ArchiveStore creates an S3ArchiveStore from configuration
func NewS3ArchiveStore(cfg *infraconfig.ArchiveConfig, opts ...S3ArchiveStoreOption) (*S3ArchiveStore, error) {
	if cfg == nil {
		return nil, errors.New("archive configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("archive bucket is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	store := &S3ArchiveStore{
		client:            client,
		presignClient:     s3.NewPresignClient(client),
		bucket:            cfg.Bucket,
		urlPrefix:         strings.TrimSuffix(cfg.URLPrefix, "/"),
		presignExpiration: 15 * time.Minute,
		logger:            zap.NewNop(),
	}

	for _, opt := range opts {
		opt(store)
	}

	return store, nil
}

// Store uploads the document and returns its URL. When a URL prefix is
// configured (bucket behind a CDN or public path) the prefix is used,
// otherwise a presigned GET URL is generated.
func (s *S3ArchiveStore) Store(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", errors.New("archive key is required")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload archive object: %w", err)
	}

	s.logger.Debug("Archived report document",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(data)))

	if s.urlPrefix != "" {
		return s.urlPrefix + "/" + key, nil
	}

	presignReq, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.presignExpiration))
	if err != nil {
		return "", fmt.Errorf("failed to presign archive URL: %w", err)
	}
	return presignReq.URL, nil
}

// GetBucket returns the bucket name
func (s *S3ArchiveStore) GetBucket() string {
	return s.bucket
}
