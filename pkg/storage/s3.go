package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/nmm-portal/nmm-api/pkg/logger"
	"github.com/nmm-portal/nmm-api/pkg/metrics"
	"github.com/nmm-portal/nmm-api/pkg/retry"
	"go.uber.org/zap"
)

// S3Config configures an S3-compatible bucket
type S3Config struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
	PublicBaseURL   string
}

// S3Store is an S3-compatible object storage client
type S3Store struct {
	s3Client      *s3.Client
	bucketName    string
	publicBaseURL string
}

// NewS3Store creates a new object storage client using the S3 SDK
func NewS3Store(cfg S3Config) (*S3Store, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://s3.ap-south-1.amazonaws.com"
	}
	if cfg.Region == "" {
		cfg.Region = "ap-south-1"
	}

	s3Client := s3.New(s3.Options{
		Region:       cfg.Region,
		BaseEndpoint: aws.String(cfg.Endpoint),
		UsePathStyle: true,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	})

	publicBase := cfg.PublicBaseURL
	if publicBase == "" {
		publicBase = fmt.Sprintf("%s/%s", cfg.Endpoint, cfg.BucketName)
	}

	logger.Info("Object storage client initialized",
		zap.String("bucket", cfg.BucketName),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("region", cfg.Region),
	)

	return &S3Store{
		s3Client:      s3Client,
		bucketName:    cfg.BucketName,
		publicBaseURL: publicBase,
	}, nil
}

// Backend names the store for metrics and logs
func (s *S3Store) Backend() string {
	return "s3"
}

// Put uploads data and returns its public URL
func (s *S3Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	start := time.Now()
	operation := "putObject"

	err := retry.Do(ctx, retry.StorageConfig(), "storage."+operation, func() error {
		_, putErr := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucketName),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		})
		return putErr
	})

	duration := metrics.MeasureDuration(start)
	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(s.Backend(), operation, "error").Observe(duration)
		metrics.StorageRequestTotal.WithLabelValues(s.Backend(), operation, "error").Inc()
		logger.LogAPICall(ctx, "object_storage", operation, "error", duration,
			zap.Error(err),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	metrics.StorageRequestDuration.WithLabelValues(s.Backend(), operation, "success").Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(s.Backend(), operation, "success").Inc()
	logger.LogAPICall(ctx, "object_storage", operation, "success", duration,
		zap.String("key", key),
		zap.Int("size_bytes", len(data)),
	)

	return fmt.Sprintf("%s/%s", s.publicBaseURL, key), nil
}

// Get downloads an object
func (s *S3Store) Get(ctx context.Context, key string) (*Object, error) {
	start := time.Now()
	operation := "getObject"

	out, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		metrics.StorageRequestTotal.WithLabelValues(s.Backend(), operation, "error").Inc()
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		metrics.StorageRequestTotal.WithLabelValues(s.Backend(), operation, "error").Inc()
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}

	metrics.StorageRequestDuration.WithLabelValues(s.Backend(), operation, "success").Observe(metrics.MeasureDuration(start))
	metrics.StorageRequestTotal.WithLabelValues(s.Backend(), operation, "success").Inc()

	return &Object{
		Key:         key,
		ContentType: aws.ToString(out.ContentType),
		Data:        data,
	}, nil
}
