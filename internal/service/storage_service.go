package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/chordbase/chordbase-api/internal/config"
)

// ErrStorageDisabled is returned by write operations when no bucket is
// configured. Derived URL reads still work in that state.
var ErrStorageDisabled = errors.New("storage is not enabled")

// objectStore is the subset of the S3 client the service uses.
type objectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Diagram variants. Every chord position carries one SVG per variant so
// clients can match the active color scheme without re-fetching.
const (
	DiagramVariantLight = "light"
	DiagramVariantDark  = "dark"
)

// StorageService handles chord diagram assets in S3-compatible object
// storage. Public asset URLs are served from a CDN base URL, so reads
// never touch the bucket directly; the client is only needed for
// uploads.
type StorageService struct {
	client       objectStore
	bucket       string
	assetBaseURL string
	enabled      bool
	logger       *slog.Logger
}

// NewStorageService creates a new storage service. When no bucket is
// configured the service still resolves public URLs, but uploads fail.
func NewStorageService(cfg *appconfig.Config, logger *slog.Logger) (*StorageService, error) {
	if !cfg.StorageEnabled {
		logger.Info("storage service disabled - no bucket configured")
		return &StorageService{
			assetBaseURL: strings.TrimRight(cfg.AssetBaseURL, "/"),
			enabled:      false,
			logger:       logger,
		}, nil
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.StorageRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Custom endpoint for S3-compatible storage (Tigris, MinIO, etc.)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.StorageEndpoint)
		o.UsePathStyle = true
	})

	logger.Info("storage service initialized",
		"bucket", cfg.StorageBucket,
		"endpoint", cfg.StorageEndpoint,
	)

	return &StorageService{
		client:       client,
		bucket:       cfg.StorageBucket,
		assetBaseURL: strings.TrimRight(cfg.AssetBaseURL, "/"),
		enabled:      true,
		logger:       logger,
	}, nil
}

// IsEnabled returns whether storage is configured and available.
func (s *StorageService) IsEnabled() bool {
	return s.enabled
}

// DiagramKey returns the object key for a position's diagram in the
// given variant, e.g. "diagrams/dark/Am-pos1.svg".
func DiagramKey(fullName, variant string) string {
	return fmt.Sprintf("diagrams/%s/%s.svg", variant, fullName)
}

// DiagramURL returns the public URL for a position's diagram. URLs are
// derived, not stored in the bucket listing, so this works whether or
// not uploads are enabled.
func (s *StorageService) DiagramURL(fullName, variant string) string {
	return fmt.Sprintf("%s/%s", s.assetBaseURL, DiagramKey(fullName, variant))
}

// UploadDiagram stores a diagram SVG for the given position and variant.
func (s *StorageService) UploadDiagram(ctx context.Context, fullName, variant string, body io.Reader) error {
	if !s.enabled {
		return ErrStorageDisabled
	}

	key := DiagramKey(fullName, variant)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String("image/svg+xml"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload diagram %s: %w", key, err)
	}

	s.logger.Debug("uploaded diagram", "key", key)
	return nil
}

// DeleteDiagrams removes both variants of a position's diagram. Missing
// objects are not an error.
func (s *StorageService) DeleteDiagrams(ctx context.Context, fullName string) error {
	if !s.enabled {
		return ErrStorageDisabled
	}

	for _, variant := range []string{DiagramVariantLight, DiagramVariantDark} {
		key := DiagramKey(fullName, variant)
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return fmt.Errorf("failed to delete diagram %s: %w", key, err)
		}
	}
	return nil
}
