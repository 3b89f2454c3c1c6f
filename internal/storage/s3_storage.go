package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	appconfig "github.com/marcp/critics-eye-backend/config"
	"github.com/marcp/critics-eye-backend/pkg/logger"
)

var (
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrImageTooLarge        = errors.New("image exceeds maximum size")
	ErrNotManaged           = errors.New("url is not managed by this storage")
)

// Image extensions and the content types accepted with them
var allowedImageTypes = map[string][]string{
	".jpeg": {"image/jpeg"},
	".jpg":  {"image/jpeg"},
	".png":  {"image/png"},
	".gif":  {"image/gif"},
}

// objectAPI is the part of *s3.Client the storage uses.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Storage struct {
	client  objectAPI
	bucket  string
	region  string
	baseURL string
}

func NewS3Storage(cfg appconfig.S3Config) *S3Storage {
	var awsCfg aws.Config
	var err error

	// If credentials are provided, use them. Otherwise, use default credential chain
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg = aws.Config{
			Region: cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		}
	} else {
		awsCfg, err = config.LoadDefaultConfig(context.TODO(),
			config.WithRegion(cfg.Region),
		)
		if err != nil {
			logger.Warn("Failed to load default AWS config, using region only", map[string]interface{}{
				"error": err.Error(),
			})
			awsCfg = aws.Config{Region: cfg.Region}
		}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Storage(client, cfg.Bucket, cfg.Region, cfg.BaseURL)
}

func newS3Storage(client objectAPI, bucket, region, baseURL string) *S3Storage {
	return &S3Storage{
		client:  client,
		bucket:  bucket,
		region:  region,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload stores body under <folder>/<uuid><ext> and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader, size int64) (string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), strings.ToLower(filepath.Ext(filename)))

	logger.Debug("Uploading object to S3", map[string]interface{}{
		"bucket": s.bucket,
		"key":    key,
		"size":   size,
	})

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		logger.Error("Failed to upload object to S3", err, map[string]interface{}{
			"key": key,
		})
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return s.publicURL(key), nil
}

// Delete removes the object behind a URL previously returned by Upload.
func (s *S3Storage) Delete(ctx context.Context, fileURL string) error {
	key, ok := s.keyFor(fileURL)
	if !ok {
		return ErrNotManaged
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		logger.Error("Failed to delete object from S3", err, map[string]interface{}{
			"key": key,
		})
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// IsManagedURL reports whether fileURL points into this bucket.
func (s *S3Storage) IsManagedURL(fileURL string) bool {
	_, ok := s.keyFor(fileURL)
	return ok
}

func (s *S3Storage) publicURL(key string) string {
	if s.baseURL != "" {
		// CloudFront or custom domain
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s/%s", s.bucketHost(), key)
}

func (s *S3Storage) bucketHost() string {
	return fmt.Sprintf("%s.s3.%s.amazonaws.com", s.bucket, s.region)
}

func (s *S3Storage) keyFor(fileURL string) (string, bool) {
	u, err := url.Parse(fileURL)
	if err != nil || u.Host == "" {
		return "", false
	}

	host := s.bucketHost()
	prefix := ""
	if s.baseURL != "" {
		base, err := url.Parse(s.baseURL)
		if err != nil {
			return "", false
		}
		host = base.Host
		prefix = strings.Trim(base.Path, "/")
	}
	if !strings.EqualFold(u.Host, host) {
		return "", false
	}

	key := strings.TrimPrefix(u.Path, "/")
	if prefix != "" {
		if !strings.HasPrefix(key, prefix+"/") {
			return "", false
		}
		key = strings.TrimPrefix(key, prefix+"/")
	}
	if key == "" {
		return "", false
	}
	return key, true
}

// ValidateImage checks an upload's extension, content type and size.
func ValidateImage(filename, contentType string, size, maxSize int64) error {
	if size > maxSize {
		return fmt.Errorf("%w: %d bytes allowed", ErrImageTooLarge, maxSize)
	}

	allowed, ok := allowedImageTypes[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return ErrUnsupportedImageType
	}
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	for _, t := range allowed {
		if mediaType == t {
			return nil
		}
	}
	return ErrUnsupportedImageType
}
