package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/yelpcamp/backend/internal/models"
)

// objectAPI is the part of the S3 client used by s3Storage
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Options configures the S3 image storage
type S3Options struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// Endpoint is set for S3-compatible servers such as MinIO
	Endpoint string
	// PublicURL overrides the base of generated image URLs
	PublicURL string
	// Prefix is the folder objects are stored under
	Prefix string
}

// s3Storage implements ImageStore on an S3 bucket
type s3Storage struct {
	client  objectAPI
	bucket  string
	prefix  string
	baseURL string
}

// NewS3Storage creates an S3 client from the options and wraps it as an ImageStore
func NewS3Storage(ctx context.Context, opts S3Options) (*s3Storage, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Storage(client, opts), nil
}

func newS3Storage(client objectAPI, opts S3Options) *s3Storage {
	baseURL := opts.PublicURL
	switch {
	case baseURL != "":
	case opts.Endpoint != "":
		baseURL = strings.TrimSuffix(opts.Endpoint, "/") + "/" + opts.Bucket
	default:
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}

	return &s3Storage{
		client:  client,
		bucket:  opts.Bucket,
		prefix:  strings.Trim(opts.Prefix, "/"),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Upload puts the image under prefix/<uuid><ext>
func (s *s3Storage) Upload(ctx context.Context, r io.Reader, contentType, extension string) (models.Image, error) {
	key := GenerateFileName(extension)
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return models.Image{}, fmt.Errorf("failed to upload image to s3: %w", err)
	}

	return models.Image{
		URL:      s.baseURL + "/" + key,
		Filename: key,
	}, nil
}

// Delete removes the object. S3 treats deleting a missing key as success.
func (s *s3Storage) Delete(ctx context.Context, filename string) error {
	key, err := cleanKey(filename)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image from s3: %w", err)
	}
	return nil
}
