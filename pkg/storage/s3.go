package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/imageio"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// ErrNotConfigured is returned when an upload is requested without a bucket
var ErrNotConfigured = errors.New("S3 upload not configured")

// Config holds S3-compatible object storage settings
type Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string // Custom endpoint for S3-compatible services; empty uses AWS
	Region    string
	Bucket    string
	Prefix    string // Key prefix for uploaded renders
	PublicURL string // Base URL objects are served from; empty reports s3:// URLs
}

// Enabled reports whether enough is configured to attempt an upload
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

// Uploader publishes rendered images to object storage
type Uploader struct {
	client s3iface.S3API
	config Config
	logger core.Logger
}

// NewUploader creates an uploader with a session built from cfg
func NewUploader(cfg Config, logger core.Logger) (*Uploader, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(cfg.Endpoint != ""),
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewUploaderWithClient(s3.New(sess), cfg, logger), nil
}

// NewUploaderWithClient creates an uploader around an existing S3 client
func NewUploaderWithClient(client s3iface.S3API, cfg Config, logger core.Logger) *Uploader {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Uploader{client: client, config: cfg, logger: logger}
}

// NewRenderID returns a fresh identifier for a render
func NewRenderID() string {
	return uuid.New().String()
}

// ObjectKey builds the storage key for a render
func ObjectKey(prefix, renderID string, format imageio.Format) string {
	return path.Join(prefix, renderID+"."+string(format))
}

// UploadImage encodes img and stores it under a key derived from renderID.
// It returns the URL of the stored object.
func (u *Uploader) UploadImage(ctx context.Context, img *imageio.Image, format imageio.Format, renderID string) (string, error) {
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, format); err != nil {
		return "", err
	}
	return u.Upload(ctx, buf.Bytes(), ObjectKey(u.config.Prefix, renderID, format), format.ContentType())
}

// Upload stores data under key and returns its URL
func (u *Uploader) Upload(ctx context.Context, data []byte, key, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	u.logger.Printf("Uploaded %s to S3 (%d bytes)\n", key, size)
	return u.URL(key), nil
}

// URL returns the address an object with the given key is served from
func (u *Uploader) URL(key string) string {
	if u.config.PublicURL != "" {
		return strings.TrimRight(u.config.PublicURL, "/") + "/" + key
	}
	return fmt.Sprintf("s3://%s/%s", u.config.Bucket, key)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}
