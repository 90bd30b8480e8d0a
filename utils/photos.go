package utils

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// PhotoStore persists uploaded profile photos and returns a public
// URL for the stored object.
type PhotoStore interface {
	Save(data []byte, contentType string) (string, error)
}

// NewPhotoStoreFromEnv picks S3 when S3_BUCKET is set, otherwise a
// local directory served under /photos, so the service runs without
// AWS credentials.
func NewPhotoStoreFromEnv() (PhotoStore, error) {
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		return NewS3PhotoStore(bucket)
	}
	dir := os.Getenv("PHOTO_DIR")
	if dir == "" {
		dir = "./data/photos"
	}
	return NewLocalPhotoStore(dir, "/photos")
}

type S3PhotoStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3PhotoStore(bucket string) (*S3PhotoStore, error) {
	region := os.Getenv("S3_REGION")
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	baseURL := os.Getenv("CLOUDFRONT_URL")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}

	return &S3PhotoStore{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (ps *S3PhotoStore) Save(data []byte, contentType string) (string, error) {
	key := "profile-photos/" + photoFilename(contentType)

	_, err := ps.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(ps.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("upload to S3: %w", err)
	}

	return ps.baseURL + "/" + key, nil
}

type LocalPhotoStore struct {
	dir     string
	baseURL string
}

func NewLocalPhotoStore(dir, baseURL string) (*LocalPhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create photo directory: %w", err)
	}
	return &LocalPhotoStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir is the on-disk directory the router serves as static files.
func (ps *LocalPhotoStore) Dir() string { return ps.dir }

func (ps *LocalPhotoStore) Save(data []byte, contentType string) (string, error) {
	name := photoFilename(contentType)
	if err := os.WriteFile(filepath.Join(ps.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}
	return ps.baseURL + "/" + name, nil
}

func photoFilename(contentType string) string {
	var ext string
	switch contentType {
	case "image/jpeg", "image/jpg":
		ext = ".jpg"
	default:
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		} else if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 {
			ext = "." + parts[1]
		}
	}
	return uuid.NewString() + ext
}
