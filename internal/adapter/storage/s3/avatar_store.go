package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// API is the subset of the S3 client used by the store.
type API interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

// AvatarStore stores avatar files in an S3 bucket and resolves them to
// path-style public URLs of the form <base>/<bucket>/<key>.
type AvatarStore struct {
	client  API
	bucket  string
	baseURL string
	log     *zap.Logger
}

// NewAvatarStore creates a new AvatarStore for the given bucket. baseURL is
// the endpoint objects are publicly reachable under.
func NewAvatarStore(client API, bucket, baseURL string, log *zap.Logger) *AvatarStore {
	return &AvatarStore{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		log:     log,
	}
}

// Upload writes the byte stream to the bucket under key and returns the URL
// the object is reachable under.
func (s *AvatarStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	input := &awss3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.log.Error("failed to upload avatar object",
			zap.Error(err),
			zap.String("bucket", s.bucket),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key)
	s.log.Info("avatar object uploaded", zap.String("bucket", s.bucket), zap.String("key", key))
	return url, nil
}
