// Package blob stores uploaded files in an S3-compatible bucket and derives
// their public URLs.
package blob

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Putter is the subset of *s3.Client the store uses.
type Putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Store struct {
	client     Putter
	bucket     string
	publicBase string
}

// NewS3Store binds a store to one bucket. publicBase is the URL prefix under
// which objects are publicly readable; when empty the virtual-hosted S3 URL
// for region is used.
func NewS3Store(client Putter, bucket, region, publicBase string) *S3Store {
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3Store{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

func (s *S3Store) Bucket() string { return s.bucket }

// Put uploads body under key.
func (s *S3Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put %s/%s: %w", s.bucket, key, err)
	}
	return nil
}

// PublicURL returns the URL under which key can be fetched.
func (s *S3Store) PublicURL(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.publicBase + "/" + strings.Join(segments, "/")
}

// ObjectKey builds "{prefix}/{millis}-{rand}.{ext}" keeping the extension of
// filename. An empty prefix yields a key at the bucket root.
func ObjectKey(prefix, filename string, now time.Time) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if ext == "" {
		ext = "bin"
	}
	name := fmt.Sprintf("%d-%s.%s", now.UnixMilli(), uuid.New().String()[:8], ext)
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
