package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/atoolsera/agency-backend/config"
	"github.com/atoolsera/agency-backend/internal/storage/blob"
)

// BlobStores are the buckets the API writes to.
type BlobStores struct {
	Portfolio *blob.S3Store
	Resumes   *blob.S3Store
}

// OpenBlobStores builds the S3 client from the default credential chain.
// S3_ENDPOINT switches to path-style addressing for S3-compatible servers.
func OpenBlobStores(ctx context.Context, cfg *config.StorageConfig) (*BlobStores, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &BlobStores{
		Portfolio: blob.NewS3Store(client, cfg.Bucket, cfg.Region, publicBase(cfg, cfg.Bucket)),
		Resumes:   blob.NewS3Store(client, cfg.ResumeBucket, cfg.Region, publicBase(cfg, cfg.ResumeBucket)),
	}, nil
}

func publicBase(cfg *config.StorageConfig, bucket string) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/") + "/" + bucket
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + bucket
	default:
		return ""
	}
}
