package export

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const DefaultRegion = "us-east-1"

// LoadAWSConfig resolves credentials from the shared AWS config, optionally
// for a named profile.
func LoadAWSConfig(ctx context.Context, profile, region string) (awssdk.Config, error) {
	if region == "" {
		region = DefaultRegion
	}
	opts := []func(*config.LoadOptions) error{
		config.WithDefaultRegion(region),
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return awssdk.Config{}, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return cfg, nil
}

// NewS3SinkFromConfig builds an S3Sink backed by a real S3 client.
func NewS3SinkFromConfig(cfg awssdk.Config, bucket, prefix string) *S3Sink {
	return NewS3Sink(s3.NewFromConfig(cfg), bucket, prefix)
}
