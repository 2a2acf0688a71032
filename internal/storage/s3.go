// Package storage reaches the blob store behind the presigned URLs directly,
// for housekeeping: listing an event's objects and deleting ones that were
// never confirmed.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/photodesk/internal/common"
)

type Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// objectAPI is the subset of *s3.Client the store calls.
type objectAPI interface {
	s3.ListObjectsV2APIClient
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Seams for tests.
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
)

// S3Store lists and deletes objects in one bucket of an S3-compatible store.
// It also serves as the ingest compensator.
type S3Store struct {
	api    objectAPI
	bucket string
}

func NewS3Store(ctx context.Context, cfg Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: s3 bucket is required", common.ErrValidation)
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			// MinIO and most self-hosted stores only route path-style.
			o.UsePathStyle = true
		}
	})

	return &S3Store{api: client, bucket: cfg.Bucket}, nil
}

func (s *S3Store) Bucket() string { return s.bucket }

// List returns every key under prefix, across all result pages.
func (s *S3Store) List(ctx context.Context, prefix string) ([]string, error) {
	p := s3.NewListObjectsV2Paginator(s.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	var keys []string
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %s/%s: %w", s.bucket, prefix, wrapUnavailable(err))
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", s.bucket, key, wrapUnavailable(err))
	}
	return nil
}

// Discard deletes an object that was stored but never confirmed.
func (s *S3Store) Discard(ctx context.Context, key string) error {
	return s.Delete(ctx, key)
}

func wrapUnavailable(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrUnavailable, err)
}
