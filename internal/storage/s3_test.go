package storage

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/photodesk/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 pages its keys two at a time.
type fakeS3 struct {
	keys      []string
	deleted   []string
	listErr   error
	deleteErr error
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	var matching []string
	for _, k := range f.keys {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			matching = append(matching, k)
		}
	}
	sort.Strings(matching)

	start := 0
	if tok := aws.ToString(in.ContinuationToken); tok != "" {
		start = sort.SearchStrings(matching, tok)
	}
	end := min(start+2, len(matching))

	out := &s3.ListObjectsV2Output{}
	for _, k := range matching[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	if end < len(matching) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(matching[end])
	}
	return out, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_ListPaginates(t *testing.T) {
	api := &fakeS3{keys: []string{
		"events/E1/a.jpg", "events/E1/b.jpg", "events/E1/c.jpg", "events/E2/x.jpg", "events/E1/d.jpg",
	}}
	s := &S3Store{api: api, bucket: "photos"}

	keys, err := s.List(context.Background(), "events/E1/")
	require.NoError(t, err)
	assert.Equal(t, []string{"events/E1/a.jpg", "events/E1/b.jpg", "events/E1/c.jpg", "events/E1/d.jpg"}, keys)
}

func TestS3Store_ListError(t *testing.T) {
	s := &S3Store{api: &fakeS3{listErr: errors.New("connection refused")}, bucket: "photos"}

	_, err := s.List(context.Background(), "events/")
	assert.ErrorIs(t, err, common.ErrUnavailable)
}

func TestS3Store_DeleteAndDiscard(t *testing.T) {
	api := &fakeS3{}
	s := &S3Store{api: api, bucket: "photos"}
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, "events/E1/a.jpg"))
	require.NoError(t, s.Discard(ctx, "events/E1/b.jpg"))
	assert.Equal(t, []string{"events/E1/a.jpg", "events/E1/b.jpg"}, api.deleted)

	api.deleteErr = context.DeadlineExceeded
	err := s.Delete(ctx, "events/E1/c.jpg")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, common.ErrUnavailable)
}

func TestNewS3Store_AppliesConfig(t *testing.T) {
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig = origLoad, origNew
	})

	var region string
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		region = lo.Region
		require.NotNil(t, lo.Credentials)
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	s, err := NewS3Store(context.Background(), Config{
		Bucket: "photos", BaseEndpoint: "http://127.0.0.1:9000",
		AccessKey: "minioadmin", SecretKey: "minioadmin",
	})
	require.NoError(t, err)
	assert.Equal(t, "photos", s.Bucket())
	assert.Equal(t, "us-east-1", region)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestNewS3Store_Errors(t *testing.T) {
	_, err := NewS3Store(context.Background(), Config{})
	assert.ErrorIs(t, err, common.ErrValidation)

	origLoad := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = origLoad })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("bad profile")
	}
	_, err = NewS3Store(context.Background(), Config{Bucket: "photos"})
	assert.ErrorContains(t, err, "bad profile")
}
