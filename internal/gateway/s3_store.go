package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"activity-flags/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of the S3 client used here; *s3.Client satisfies it.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client builds an S3 client from the default credential chain, optionally
// pinned to a shared config profile and region.
func NewS3Client(ctx context.Context, profile, region string) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// S3LedgerSource reads the ledger from an S3 object.
type S3LedgerSource struct {
	client S3API
	bucket string
	key    string
}

// NewS3LedgerSource creates a source for s3://bucket/key.
func NewS3LedgerSource(client S3API, bucket, key string) *S3LedgerSource {
	return &S3LedgerSource{client: client, bucket: bucket, key: key}
}

// OpenLedger implements usecase.LedgerSource.
func (s *S3LedgerSource) OpenLedger(ctx context.Context) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("get S3 object %s: %w", s.Location(), err)
	}
	return out.Body, nil
}

// Location implements usecase.LedgerSource.
func (s *S3LedgerSource) Location() string {
	return schemeS3 + s.bucket + "/" + s.key
}

// S3ArtifactStore keeps artifacts as objects under a bucket prefix.
type S3ArtifactStore struct {
	client S3API
	bucket string
	prefix string
}

// NewS3ArtifactStore creates a store writing to s3://bucket/prefix/.
func NewS3ArtifactStore(client S3API, bucket, prefix string) *S3ArtifactStore {
	return &S3ArtifactStore{client: client, bucket: bucket, prefix: prefix}
}

// Put implements usecase.ArtifactStore. If-None-Match keeps existing artifacts immutable.
func (s *S3ArtifactStore) Put(ctx context.Context, name string, data []byte) (domain.ArtifactRef, error) {
	if err := validArtifactName(name); err != nil {
		return domain.ArtifactRef{}, err
	}
	key := objectKey(s.prefix, name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("text/csv"),
		IfNoneMatch:   aws.String("*"),
	})
	if err != nil {
		return domain.ArtifactRef{}, fmt.Errorf("put S3 object %s: %w", key, err)
	}

	return domain.NewArtifactRef(schemeS3+s.bucket+"/"+key, data), nil
}

// Get implements usecase.ArtifactStore.
func (s *S3ArtifactStore) Get(ctx context.Context, ref domain.ArtifactRef) ([]byte, error) {
	bucket, key, err := ParseObjectURI(ref.URI, schemeS3)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, ref.URI)
		}
		return nil, fmt.Errorf("get S3 object %s: %w", ref.URI, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read S3 object %s: %w", ref.URI, err)
	}
	if err := ref.Verify(data); err != nil {
		return nil, err
	}
	return data, nil
}
