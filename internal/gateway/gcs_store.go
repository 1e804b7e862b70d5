package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"

	"activity-flags/internal/domain"

	"cloud.google.com/go/storage"
)

// GCSLedgerSource reads the ledger from a Cloud Storage object.
// It assumes Application Default Credentials are configured.
type GCSLedgerSource struct {
	client *storage.Client
	bucket string
	object string
}

// NewGCSLedgerSource creates a source for gs://bucket/object.
func NewGCSLedgerSource(client *storage.Client, bucket, object string) *GCSLedgerSource {
	return &GCSLedgerSource{client: client, bucket: bucket, object: object}
}

// OpenLedger implements usecase.LedgerSource.
func (s *GCSLedgerSource) OpenLedger(ctx context.Context) (io.ReadCloser, error) {
	r, err := s.client.Bucket(s.bucket).Object(s.object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open GCS object reader %s: %w", s.Location(), err)
	}
	return r, nil
}

// Location implements usecase.LedgerSource.
func (s *GCSLedgerSource) Location() string {
	return schemeGCS + s.bucket + "/" + s.object
}

// GCSArtifactStore keeps artifacts as objects under a bucket prefix.
type GCSArtifactStore struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSArtifactStore creates a store writing to gs://bucket/prefix/.
func NewGCSArtifactStore(client *storage.Client, bucket, prefix string) *GCSArtifactStore {
	return &GCSArtifactStore{client: client, bucket: bucket, prefix: prefix}
}

// Put implements usecase.ArtifactStore. The object is only created when the upload
// completes, and never overwrites an existing artifact.
func (s *GCSArtifactStore) Put(ctx context.Context, name string, data []byte) (domain.ArtifactRef, error) {
	if err := validArtifactName(name); err != nil {
		return domain.ArtifactRef{}, err
	}
	key := objectKey(s.prefix, name)

	// Cancelling the context aborts the upload without creating the object.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	obj := s.client.Bucket(s.bucket).Object(key).If(storage.Conditions{DoesNotExist: true})
	w := obj.NewWriter(ctx)
	w.ContentType = "text/csv"

	if _, err := w.Write(data); err != nil {
		cancel()
		_ = w.Close()
		return domain.ArtifactRef{}, fmt.Errorf("write GCS object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return domain.ArtifactRef{}, fmt.Errorf("finalize upload %s: %w", key, err)
	}

	return domain.NewArtifactRef(schemeGCS+s.bucket+"/"+key, data), nil
}

// Get implements usecase.ArtifactStore.
func (s *GCSArtifactStore) Get(ctx context.Context, ref domain.ArtifactRef) ([]byte, error) {
	bucket, key, err := ParseObjectURI(ref.URI, schemeGCS)
	if err != nil {
		return nil, err
	}

	r, err := s.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, ref.URI)
		}
		return nil, fmt.Errorf("open GCS object reader: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read GCS object: %w", err)
	}
	if err := ref.Verify(data); err != nil {
		return nil, err
	}
	return data, nil
}
