package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ArtifactRef is the durable handle of an immutable artifact.
type ArtifactRef struct {
	URI      string `json:"uri"`
	Size     int64  `json:"size"`
	Checksum string `json:"checksum"`
}

// NewArtifactRef builds a reference for data stored at uri.
func NewArtifactRef(uri string, data []byte) ArtifactRef {
	return ArtifactRef{URI: uri, Size: int64(len(data)), Checksum: Checksum(data)}
}

// Verify checks data against the size and checksum recorded at publish time.
func (r ArtifactRef) Verify(data []byte) error {
	if r.Checksum == "" {
		return nil
	}
	if int64(len(data)) != r.Size || Checksum(data) != r.Checksum {
		return fmt.Errorf("%w: %s", ErrArtifactCorrupt, r.URI)
	}
	return nil
}

// Checksum is the hex SHA-256 of data.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
