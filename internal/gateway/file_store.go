package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"activity-flags/internal/domain"
)

// FileLedgerSource reads the ledger from a local CSV file.
type FileLedgerSource struct {
	path string
}

// NewFileLedgerSource creates a source for path.
func NewFileLedgerSource(path string) *FileLedgerSource {
	return &FileLedgerSource{path: path}
}

// OpenLedger implements usecase.LedgerSource.
func (s *FileLedgerSource) OpenLedger(ctx context.Context) (io.ReadCloser, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger file %s: %w", s.path, err)
	}
	return file, nil
}

// Location implements usecase.LedgerSource.
func (s *FileLedgerSource) Location() string {
	return s.path
}

// FileArtifactStore keeps artifacts as files under a root directory.
// Files are written to a temporary name and renamed into place, so an artifact is
// either complete or absent.
type FileArtifactStore struct {
	root string
}

// NewFileArtifactStore creates a store rooted at dir.
func NewFileArtifactStore(dir string) (*FileArtifactStore, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve artifact dir %s: %w", dir, err)
	}
	return &FileArtifactStore{root: root}, nil
}

// Put implements usecase.ArtifactStore.
func (s *FileArtifactStore) Put(ctx context.Context, name string, data []byte) (domain.ArtifactRef, error) {
	if err := validArtifactName(name); err != nil {
		return domain.ArtifactRef{}, err
	}
	target := filepath.Join(s.root, filepath.FromSlash(name))
	if _, err := os.Stat(target); err == nil {
		return domain.ArtifactRef{}, fmt.Errorf("artifact %s already exists", target)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return domain.ArtifactRef{}, fmt.Errorf("failed to create artifact dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".artifact-*")
	if err != nil {
		return domain.ArtifactRef{}, fmt.Errorf("failed to create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return domain.ArtifactRef{}, fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return domain.ArtifactRef{}, fmt.Errorf("failed to sync artifact %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return domain.ArtifactRef{}, fmt.Errorf("failed to close artifact %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return domain.ArtifactRef{}, fmt.Errorf("failed to publish artifact %s: %w", name, err)
	}

	return domain.NewArtifactRef(schemeFile+filepath.ToSlash(target), data), nil
}

// Get implements usecase.ArtifactStore.
func (s *FileArtifactStore) Get(ctx context.Context, ref domain.ArtifactRef) ([]byte, error) {
	if !strings.HasPrefix(ref.URI, schemeFile) {
		return nil, fmt.Errorf("invalid file artifact URI %s", ref.URI)
	}
	path := filepath.FromSlash(strings.TrimPrefix(ref.URI, schemeFile))

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, ref.URI)
		}
		return nil, fmt.Errorf("failed to read artifact %s: %w", ref.URI, err)
	}
	if err := ref.Verify(data); err != nil {
		return nil, err
	}
	return data, nil
}
