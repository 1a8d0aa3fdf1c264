package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	customErrors "github.com/skylume/user-service/internal/domain/user/errors"
)

// MaxFileSize is the upload ceiling for profile pictures.
const MaxFileSize = 2 << 20 // 2 MiB

const assetDir = "profile_pic"

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Store persists uploaded assets and hands back paths relative to the
// serving root.
type Store interface {
	Save(filename string, size int64, r io.Reader) (string, error)
	Remove(relPath string) error
}

type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(filepath.Join(root, assetDir), 0o755); err != nil {
		return nil, errors.Wrap(err, "create asset dir")
	}
	return &DiskStore{root: root}, nil
}

// Save validates the upload and writes it under a freshly generated unique
// name. The returned path is relative, e.g. "profile_pic/<uuid>.png".
func (s *DiskStore) Save(filename string, size int64, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", customErrors.NewInvalidArgument("only .jpg, .jpeg and .png files are allowed")
	}
	if size > MaxFileSize {
		return "", customErrors.NewInvalidArgument("file exceeds the 2 MiB limit")
	}

	relPath := filepath.Join(assetDir, uuid.NewString()+ext)
	dst, err := os.Create(filepath.Join(s.root, relPath))
	if err != nil {
		return "", customErrors.WrapInternal(err, "create asset file")
	}
	defer dst.Close()

	// size comes from the multipart header; cap the copy to it regardless.
	if _, err := io.Copy(dst, io.LimitReader(r, MaxFileSize+1)); err != nil {
		_ = os.Remove(filepath.Join(s.root, relPath))
		return "", customErrors.WrapInternal(err, "write asset file")
	}

	return filepath.ToSlash(relPath), nil
}

func (s *DiskStore) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.root, filepath.FromSlash(relPath))); err != nil {
		return errors.Wrap(err, "remove asset file")
	}
	return nil
}
