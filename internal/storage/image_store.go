// Package storage keeps uploaded images on the local filesystem.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrImageTooLarge = errors.New("image exceeds the maximum upload size")
	ErrImageType     = errors.New("image must be a file of type: jpeg, png, jpg, gif")
)

var allowedExts = map[string]bool{".jpeg": true, ".jpg": true, ".png": true, ".gif": true}

var allowedMIMEs = []string{"image/jpeg", "image/png", "image/gif"}

// ImageStore writes images below Root, one sub-directory per kind of owner
// (for example "images" for profiles and "meals" for the catalog).
type ImageStore struct {
	Root     string
	MaxBytes int64

	now func() time.Time
}

func NewImageStore(root string, maxBytes int64) *ImageStore {
	return &ImageStore{Root: root, MaxBytes: maxBytes, now: time.Now}
}

// Validate checks size, extension and sniffed content of an upload.
func (s *ImageStore) Validate(fh *multipart.FileHeader) error {
	if s.MaxBytes > 0 && fh.Size > s.MaxBytes {
		return ErrImageTooLarge
	}
	if !allowedExts[strings.ToLower(filepath.Ext(fh.Filename))] {
		return ErrImageType
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return fmt.Errorf("detect image type: %w", err)
	}
	if !mimetype.EqualsAny(mt.String(), allowedMIMEs...) {
		return ErrImageType
	}
	return nil
}

// Save validates fh and copies it into Root/dir under a fresh name made of
// the unix time and a random suffix. It returns the bare file name.
func (s *ImageStore) Save(fh *multipart.FileHeader, dir string) (string, error) {
	if err := s.Validate(fh); err != nil {
		return "", err
	}

	target := filepath.Join(s.Root, dir)
	if err := os.MkdirAll(target, 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := fmt.Sprintf("%d-%s%s", s.now().Unix(), uuid.NewString()[:8], ext)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(filepath.Join(target, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return name, nil
}

// Delete removes Root/dir/name; a missing file is not an error.
func (s *ImageStore) Delete(dir, name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(s.Path(dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists reports whether Root/dir/name is present on disk.
func (s *ImageStore) Exists(dir, name string) bool {
	_, err := os.Stat(s.Path(dir, name))
	return err == nil
}

func (s *ImageStore) Path(dir, name string) string {
	return filepath.Join(s.Root, dir, filepath.Base(name))
}
