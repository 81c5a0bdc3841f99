package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Interreferences/NoWayDpl-back/internal/constants"
	"github.com/Interreferences/NoWayDpl-back/internal/domain"
)

// Upload is a named binary payload, typically a multipart file part.
type Upload interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// BytesUpload is an in-memory Upload.
type BytesUpload struct {
	Filename string
	Data     []byte
}

func (b BytesUpload) Name() string { return b.Filename }

func (b BytesUpload) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}

var allowedExtensions = map[string]map[string]bool{
	constants.BucketImage: {
		constants.ExtJPG: true, constants.ExtJPEG: true, constants.ExtPNG: true,
		constants.ExtWEBP: true, constants.ExtGIF: true,
	},
	constants.BucketAudio: {
		constants.ExtMP3: true, constants.ExtFLAC: true, constants.ExtM4A: true,
		constants.ExtOGG: true, constants.ExtWAV: true, constants.ExtAAC: true,
	},
}

// Disk stores uploads under root/<bucket>/<uuid><ext> and hands out the
// slash-separated path relative to root.
type Disk struct {
	root string
}

// NewDisk creates root and its bucket directories.
func NewDisk(root string) (*Disk, error) {
	for bucket := range allowedExtensions {
		if err := EnsureDir(filepath.Join(root, bucket)); err != nil {
			return nil, fmt.Errorf("failed to create %s bucket: %w", bucket, err)
		}
	}
	return &Disk{root: root}, nil
}

func (d *Disk) Root() string {
	return d.root
}

// Store copies u into bucket and returns its relative path.
func (d *Disk) Store(bucket string, u Upload) (string, error) {
	allowed, ok := allowedExtensions[bucket]
	if !ok {
		return "", fmt.Errorf("unknown storage bucket %q", bucket)
	}
	ext := ParseExtension(filepath.Ext(Sanitize(u.Name())))
	if !allowed[ext] {
		return "", fmt.Errorf("%w: %s files are not accepted as %s", domain.ErrValidation, displayExt(ext), bucket)
	}

	src, err := u.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(d.root, bucket)
	if err := EnsureDir(dir); err != nil {
		return "", fmt.Errorf("failed to create bucket dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after rename

	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close upload: %w", err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		return "", fmt.Errorf("failed to chmod upload: %w", err)
	}

	rel := path.Join(bucket, uuid.NewString()+ext)
	if err := os.Rename(tmpName, filepath.Join(d.root, filepath.FromSlash(rel))); err != nil {
		return "", fmt.Errorf("failed to move upload into place: %w", err)
	}
	return rel, nil
}

// Remove deletes a file previously returned by Store. Empty and missing paths are ignored.
func (d *Disk) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	full, err := d.Path(rel)
	if err != nil {
		return err
	}
	return RemoveFile(full)
}

// Path resolves rel inside root, rejecting paths that escape it.
func (d *Disk) Path(rel string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(rel, "\\", "/"))
	if clean == "/" || strings.Contains(rel, "..") {
		return "", fmt.Errorf("invalid storage path %q", rel)
	}
	return filepath.Join(d.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func displayExt(ext string) string {
	if ext == "" {
		return "extensionless"
	}
	return ext
}
