package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	appErr "github.com/recipevault/engine/pkg/errors"
)

const recipeSubdir = "recipe"

// ImageStore writes recipe images below a root directory. Stored names are
// derived from a fresh uuid plus the original extension, never from the
// client-supplied filename.
type ImageStore struct {
	root string
}

func NewImageStore(root string) (*ImageStore, error) {
	if err := os.MkdirAll(filepath.Join(root, recipeSubdir), 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &ImageStore{root: root}, nil
}

// Save validates that the upload decodes as an image and writes it under a
// uuid-derived name. It returns the public path (uploads/recipe/<uuid><ext>).
// Nothing is persisted when validation fails.
func (s *ImageStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if _, err := imaging.Decode(file); err != nil {
		return "", appErr.Invalid("uploaded file is not a valid image")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "rewind upload failed")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(s.root, recipeSubdir, name))
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "create image file failed")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		return "", appErr.Wrap(err, appErr.CodeInternal, "write image file failed")
	}
	return path.Join("uploads", recipeSubdir, name), nil
}

// Remove deletes a previously stored image given its public path. Only the
// base name is honored, so a crafted path cannot escape the store.
func (s *ImageStore) Remove(publicPath string) error {
	if publicPath == "" {
		return nil
	}
	name := path.Base(publicPath)
	if err := os.Remove(filepath.Join(s.root, recipeSubdir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image %s: %w", name, err)
	}
	return nil
}

// Path maps a public path to the file's location on disk.
func (s *ImageStore) Path(publicPath string) string {
	return filepath.Join(s.root, recipeSubdir, path.Base(publicPath))
}
