package storage

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErr "github.com/recipevault/engine/pkg/errors"
)

func uploadOf(t *testing.T, filename string, payload []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	return file, header
}

func smallPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestSaveStoresUnderUUIDName(t *testing.T) {
	root := t.TempDir()
	store, err := NewImageStore(root)
	require.NoError(t, err)

	file, header := uploadOf(t, "dinner.png", smallPNG(t))
	defer file.Close()

	public, err := store.Save(file, header)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(public, "uploads/recipe/"))
	assert.True(t, strings.HasSuffix(public, ".png"))
	assert.NotContains(t, public, "dinner")

	// the file really exists on disk with the uploaded bytes
	data, err := os.ReadFile(store.Path(public))
	require.NoError(t, err)
	assert.Equal(t, smallPNG(t), data)
}

func TestSaveRejectsNonImage(t *testing.T) {
	root := t.TempDir()
	store, err := NewImageStore(root)
	require.NoError(t, err)

	file, header := uploadOf(t, "notes.txt", []byte("plain text, not pixels"))
	defer file.Close()

	_, err = store.Save(file, header)
	require.Error(t, err)
	assert.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	entries, err := os.ReadDir(path.Join(root, "recipe"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveGeneratesDistinctNames(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	f1, h1 := uploadOf(t, "same.png", smallPNG(t))
	p1, err := store.Save(f1, h1)
	require.NoError(t, err)
	f1.Close()

	f2, h2 := uploadOf(t, "same.png", smallPNG(t))
	p2, err := store.Save(f2, h2)
	require.NoError(t, err)
	f2.Close()

	assert.NotEqual(t, p1, p2)
}

func TestRemove(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	file, header := uploadOf(t, "cake.png", smallPNG(t))
	defer file.Close()

	public, err := store.Save(file, header)
	require.NoError(t, err)

	require.NoError(t, store.Remove(public))
	_, statErr := os.Stat(store.Path(public))
	assert.True(t, os.IsNotExist(statErr))

	// removing twice is fine, as is an empty path
	assert.NoError(t, store.Remove(public))
	assert.NoError(t, store.Remove(""))
}

func TestRemoveIgnoresPathTraversal(t *testing.T) {
	root := t.TempDir()
	store, err := NewImageStore(root)
	require.NoError(t, err)

	outside := path.Join(root, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))

	require.NoError(t, store.Remove("uploads/recipe/../../secret.txt"))
	_, statErr := os.Stat(outside)
	assert.NoError(t, statErr)
}
