package storage_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"warung/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadedFile builds a real multipart.FileHeader by round-tripping a form
// through the HTTP parser.
func uploadedFile(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	files := req.MultipartForm.File["image"]
	require.Len(t, files, 1)
	return files[0]
}

func TestIsAcceptedImage(t *testing.T) {
	for contentType, accepted := range map[string]bool{
		"image/png":  true,
		"image/jpg":  true,
		"image/jpeg": true,
		"image/gif":  false,
		"text/plain": false,
		"":           false,
	} {
		file := uploadedFile(t, "upload.bin", contentType, []byte("data"))
		assert.Equal(t, accepted, storage.IsAcceptedImage(file), contentType)
	}
}

func TestLocalStore_SaveAndDelete(t *testing.T) {
	store, err := storage.NewLocalStore(filepath.Join(t.TempDir(), "images"))
	require.NoError(t, err)

	file := uploadedFile(t, "chair.png", "image/png", []byte("fake png bytes"))

	path, err := store.Save(file)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".png"))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake png bytes"), written)

	// Two saves of the same upload never collide.
	otherPath, err := store.Save(uploadedFile(t, "chair.png", "image/png", []byte("fake png bytes")))
	require.NoError(t, err)
	assert.NotEqual(t, path, otherPath)

	require.NoError(t, store.Delete(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Deleting what is already gone is an error the caller may log and drop.
	assert.Error(t, store.Delete(path))
}
