package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileHeader(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	ls, err := NewLocalStorage(root)
	require.NoError(t, err)

	url, err := ls.SaveFile(newFileHeader(t, "Tugas1.PDF", "hello"), "submissions/abc")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/submissions/abc/"))
	assert.True(t, strings.HasSuffix(url, ".pdf"))

	full := ls.GetFullPath(url)
	assert.Equal(t, root, filepath.Dir(filepath.Dir(filepath.Dir(full))))
	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, ls.DeleteFile(url))
	_, err = os.Stat(full)
	assert.True(t, os.IsNotExist(err))

	// second delete is a no-op
	assert.NoError(t, ls.DeleteFile(url))
}

func TestLocalStorage_GetFullPath(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, ls.GetFullPath("https://example.com/file.pdf"))
	assert.Empty(t, ls.GetFullPath("/files/materi1.pdf"))
	assert.Equal(t, filepath.Join(ls.Root(), "etc", "passwd"), ls.GetFullPath("/uploads/../../etc/passwd"))
}

func TestLocalStorage_SaveNil(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = ls.SaveFile(nil, "x")
	assert.Error(t, err)
}
