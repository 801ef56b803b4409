package filestorage

import (
	"mime/multipart"
	"path"
	"strings"
)

// URLPrefix is the public route under which stored files are served
const URLPrefix = "/uploads"

// IsStoredURL reports whether fileURL points into the storage root
func IsStoredURL(fileURL string) bool {
	return fileURL == URLPrefix || strings.HasPrefix(fileURL, URLPrefix+"/")
}

// OwnedBy reports whether fileURL was stored under subPath by SaveFile
func OwnedBy(fileURL, subPath string) bool {
	return strings.HasPrefix(fileURL, path.Join(URLPrefix, subPath)+"/")
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile stores the upload under subPath and returns its public URL
	SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a file previously returned by SaveFile; unknown files are ignored
	DeleteFile(fileURL string) error

	// GetFullPath returns the filesystem path for a public URL, or "" when it is not ours
	GetFullPath(fileURL string) string

	// Root is the directory served under URLPrefix
	Root() string
}
