package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/unipem/lms/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // root directory, served under URLPrefix
	log      zerolog.Logger
}

// NewLocalStorage creates the base directory when needed
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	ls := &LocalStorage{
		basePath: basePath,
		log:      logger.Component("filestorage"),
	}
	ls.log.Info().Str("path", basePath).Msg("Local storage directory ensured")
	return ls, nil
}

// Root returns the storage directory
func (ls *LocalStorage) Root() string {
	return ls.basePath
}

// SaveFile copies the upload to basePath/subPath under a random name
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("no file provided")
	}

	subPath = cleanSubPath(subPath)
	if subPath == "" {
		subPath = "misc"
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	dir := filepath.Join(ls.basePath, filepath.FromSlash(subPath))
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	dstPath := filepath.Join(dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	fileURL := path.Join(URLPrefix, subPath, name)
	ls.log.Info().Str("filename", fileHeader.Filename).Str("url", fileURL).Msg("File saved")
	return fileURL, nil
}

// DeleteFile removes the file behind fileURL. Missing files and foreign URLs are not errors.
func (ls *LocalStorage) DeleteFile(fileURL string) error {
	fullPath := ls.GetFullPath(fileURL)
	if fullPath == "" {
		return nil
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			ls.log.Warn().Str("path", fullPath).Msg("File to delete does not exist")
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	ls.log.Info().Str("path", fullPath).Msg("File deleted")
	return nil
}

// GetFullPath maps /uploads/... to a path inside basePath
func (ls *LocalStorage) GetFullPath(fileURL string) string {
	if !strings.HasPrefix(fileURL, URLPrefix+"/") {
		return ""
	}
	rel := cleanSubPath(strings.TrimPrefix(fileURL, URLPrefix+"/"))
	if rel == "" {
		return ""
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(rel))
}

// cleanSubPath strips traversal elements so the result stays under the root
func cleanSubPath(p string) string {
	cleaned := path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimPrefix(cleaned, "/")
}
