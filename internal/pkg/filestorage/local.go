package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/acitm/admissions/internal/pkg/logger"
)

var whitespace = regexp.MustCompile(`\s+`)

// LocalStorage stores bucket objects on the local filesystem and serves them
// through the static /uploads route.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a new LocalStorage instance. basePath is the
// directory objects are written to; baseURL is prepended to returned keys to
// form public URLs.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// ObjectKey builds the bucket key for a filename: epoch millis, a dash, and
// the filename with whitespace collapsed to dashes.
func ObjectKey(filename string, now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), whitespace.ReplaceAllString(filename, "-"))
}

// SaveFile stores an uploaded file under a timestamped key and returns the
// public URL.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	key := ObjectKey(filepath.Base(fileHeader.Filename), time.Now())
	dstPath := filepath.Join(ls.basePath, key)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	publicURL := ls.baseURL + "/" + key
	logger.Info().Str("filename", fileHeader.Filename).Str("key", key).Msg("File saved")
	return publicURL, nil
}

// DeleteFile removes a stored file. Accepts either the bucket key or the full
// public URL; missing files are treated as already deleted.
func (ls *LocalStorage) DeleteFile(fileURL string) error {
	if fileURL == "" {
		return nil
	}

	key := filepath.Base(fileURL)
	if key == "" || key == "." || key == "/" {
		return fmt.Errorf("invalid file path: %s", fileURL)
	}

	physicalPath := filepath.Join(ls.basePath, key)

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
