package media

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SaveUpload writes the multipart file from the given form field to a
// temporary file under dir and returns its path and MIME type. A missing
// file is not an error; ok reports whether a file was attached.
//
// The caller owns the returned file and must remove it on every exit path,
// success or failure.
func SaveUpload(c echo.Context, field, dir string) (path string, mimeType string, ok bool, err error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", "", false, nil
		}
		return "", "", false, fmt.Errorf("failed to read upload: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", "", false, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", false, fmt.Errorf("failed to create upload dir: %w", err)
	}

	path = filepath.Join(dir, uuid.NewString()+filepath.Ext(fileHeader.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", "", false, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", "", false, fmt.Errorf("failed to write temp file: %w", err)
	}

	return path, fileHeader.Header.Get("Content-Type"), true, nil
}
