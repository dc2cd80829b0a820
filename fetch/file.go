package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File reads file:// URLs from the local filesystem. The zero value is
// ready to use.
type File struct{}

// NewFile creates a filesystem fetcher.
func NewFile() *File {
	return &File{}
}

// Fetch reads the file named by a file:// URL.
func (*File) Fetch(ctx context.Context, url string) (string, error) {
	path, err := parseFileURL(url)
	if err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", notFound(url)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// parseFileURL extracts the path from a file:// URL.
// Handles both Unix (file:///path) and Windows (file:///C:/path) forms.
//
// Examples:
//
//	Unix:    file:///tmp/externals      -> /tmp/externals
//	Windows: file:///C:/Users/externals -> C:/Users/externals
func parseFileURL(url string) (string, error) {
	if !strings.HasPrefix(url, "file://") {
		return "", fmt.Errorf("not a file:// URL: %s", url)
	}

	path := strings.TrimPrefix(url, "file://")

	// Windows paths arrive as /C:/path; drop the leading slash.
	if len(path) >= 3 && path[0] == '/' && isWindowsDriveLetter(path[1]) && path[2] == ':' {
		path = path[1:]
	}

	return filepath.Clean(path), nil
}

// isWindowsDriveLetter returns true if c is a valid Windows drive letter (A-Z, a-z).
func isWindowsDriveLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// FileURL converts a native file path to a file:// URL suitable for a
// LINK directive. Uses forward slashes and handles Windows drive
// letters correctly.
func FileURL(path string) string {
	urlPath := filepath.ToSlash(path)

	// On Windows, add leading slash before drive letter.
	if len(urlPath) >= 2 && isWindowsDriveLetter(urlPath[0]) && urlPath[1] == ':' {
		urlPath = "/" + urlPath
	}

	return "file://" + urlPath
}
