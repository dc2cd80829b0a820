package fetch

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
)

// Dir serves URLs from a local mirror directory, for offline and
// airgap builds. A URL maps to {root}/{host}/{path}, so the mirror can
// be populated with any recursive downloader.
//
// A Dir only answers for URLs it holds; combine it with Mux to fall
// back to the network for everything else.
type Dir struct {
	root string
}

// NewDir creates a mirror fetcher rooted at root.
// Returns an error if the directory doesn't exist.
func NewDir(root string) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("mirror directory does not exist: %s", root)
		}
		return nil, fmt.Errorf("cannot access mirror directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("mirror path is not a directory: %s", root)
	}

	return &Dir{root: filepath.Clean(root)}, nil
}

// Root returns the mirror directory.
func (d *Dir) Root() string {
	return d.root
}

// Fetch reads the mirrored copy of a URL.
func (d *Dir) Fetch(ctx context.Context, rawURL string) (string, error) {
	local, err := d.localPath(rawURL)
	if err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	data, err := os.ReadFile(local)
	if err != nil {
		if os.IsNotExist(err) {
			return "", notFound(rawURL)
		}
		return "", fmt.Errorf("read mirrored %s: %w", local, err)
	}
	return string(data), nil
}

// HasURL reports whether the mirror holds a copy of the URL.
func (d *Dir) HasURL(rawURL string) bool {
	local, err := d.localPath(rawURL)
	if err != nil {
		return false
	}
	info, err := os.Stat(local)
	return err == nil && !info.IsDir()
}

// localPath maps a URL onto the mirror layout. The URL path is cleaned
// rooted so ".." segments cannot escape the mirror directory.
func (d *Dir) localPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url %s: %w", rawURL, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("url %s has no host to mirror under", rawURL)
	}

	rel := path.Clean("/" + u.Path)
	return filepath.Join(d.root, u.Host, filepath.FromSlash(rel)), nil
}
