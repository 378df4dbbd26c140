// Package archive reads source files packed into zip archives (component
// bundles, exported templates).
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
)

// MaxEntrySize limits uncompressed size of a single entry Read would accept.
const MaxEntrySize = 32 << 20

// Entry is a regular file inside archive.
type Entry struct {
	f *zip.File
}

// Name returns slash separated path of the entry.
func (e *Entry) Name() string {
	return e.f.Name
}

// Read returns uncompressed content of the entry.
func (e *Entry) Read() ([]byte, error) {
	if e.f.UncompressedSize64 > MaxEntrySize {
		return nil, fmt.Errorf("entry %q is too large (%d bytes)", e.f.Name, e.f.UncompressedSize64)
	}
	r, err := e.f.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open entry %q: %w", e.f.Name, err)
	}
	defer r.Close()

	data, err := io.ReadAll(io.LimitReader(r, MaxEntrySize+1))
	if err != nil {
		return nil, fmt.Errorf("unable to read entry %q: %w", e.f.Name, err)
	}
	if len(data) > MaxEntrySize {
		return nil, fmt.Errorf("entry %q is too large", e.f.Name)
	}
	return data, nil
}

// WalkFunc is called for every regular file Walk visits. Returned error
// stops walking.
type WalkFunc func(entry *Entry) error

// Walk visits regular files of in-memory archive in archive order. Non empty
// prefix selects a single entry or everything under it ("docs" matches
// "docs" and "docs/a.html", but not "docs2/a.html"). Archives with absolute
// names or ".." components are rejected.
func Walk(data []byte, prefix string, walkFn WalkFunc) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("unable to read archive: %w", err)
	}

	prefix = strings.TrimSuffix(prefix, "/")
	for _, f := range zr.File {
		if !isSafePath(f.Name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", f.Name)
		}
		if f.FileInfo().IsDir() || !under(f.Name, prefix) {
			continue
		}
		if err := walkFn(&Entry{f: f}); err != nil {
			return err
		}
	}
	return nil
}

func under(name, prefix string) bool {
	return len(prefix) == 0 || name == prefix || strings.HasPrefix(name, prefix+"/")
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
