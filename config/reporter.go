package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/maruel/natural"

	"uicss/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty report. When destination cannot be created report
// goes to temporary directory.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	return &Report{entries: make(map[string]entry), file: f}, nil
}

// entry is either a path (file or directory) resolved when report is closed
// or data captured at the time of the call.
type entry struct {
	path  string
	data  []byte
	stamp time.Time
}

// Report accumulates everything needed to troubleshoot a run and writes it
// as zip archive on Close. All methods are no-ops on nil report so callers do
// not have to check if report was requested. Safe for concurrent use.
type Report struct {
	mu      sync.Mutex
	entries map[string]entry
	file    *os.File
}

// Name returns absolute name of the archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store schedules file or directory to be archived under name.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, exists := r.entries[name]; exists && old.path != path {
		panic(fmt.Sprintf("report entry [%s] stored twice: was %s, now %s", name, old.path, path))
	}
	r.entries[name] = entry{path: path}
}

// StoreData archives data under name. Repeated names get time suffix.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	e := entry{data: bytes.Clone(data), stamp: time.Now()}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		name = fmt.Sprintf("%s-%d", name, e.stamp.UnixNano())
	}
	r.entries[name] = e
}

// StoreCopy archives content of the file as it is at the time of the call.
func (r *Report) StoreCopy(name, path string) error {
	if r == nil {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to copy '%s' to report: %w", path, err)
	}
	r.StoreData(name, data)
	return nil
}

// Close writes archive. Stored paths which no longer exist are skipped.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	defer r.file.Close()

	r.mu.Lock()
	defer r.mu.Unlock()

	arc := zip.NewWriter(r.file)
	names := r.sortedNames()
	if err := writeEntry(arc, "MANIFEST", time.Now(), bytes.NewReader(r.manifest(names))); err != nil {
		return err
	}
	for _, name := range names {
		if err := r.archive(arc, name, r.entries[name]); err != nil {
			return fmt.Errorf("unable to archive report entry [%s]: %w", name, err)
		}
	}
	return arc.Close()
}

func (r *Report) sortedNames() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case natural.Less(a, b):
			return -1
		}
		return 1
	})
	return names
}

func (r *Report) manifest(names []string) []byte {
	now := time.Now()
	var buf bytes.Buffer
	for _, name := range names {
		e := r.entries[name]
		stamp, source := e.stamp, e.path
		if stamp.IsZero() {
			stamp = now
		}
		if len(source) == 0 {
			source = fmt.Sprintf("<%d bytes>", len(e.data))
		}
		fmt.Fprintf(&buf, "%s\t%s\t%s\n", stamp.UTC().Format(time.UnixDate), name, source)
	}
	return buf.Bytes()
}

func (r *Report) archive(arc *zip.Writer, name string, e entry) error {
	if len(e.path) == 0 {
		return writeEntry(arc, name, e.stamp, bytes.NewReader(e.data))
	}
	info, err := os.Stat(e.path)
	if err != nil {
		return nil
	}
	if !info.IsDir() {
		return writeFile(arc, name, e.path, info)
	}
	return filepath.WalkDir(e.path, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(e.path, path)
		if err != nil {
			return err
		}
		return writeFile(arc, filepath.ToSlash(filepath.Join(name, rel)), path, info)
	})
}

func writeFile(arc *zip.Writer, name, path string, info fs.FileInfo) error {
	if !info.Mode().IsRegular() {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeEntry(arc, name, info.ModTime(), f)
}

func writeEntry(arc *zip.Writer, name string, modified time.Time, src io.Reader) error {
	w, err := arc.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: modified})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
