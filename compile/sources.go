// Package compile implements program commands: it turns source trees into
// utility stylesheet and verifies preset configuration.
package compile

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"uicss/archive"
	"uicss/config"
	"uicss/engine"
)

// sniffLen is enough for every matcher filetype knows about.
const sniffLen = 262

// hasExtension reports if file name ends with one of extensions. Empty list
// accepts everything.
func hasExtension(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	return slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

// isArchive reports if data is zip archive.
func isArchive(data []byte) bool {
	return filetype.Is(data[:min(len(data), sniffLen)], "zip")
}

// isBinary reports if data looks like known binary format (image, archive,
// font, etc.). Such files never contain class names.
func isBinary(data []byte) bool {
	kind, err := filetype.Match(data[:min(len(data), sniffLen)])
	return err == nil && kind != filetype.Unknown
}

// source is a file to scan, prefix selects entries when file is an archive.
type source struct {
	path   string
	prefix string
}

func (s source) String() string {
	if len(s.prefix) == 0 {
		return s.path
	}
	return s.path + string(filepath.Separator) + s.prefix
}

// locate finds existing part of the path. Anything after a regular file is
// path inside archive, directory cannot have such tail.
func locate(arg string) (source, fs.FileInfo, error) {
	src, err := filepath.Abs(arg)
	if err != nil {
		return source{}, nil, fmt.Errorf("bad input source (%s): %w", arg, err)
	}
	for head := src; ; {
		if fi, err := os.Stat(head); err == nil {
			if head == src {
				return source{path: src}, fi, nil
			}
			if !fi.Mode().IsRegular() {
				break
			}
			inner, err := filepath.Rel(head, src)
			if err != nil {
				break
			}
			return source{path: head, prefix: filepath.ToSlash(inner)}, fi, nil
		}
		parent := filepath.Dir(head)
		if parent == head {
			break
		}
		head = parent
	}
	return source{}, nil, fmt.Errorf("input source was not found (%s)", arg)
}

// collectSources expands arguments into files to scan. Directories are walked
// recursively (symbolic links are not followed) picking files with
// configured extensions, files named directly are always used. Missing
// sources are reported together, context cancellation stops everything.
func collectSources(ctx context.Context, args, exts []string, log *zap.Logger) ([]source, error) {
	var (
		sources []source
		errs    error
		seen    = make(map[source]struct{})
	)
	add := func(src source) {
		if _, ok := seen[src]; ok {
			return
		}
		seen[src] = struct{}{}
		sources = append(sources, src)
	}

	for _, arg := range args {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, fi, err := locate(arg)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if !fi.IsDir() {
			add(src)
			continue
		}
		err = filepath.WalkDir(src.path, func(path string, d fs.DirEntry, err error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err != nil {
				log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
				return nil
			}
			if d.Type().IsRegular() && hasExtension(path, exts) {
				add(source{path: path})
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return sources, errs
}

// scanSources reads files concurrently and extracts candidate tokens. Result
// keeps order of sources. Unreadable and binary files are skipped with a
// warning, scanned files are scheduled for debug report.
func scanSources(ctx context.Context, sources []source, exts []string, workers int, rpt *config.Report, log *zap.Logger) ([]string, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	found := make([][]string, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(src.path)
			if err != nil {
				log.Warn("Skipping file", zap.String("file", src.path), zap.Error(err))
				return nil
			}
			switch {
			case isArchive(data):
				if found[i], err = scanArchive(data, src.prefix, exts, log.With(zap.String("archive", src.path))); err != nil {
					log.Warn("Skipping archive", zap.String("file", src.path), zap.Error(err))
					return nil
				}
			case len(src.prefix) > 0:
				log.Warn("Skipping source, file is not an archive", zap.Stringer("source", src))
				return nil
			case isBinary(data):
				log.Warn("Skipping file, binary content", zap.String("file", src.path))
				return nil
			default:
				found[i] = engine.Extract(data, engine.KindOf(src.path))
			}
			rpt.Store("input/"+config.ReportName(src.path), src.path)
			log.Debug("Source scanned", zap.Stringer("source", src), zap.Int("candidates", len(found[i])))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(found...), nil
}

// scanArchive extracts candidates from archive entries under prefix. Entry
// named by prefix exactly is scanned regardless of its extension, same as
// files named on command line.
func scanArchive(data []byte, prefix string, exts []string, log *zap.Logger) ([]string, error) {
	var tokens []string
	err := archive.Walk(data, prefix, func(e *archive.Entry) error {
		if e.Name() != prefix && !hasExtension(e.Name(), exts) {
			return nil
		}
		content, err := e.Read()
		if err != nil {
			log.Warn("Skipping file in archive", zap.String("file", e.Name()), zap.Error(err))
			return nil
		}
		if isBinary(content) {
			log.Debug("Skipping file in archive, binary content", zap.String("file", e.Name()))
			return nil
		}
		tokens = append(tokens, engine.Extract(content, engine.KindOf(e.Name()))...)
		return nil
	})
	return tokens, err
}
