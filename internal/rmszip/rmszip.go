// Package rmszip packages a directory of random-map-script files into a
// single zip archive (and back), the format AoE2 mod tooling expects a
// scenario's companion scripts to ship in.
package rmszip

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/klauspost/compress/flate"
)

var registerOnce sync.Once

// registerFlate swaps the standard library's deflate implementation for
// klauspost/compress's, which both packs and unpacks faster.
func registerFlate() {
	registerOnce.Do(func() {
		zip.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(w, flate.DefaultCompression)
		})
		zip.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
			return flate.NewReader(r)
		})
	})
}

// PackOptions configures Pack.
type PackOptions struct {
	// Extensions restricts packing to files with one of these extensions
	// (lowercase, dot-prefixed). Empty means pack every regular file.
	Extensions []string
}

// Pack archives every file under dir into outPath, a zip file. Entry names
// are dir-relative, slash-separated, and sorted for reproducible archives.
func Pack(dir, outPath string, opts PackOptions) (int, error) {
	registerFlate()

	info, err := os.Stat(dir)
	if err != nil {
		return 0, fmt.Errorf("rmszip: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("rmszip: %s is not a directory", dir)
	}

	allowed := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		allowed[strings.ToLower(ext)] = true
	}

	var names []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if len(allowed) > 0 && !allowed[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		names = append(names, rel)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("rmszip: %w", err)
	}
	sort.Strings(names)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, fmt.Errorf("rmszip: %w", err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("rmszip: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, rel := range names {
		if err := addFile(zw, dir, rel); err != nil {
			_ = zw.Close()
			return 0, err
		}
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("rmszip: %w", err)
	}
	return len(names), nil
}

func addFile(zw *zip.Writer, dir, rel string) error {
	full := filepath.Join(dir, rel)
	data, err := os.ReadFile(full)
	if err != nil {
		return fmt.Errorf("rmszip: %w", err)
	}
	info, err := os.Stat(full)
	if err != nil {
		return fmt.Errorf("rmszip: %w", err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("rmszip: %w", err)
	}
	header.Name = filepath.ToSlash(rel)
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("rmszip: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("rmszip: %w", err)
	}
	return nil
}

// Unpack extracts inPath, a zip archive, into dir, creating it if needed.
// Entry names are sanitized against path traversal (no "..", no absolute
// paths) before being joined with dir.
func Unpack(inPath, dir string) (int, error) {
	registerFlate()

	zr, err := zip.OpenReader(inPath)
	if err != nil {
		return 0, fmt.Errorf("rmszip: %w", err)
	}
	defer zr.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("rmszip: %w", err)
	}

	count := 0
	for _, entry := range zr.File {
		target, err := safeJoin(dir, entry.Name)
		if err != nil {
			return count, fmt.Errorf("rmszip: %w", err)
		}
		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return count, fmt.Errorf("rmszip: %w", err)
			}
			continue
		}
		if err := extractFile(entry, target); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func extractFile(entry *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("rmszip: %w", err)
	}
	r, err := entry.Open()
	if err != nil {
		return fmt.Errorf("rmszip: %w", err)
	}
	defer r.Close()

	mode := entry.Mode()
	if mode == 0 {
		mode = 0o644
	}
	w, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return fmt.Errorf("rmszip: %w", err)
	}
	defer w.Close()

	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("rmszip: %w", err)
	}
	return nil
}

// safeJoin joins dir and name, rejecting any name that would escape dir.
func safeJoin(dir, name string) (string, error) {
	cleaned := filepath.Clean(filepath.Join(dir, name))
	base := filepath.Clean(dir)
	if cleaned != base && !strings.HasPrefix(cleaned, base+string(filepath.Separator)) {
		return "", errors.New("zip entry escapes target directory: " + name)
	}
	return cleaned, nil
}
