// Package cache persists per-file lint results on disk so a directory-wide
// check/fix run can skip re-lexing, re-parsing, and re-walking files whose
// content hasn't changed since the last run.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"rms-check/internal/compat"
	"rms-check/internal/diag"
	"rms-check/internal/source"
)

// schemaVersion guards against decoding a payload written by an
// incompatible earlier build; bump it whenever Entry's shape changes.
const schemaVersion uint16 = 1

// Location is a serializable, FileSet-independent counterpart to
// source.Span: byte offsets only, since a FileID is only meaningful
// within the FileSet that minted it and won't survive a process restart.
type Location struct {
	StartByte uint32
	EndByte   uint32
}

// Note is the cached counterpart of diag.Note.
type Note struct {
	Location Location
	Message  string
}

// Edit is the cached counterpart of diag.TextEdit.
type Edit struct {
	Location Location
	NewText  string
	OldText  string
}

// Fix is the cached counterpart of diag.Fix. Thunk-backed fixes are
// materialized before caching — a cached entry never carries a closure.
type Fix struct {
	ID            string
	Title         string
	Kind          uint8
	Applicability uint8
	IsPreferred   bool
	Edits         []Edit
}

// Diagnostic is the cached counterpart of diag.Diagnostic.
type Diagnostic struct {
	Severity uint8
	Code     string
	Message  string
	Primary  Location
	Notes    []Note
	Fixes    []Fix
}

// Entry is one file's cached lint result.
type Entry struct {
	Schema      uint16
	ContentHash [sha256.Size]byte
	Level       uint8
	Diagnostics []Diagnostic
}

// HashContent returns the cache key for a file's current bytes.
func HashContent(content []byte) [sha256.Size]byte {
	return sha256.Sum256(content)
}

// ToEntry converts a live Bag into a cacheable Entry, resolving any
// Thunk-backed fixes against ctx so nothing un-serializable survives.
func ToEntry(bag *diag.Bag, level compat.Level, contentHash [sha256.Size]byte, ctx diag.FixBuildContext) (Entry, error) {
	items := bag.Items()
	entry := Entry{
		Schema:      schemaVersion,
		ContentHash: contentHash,
		Level:       uint8(level),
		Diagnostics: make([]Diagnostic, 0, len(items)),
	}
	for _, d := range items {
		resolvedFixes, err := diag.MaterializeFixes(ctx, d.Fixes)
		if err != nil {
			return Entry{}, err
		}
		cd := Diagnostic{
			Severity: uint8(d.Severity),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Primary:  Location{StartByte: d.Primary.Start, EndByte: d.Primary.End},
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, Note{
				Location: Location{StartByte: n.Span.Start, EndByte: n.Span.End},
				Message:  n.Msg,
			})
		}
		for _, f := range resolvedFixes {
			cf := Fix{
				ID:            f.ID,
				Title:         f.Title,
				Kind:          uint8(f.Kind),
				Applicability: uint8(f.Applicability),
				IsPreferred:   f.IsPreferred,
			}
			for _, e := range f.Edits {
				cf.Edits = append(cf.Edits, Edit{
					Location: Location{StartByte: e.Span.Start, EndByte: e.Span.End},
					NewText:  e.NewText,
					OldText:  e.OldText,
				})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		entry.Diagnostics = append(entry.Diagnostics, cd)
	}
	return entry, nil
}

// ToBag replays a cached Entry back into a Bag addressed against fileID,
// the FileID the caller just minted for this file in the current run.
func ToBag(entry Entry, fileID source.FileID, max int) *diag.Bag {
	bag := diag.NewBag(max)
	for _, cd := range entry.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: fileID, Start: cd.Primary.StartByte, End: cd.Primary.EndByte},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Span: source.Span{File: fileID, Start: n.Location.StartByte, End: n.Location.EndByte},
				Msg:  n.Message,
			})
		}
		for _, cf := range cd.Fixes {
			f := diag.Fix{
				ID:            cf.ID,
				Title:         cf.Title,
				Kind:          diag.FixKind(cf.Kind),
				Applicability: diag.FixApplicability(cf.Applicability),
				IsPreferred:   cf.IsPreferred,
			}
			for _, e := range cf.Edits {
				f.Edits = append(f.Edits, diag.TextEdit{
					Span:    source.Span{File: fileID, Start: e.Location.StartByte, End: e.Location.EndByte},
					NewText: e.NewText,
					OldText: e.OldText,
				})
			}
			d.Fixes = append(d.Fixes, f)
		}
		bag.Add(d)
	}
	return bag
}

// Store is a thread-safe, msgpack-serialized, content-addressed on-disk
// cache of per-file Entry values, rooted at a single directory.
type Store struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes a Store at the standard per-app cache location
// ($XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>).
func Open(app string) (*Store, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) pathFor(hash [sha256.Size]byte) string {
	return filepath.Join(s.dir, "files", hex.EncodeToString(hash[:])+".mp")
}

// Get looks up the entry for content hash, returning (entry, true, nil) on
// a hit. A schema mismatch or content-hash mismatch is treated as a miss,
// not an error, so callers don't need to special-case cache format drift.
func (s *Store) Get(hash [sha256.Size]byte) (Entry, bool, error) {
	if s == nil {
		return Entry{}, false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(s.pathFor(hash))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}
	defer f.Close()

	var entry Entry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return Entry{}, false, nil
	}
	if entry.Schema != schemaVersion || entry.ContentHash != hash {
		return Entry{}, false, nil
	}
	return entry, true, nil
}

// Put writes entry to disk, keyed by its own ContentHash, atomically.
func (s *Store) Put(entry Entry) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.pathFor(entry.ContentHash)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := msgpack.NewEncoder(tmp).Encode(entry); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// DropAll invalidates every cached entry, for use after a schema bump or
// an explicit --no-cache-reset style CLI flag.
func (s *Store) DropAll() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(s.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
