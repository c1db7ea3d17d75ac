package cache

import (
	"testing"

	"rms-check/internal/compat"
	"rms-check/internal/diag"
	"rms-check/internal/fix"
	"rms-check/internal/source"
)

func TestStorePutGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	store, err := Open("rms-check-test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rms", []byte("land_percent 150\n"))

	bag := diag.NewBag(4)
	span := source.Span{File: fileID, Start: 13, End: 16}
	d := diag.NewWarning(diag.CodeNumberOutOfRange, span, "land_percent 150 is outside 0-100")
	d = d.WithFixSuggestion(fix.ReplaceSpan("clamp to 100", span, "100", "150"))
	bag.Add(d)

	hash := HashContent([]byte("land_percent 150\n"))
	entry, err := ToEntry(bag, compat.Conquerors, hash, diag.FixBuildContext{FileSet: fs})
	if err != nil {
		t.Fatalf("ToEntry: %v", err)
	}

	if err := store.Put(entry); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := store.Get(hash)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got.Diagnostics) != 1 {
		t.Fatalf("expected 1 cached diagnostic, got %d", len(got.Diagnostics))
	}
	if got.Diagnostics[0].Code != "number-out-of-range" {
		t.Errorf("unexpected code: %s", got.Diagnostics[0].Code)
	}

	replayed := ToBag(got, fileID, 4)
	if replayed.Len() != 1 {
		t.Fatalf("expected 1 replayed diagnostic, got %d", replayed.Len())
	}
	replayedDiag := replayed.Items()[0]
	if replayedDiag.Primary != span {
		t.Errorf("expected span %v, got %v", span, replayedDiag.Primary)
	}
	if len(replayedDiag.Fixes) != 1 || replayedDiag.Fixes[0].Title != "clamp to 100" {
		t.Errorf("expected fix to survive round trip, got %+v", replayedDiag.Fixes)
	}
}

func TestStoreGetMissOnContentChange(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	store, err := Open("rms-check-test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	hash := HashContent([]byte("version one"))
	if err := store.Put(Entry{Schema: schemaVersion, ContentHash: hash}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	otherHash := HashContent([]byte("version two"))
	_, ok, err := store.Get(otherHash)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected miss for unrelated content hash")
	}
}

func TestStoreDropAllClearsEntries(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	store, err := Open("rms-check-test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	hash := HashContent([]byte("anything"))
	if err := store.Put(Entry{Schema: schemaVersion, ContentHash: hash}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}

	_, ok, err := store.Get(hash)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected miss after DropAll")
	}
}
