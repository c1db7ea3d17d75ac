package lsp

import (
	"strings"
	"testing"
)

func TestFoldingRangesSectionAndBlock(t *testing.T) {
	src := strings.Join([]string{
		"<LAND_GENERATION>",
		"create_land {",
		"  base_size 5",
		"  land_percent 50",
		"}",
		"if FOO",
		"create_land {}",
		"endif",
	}, "\n") + "\n"

	snapshot, uri := analyzeSnapshot(t, src)
	server := &Server{lastGoodSnapshot: snapshot}
	ranges := server.buildFoldingRanges(uri)
	if len(ranges) < 2 {
		t.Fatalf("expected at least 2 folding ranges, got %d: %+v", len(ranges), ranges)
	}
	if !hasFoldingRange(ranges, 0, 7) {
		t.Fatalf("missing folding range for section body: %+v", ranges)
	}
	if !hasFoldingRange(ranges, 1, 4) {
		t.Fatalf("missing folding range for create_land block: %+v", ranges)
	}
}

func hasFoldingRange(ranges []foldingRange, start, end int) bool {
	for _, rng := range ranges {
		if rng.StartLine == start && rng.EndLine == end {
			return true
		}
	}
	return false
}
