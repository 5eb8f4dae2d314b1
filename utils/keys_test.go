package utils

import (
	"testing"
	"time"
)

func TestSortKeyLexicographicOrder(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	earlier := SortKey(base, "bbb")
	later := SortKey(base.Add(time.Millisecond), "aaa")

	if !(earlier < later) {
		t.Fatalf("sort keys out of order: %q should sort before %q", earlier, later)
	}
}

func TestSortKeyNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("PST", -8*3600)
	ts := time.Date(2025, 3, 14, 1, 0, 0, 0, loc)

	got := SortKey(ts, "x")
	want := SortKey(ts.UTC(), "x")
	if got != want {
		t.Fatalf("SortKey not timezone independent: %q vs %q", got, want)
	}
}

func TestSplitSortKey(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 123456789, time.UTC)
	key := SortKey(ts, "tweet-42")

	gotTS, gotID := SplitSortKey(key)
	if gotTS != ts.Format(SortKeyTimeLayout) {
		t.Fatalf("timestamp half = %q, want %q", gotTS, ts.Format(SortKeyTimeLayout))
	}
	if gotID != "tweet-42" {
		t.Fatalf("id half = %q, want %q", gotID, "tweet-42")
	}

	// No separator: everything is the timestamp half.
	gotTS, gotID = SplitSortKey("garbage")
	if gotTS != "garbage" || gotID != "" {
		t.Fatalf("SplitSortKey(garbage) = (%q, %q)", gotTS, gotID)
	}
}
