package utils

import (
	"strings"
	"time"
)

// SortKeyTimeLayout is a fixed-width UTC layout so that lexicographic order
// of sort keys matches chronological order.
const SortKeyTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SortKey builds a "timestamp#id" range key. Items sharing a partition sort
// chronologically, with the id as a tiebreaker for identical timestamps.
func SortKey(createdAt time.Time, id string) string {
	return createdAt.UTC().Format(SortKeyTimeLayout) + "#" + id
}

// SplitSortKey returns the timestamp and id halves of a sort key.
func SplitSortKey(key string) (string, string) {
	idx := strings.LastIndex(key, "#")
	if idx < 0 {
		return key, ""
	}
	return key[:idx], key[idx+1:]
}
