package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIDList converts a comma separated query value such as "1,2,3" into ids.
// Blank entries are skipped; any other non-integer entry is an error.
func ParseIDList(raw string) ([]uint, error) {
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 0)
		if err != nil || n == 0 {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, uint(n))
	}
	return ids, nil
}

// ParseID parses a positive integer path parameter
func ParseID(raw string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(n), nil
}

// UniqueIDs returns ids without duplicates, keeping first occurrence order
func UniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
