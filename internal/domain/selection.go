package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseSelection parses expressions like "1,3,5-7" or "all" into sorted,
// unique, 0-based indexes for a list of n entries.
func ParseSelection(expr string, n int) ([]int, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty selection")
	}

	if strings.EqualFold(expr, "all") {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}

	seen := make(map[int]bool)
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi := part, part
		if i := strings.Index(part, "-"); i >= 0 {
			lo, hi = strings.TrimSpace(part[:i]), strings.TrimSpace(part[i+1:])
		}

		start, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("invalid selection %q", part)
		}
		end, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("invalid selection %q", part)
		}
		if start > end {
			return nil, fmt.Errorf("invalid range %q", part)
		}
		if start < 1 || end > n {
			return nil, fmt.Errorf("selection %q out of range 1-%d", part, n)
		}

		for i := start; i <= end; i++ {
			seen[i-1] = true
		}
	}

	if len(seen) == 0 {
		return nil, fmt.Errorf("empty selection")
	}

	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}
