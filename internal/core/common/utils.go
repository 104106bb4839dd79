package common

import "strings"

// MaxListItems is the longest enumeration Join will produce.
const MaxListItems = 4

// Join renders items as an English enumeration: "A", "A and B", "A, B and C",
// "A, B, C and D". Anything past the fourth item is dropped. Callers must not
// pass an empty slice; an empty string comes back if they do.
func Join(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	}

	if len(items) > MaxListItems {
		items = items[:MaxListItems]
	}
	last := len(items) - 1
	return strings.Join(items[:last], ", ") + " and " + items[last]
}

// Dedupe drops repeated and blank strings, keeping first occurrences in order.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Take returns at most n leading items.
func Take(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
