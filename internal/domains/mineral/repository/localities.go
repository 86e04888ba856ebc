package repository

import "strings"

// SplitLocalities turns a joined location string into trimmed, non-blank,
// de-duplicated locality names in their original order.
func SplitLocalities(location string) []string {
	parts := strings.Split(location, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))

	for _, p := range parts {
		name := strings.TrimSpace(p)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// JoinLocalities is the inverse used when loading: names joined by ", ".
func JoinLocalities(names []string) string {
	return strings.Join(names, ", ")
}
