package models

import "strings"

// NormalizeTags lowercases and trims a tag set, dropping empties. Applied at
// write time so scoring intersections can compare exact strings.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TrimTags trims whitespace without lowercasing, for fields like geography
// preferences where display casing is kept.
func TrimTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
