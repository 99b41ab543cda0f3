package usecase

import "strings"

// Normalize lowercases free-text input and splits it on whitespace.
// Empty or whitespace-only input yields an empty, non-nil slice, which the
// filter treats as "no free-text constraint".
func Normalize(text string) []string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	if fields == nil {
		return []string{}
	}
	return fields
}
