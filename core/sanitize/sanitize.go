package sanitize

import (
	"strconv"
	"strings"
)

// MaxSheetNameLen is the legacy spreadsheet tab-name limit the stored
// project sheet names must stay within.
const MaxSheetNameLen = 31

var invalidFileChars = []string{"\\", "/", ":", "*", "?", "\"", "<", ">", "|", "\r", "\n", "\t"}

var invalidSheetChars = []string{"/", "\\", ":", "*", "?", "[", "]"}

// FileName strips characters that are unsafe in filesystem names, replacing
// each with an underscore and collapsing runs of underscores. An empty result
// falls back to the caller-supplied default.
func FileName(raw, fallback string) string {
	cleaned := strings.TrimSpace(raw)
	for _, ch := range invalidFileChars {
		cleaned = strings.ReplaceAll(cleaned, ch, "_")
	}
	for strings.Contains(cleaned, "__") {
		cleaned = strings.ReplaceAll(cleaned, "__", "_")
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return fallback
	}
	return cleaned
}

// SheetName produces a storage identifier within the 31-character tab limit.
// Forbidden characters become underscores, control whitespace becomes a
// single space, and an empty result falls back to the caller default.
// Truncation is rune-based: the names are predominantly Japanese.
func SheetName(raw, fallback string) string {
	cleaned := strings.TrimSpace(raw)
	for _, ch := range invalidSheetChars {
		cleaned = strings.ReplaceAll(cleaned, ch, "_")
	}
	cleaned = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ").Replace(cleaned)
	for strings.Contains(cleaned, "  ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		cleaned = fallback
	}
	return truncateRunes(cleaned, MaxSheetNameLen)
}

// UniqueSheetName disambiguates base against existing by appending _2, _3, …,
// truncating the base so the combined result stays within the tab limit.
// It terminates for any finite existing set.
func UniqueSheetName(base string, existing map[string]struct{}) string {
	candidate := truncateRunes(base, MaxSheetNameLen)
	if _, taken := existing[candidate]; !taken {
		return candidate
	}
	for counter := 2; ; counter++ {
		suffix := "_" + strconv.Itoa(counter)
		candidate = truncateRunes(base, MaxSheetNameLen-len([]rune(suffix))) + suffix
		if _, taken := existing[candidate]; !taken {
			return candidate
		}
	}
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

