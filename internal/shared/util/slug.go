package util

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldDiacritics converts Vietnamese text to its ASCII skeleton by stripping
// combining marks. The đ/Đ letters carry no combining mark and are mapped
// explicitly.
func FoldDiacritics(s string) string {
	s = strings.ReplaceAll(s, "đ", "d")
	s = strings.ReplaceAll(s, "Đ", "D")

	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(folder, s)
	if err != nil {
		return s
	}
	return out
}

// Slugify produces the lowercase kebab-case form used for document slugs and
// normalized tags: diacritics folded, runs of non-alphanumerics collapsed to
// a single dash, no leading or trailing dash.
func Slugify(s string) string {
	s = strings.ToLower(FoldDiacritics(s))

	var b strings.Builder
	pendingDash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// FormatFileSize renders a byte count for display: whole bytes below 1 KB,
// otherwise one decimal of KB or MB.
func FormatFileSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}
