package models

import (
	"regexp"
	"strings"
)

var (
	spaceRun   = regexp.MustCompile(`\s+`)
	slugStrip  = regexp.MustCompile(`[^a-z0-9\s-]`)
	dashRun    = regexp.MustCompile(`-+`)
	digitsOnly = regexp.MustCompile(`^\d+$`)
)

// CleanText collapses whitespace runs and trims the ends.
func CleanText(value string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(value, " "))
}

// Truncate cleans the text and cuts it to max runes, keeping a trailing
// ellipsis when content was dropped.
func Truncate(value string, max int) string {
	text := CleanText(value)
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	keep := max - 1
	if keep < 0 {
		keep = 0
	}
	return strings.TrimRight(string(runes[:keep]), " ") + "…"
}

// Slugify lowercases the text and reduces it to dash-separated alphanumeric
// runs. Empty input slugs to "offer" so URL paths never end up blank.
func Slugify(value string) string {
	text := strings.ToLower(CleanText(value))
	text = slugStrip.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, " ", "-")
	text = dashRun.ReplaceAllString(text, "-")
	text = strings.Trim(text, "-")
	if text == "" {
		return "offer"
	}
	return text
}

// IsNumericToken reports whether the token is digits only.
func IsNumericToken(token string) bool {
	return digitsOnly.MatchString(token)
}
