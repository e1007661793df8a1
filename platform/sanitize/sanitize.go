// Package sanitize provides text sanitization utilities for transcribed speech
// and other user-provided text.
package sanitize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	// htmlTagRegex matches HTML tags
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
	// whitespaceRegex matches runs of whitespace including tabs and newlines
	whitespaceRegex = regexp.MustCompile(`\s+`)
	// noiseRegex matches bracketed transcription markers such as [skratt] or (ohörbart)
	noiseRegex = regexp.MustCompile(`[\[(][^\])]*[\])]`)

	swedishLower = cases.Lower(language.Swedish)
)

// StripHTML removes all HTML tags from a string, making it safe for text-only display.
func StripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = strings.ReplaceAll(result, "&lt;", "<")
	result = strings.ReplaceAll(result, "&gt;", ">")
	result = strings.ReplaceAll(result, "&amp;", "&")
	result = strings.ReplaceAll(result, "&quot;", "\"")
	result = strings.ReplaceAll(result, "&#39;", "'")
	// Re-strip after entity decode to catch encoded tags
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text sanitizes a string for safe text storage by stripping HTML, composing
// Unicode (å/ä/ö may arrive decomposed from speech services) and collapsing whitespace.
// Case is preserved; use it for names.
func Text(s string) string {
	result := norm.NFC.String(StripHTML(s))
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(result, " "))
}

// Utterance prepares transcribed speech for parsing: Text plus removal of
// bracketed transcription noise and Swedish lowercasing.
func Utterance(s string) string {
	result := noiseRegex.ReplaceAllString(Text(s), " ")
	result = swedishLower.String(result)
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(result, " "))
}
