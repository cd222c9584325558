package assistant

import "regexp"

// The model is instructed to answer in plain text but still slips structural
// markup into responses. Every increment is cleaned before it is surfaced.
var (
	reBold    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	reItalic  = regexp.MustCompile(`\*([^*]+)\*`)
	reBoldU   = regexp.MustCompile(`__([^_]+)__`)
	reItalicU = regexp.MustCompile(`_([^_]+)_`)
	reHeading = regexp.MustCompile(`#{1,6}\s`)
	reCode    = regexp.MustCompile("`([^`]+)`")
	reFence   = regexp.MustCompile("(?s)```.*?```")
)

// stripMarkdown removes emphasis, heading, inline-code and fenced-block
// markers while preserving the chunk's surrounding whitespace, so increments
// still concatenate into the intended text.
func stripMarkdown(s string) string {
	s = reFence.ReplaceAllString(s, "")
	s = reBold.ReplaceAllString(s, "$1")
	s = reItalic.ReplaceAllString(s, "$1")
	s = reBoldU.ReplaceAllString(s, "$1")
	s = reItalicU.ReplaceAllString(s, "$1")
	s = reHeading.ReplaceAllString(s, "")
	s = reCode.ReplaceAllString(s, "$1")
	return s
}
