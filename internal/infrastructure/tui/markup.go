package tui

import (
	"html"
	"regexp"
	"strings"
)

// The renderer emits html-safe strings; the terminal wants ANSI. These
// passes translate the small tag set the formatter produces, in the same
// order it produced them.
var (
	breakTag  = regexp.MustCompile(`<br\s*/?>`)
	strongTag = regexp.MustCompile(`<strong>(.*?)</strong>`)
	emTag     = regexp.MustCompile(`<em>(.*?)</em>`)
)

// renderHTML converts an artifact's html-safe string into styled terminal
// text.
func (s Styles) renderHTML(text string) string {
	out := breakTag.ReplaceAllString(text, "\n")
	out = strongTag.ReplaceAllStringFunc(out, func(match string) string {
		return s.Strong.Render(strongTag.FindStringSubmatch(match)[1])
	})
	out = emTag.ReplaceAllStringFunc(out, func(match string) string {
		return s.Em.Render(emTag.FindStringSubmatch(match)[1])
	})

	// Unescape the plain segments without touching the ANSI sequences the
	// styles rendered.
	var sb strings.Builder
	for _, segment := range splitANSI(out) {
		if segment.styled {
			sb.WriteString(segment.text)
			continue
		}
		sb.WriteString(html.UnescapeString(segment.text))
	}
	return sb.String()
}

type ansiSegment struct {
	text   string
	styled bool
}

// splitANSI separates escape-initiated runs from plain text so only the
// plain runs get unescaped.
func splitANSI(s string) []ansiSegment {
	const esc = '\x1b'
	var segments []ansiSegment
	start := 0
	inSeq := false

	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == esc && !inSeq:
			if i > start {
				segments = append(segments, ansiSegment{text: s[start:i]})
			}
			start = i
			inSeq = true
		case inSeq && s[i] == 'm':
			segments = append(segments, ansiSegment{text: s[start : i+1], styled: true})
			start = i + 1
			inSeq = false
		}
	}
	if start < len(s) {
		segments = append(segments, ansiSegment{text: s[start:], styled: inSeq})
	}
	return segments
}
