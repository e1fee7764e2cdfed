// Package usecases - render.go turns an answer payload into displayable
// artifacts. Pure: no transport, no presentation, no side effects.
package usecases

import (
	"html"
	"regexp"
	"strings"

	"docchat/internal/domain/entities"
)

// DefaultAnswer is the text artifact fallback when the payload carries no
// answer text.
const DefaultAnswer = "No answer provided."

// emptySnippet stands in for a citation whose snippet is missing.
const emptySnippet = "..."

// modeVisualization tags payloads that carry a chart specification.
const modeVisualization = "visualization"

// markupPass is one (pattern, replacement) step of the inline formatter.
type markupPass struct {
	pattern     *regexp.Regexp
	replacement string
}

// markupPasses is the declarative formatting pipeline, applied in order
// over the HTML-escaped answer text. The order is a contract: the
// double-emphasis pass must run before the single-emphasis pass, otherwise
// adjacent markers corrupt each other (`**a**` would become `<em></em>a...`).
var markupPasses = []markupPass{
	{regexp.MustCompile(`\r?\n`), "<br>"},
	{regexp.MustCompile(`\*\*(.+?)\*\*`), "<strong>$1</strong>"},
	{regexp.MustCompile(`\*(.+?)\*`), "<em>$1</em>"},
}

// FormatText escapes raw text and applies the ordered markup passes,
// producing the html-safe string a TextArtifact carries.
func FormatText(text string) string {
	out := html.EscapeString(text)
	for _, pass := range markupPasses {
		out = pass.pattern.ReplaceAllString(out, pass.replacement)
	}
	return out
}

// RenderAnswer turns a well-formed answer payload into an ordered artifact
// sequence: text bubble, then citations, then chart. Pure and idempotent.
func RenderAnswer(payload *entities.AnswerPayload) []entities.Artifact {
	text := payload.Answer
	if strings.TrimSpace(text) == "" {
		text = DefaultAnswer
	}
	artifacts := []entities.Artifact{entities.TextArtifact{HTML: FormatText(text)}}

	if len(payload.Sources) > 0 {
		snippets := make([]string, len(payload.Sources))
		for i, src := range payload.Sources {
			if src.Snippet == "" {
				snippets[i] = emptySnippet
				continue
			}
			snippets[i] = src.Snippet
		}
		artifacts = append(artifacts, entities.CitationArtifact{Snippets: snippets})
	}

	if payload.Mode == modeVisualization && len(payload.ChartConfig) > 0 {
		artifacts = append(artifacts, entities.ChartArtifact{Spec: payload.ChartConfig})
	}

	return artifacts
}
