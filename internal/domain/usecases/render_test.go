package usecases

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"docchat/internal/domain/entities"
)

func TestFormatText_Passes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"newline to break", "a\nb", "a<br>b"},
		{"crlf to break", "a\r\nb", "a<br>b"},
		{"strong", "**bold**", "<strong>bold</strong>"},
		{"em", "*it*", "<em>it</em>"},
		{"double before single", "**a** *b*", "<strong>a</strong> <em>b</em>"},
		{"html escaped", "<script>", "&lt;script&gt;"},
		{"escaped then emphasized", "**<b>**", "<strong>&lt;b&gt;</strong>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatText(tc.in); got != tc.want {
				t.Errorf("FormatText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRenderAnswer_FullPayloadOrdering(t *testing.T) {
	payload := &entities.AnswerPayload{
		Answer:      "X",
		Sources:     []entities.Source{{Snippet: "s1"}},
		Mode:        "visualization",
		ChartConfig: json.RawMessage(`{"type":"bar"}`),
	}

	got := RenderAnswer(payload)
	want := []entities.Artifact{
		entities.TextArtifact{HTML: "X"},
		entities.CitationArtifact{Snippets: []string{"s1"}},
		entities.ChartArtifact{Spec: json.RawMessage(`{"type":"bar"}`)},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("artifact sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderAnswer_Idempotent(t *testing.T) {
	payload := &entities.AnswerPayload{
		Answer:  "**a** *b*\nnext",
		Sources: []entities.Source{{Snippet: "s1"}, {}},
	}

	first := RenderAnswer(payload)
	second := RenderAnswer(payload)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("render is not idempotent (-first +second):\n%s", diff)
	}
}

func TestRenderAnswer_DefaultPlaceholder(t *testing.T) {
	got := RenderAnswer(&entities.AnswerPayload{Answer: "   "})

	if len(got) != 1 {
		t.Fatalf("expected only the text artifact, got %d artifacts", len(got))
	}
	text, ok := got[0].(entities.TextArtifact)
	if !ok {
		t.Fatalf("expected TextArtifact, got %T", got[0])
	}
	if text.HTML != DefaultAnswer {
		t.Errorf("expected default placeholder, got %q", text.HTML)
	}
}

func TestRenderAnswer_CitationsInOrderUndeduplicated(t *testing.T) {
	payload := &entities.AnswerPayload{
		Answer:  "ok",
		Sources: []entities.Source{{Snippet: "dup"}, {Snippet: "dup"}, {}},
	}

	got := RenderAnswer(payload)
	if len(got) != 2 {
		t.Fatalf("expected text + citations, got %d artifacts", len(got))
	}
	citations, ok := got[1].(entities.CitationArtifact)
	if !ok {
		t.Fatalf("expected CitationArtifact, got %T", got[1])
	}
	want := []string{"dup", "dup", "..."}
	if diff := cmp.Diff(want, citations.Snippets); diff != "" {
		t.Errorf("snippets mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderAnswer_NoChartWithoutVisualizationMode(t *testing.T) {
	payload := &entities.AnswerPayload{
		Answer:      "ok",
		ChartConfig: json.RawMessage(`{"type":"bar"}`),
	}

	for _, a := range RenderAnswer(payload) {
		if _, ok := a.(entities.ChartArtifact); ok {
			t.Error("chart artifact requires mode=visualization")
		}
	}
}

func TestRenderAnswer_NoChartWithoutSpec(t *testing.T) {
	payload := &entities.AnswerPayload{Answer: "ok", Mode: "visualization"}

	for _, a := range RenderAnswer(payload) {
		if _, ok := a.(entities.ChartArtifact); ok {
			t.Error("chart artifact requires a present specification")
		}
	}
}
