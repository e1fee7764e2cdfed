// Package transcript provides conversation transcript store adapters.
// Clean Architecture: Adapters implementing ports.TranscriptStore.
package transcript

import (
	"encoding/json"
	"fmt"

	"docchat/internal/domain/entities"
)

// artifactRecord is the storage shape of one artifact. Kind tags the
// variant; only the matching field is populated.
type artifactRecord struct {
	Kind     string          `json:"kind"`
	HTML     string          `json:"html,omitempty"`
	Snippets []string        `json:"snippets,omitempty"`
	Spec     json.RawMessage `json:"spec,omitempty"`
}

const (
	kindText      = "text"
	kindCitations = "citations"
	kindChart     = "chart"
)

// encodeArtifacts serializes a message's artifacts for storage.
// Placeholders are transient and must never reach a store; encountering one
// is a programming error.
func encodeArtifacts(artifacts []entities.Artifact) ([]byte, error) {
	records := make([]artifactRecord, 0, len(artifacts))
	for _, a := range artifacts {
		switch v := a.(type) {
		case entities.TextArtifact:
			records = append(records, artifactRecord{Kind: kindText, HTML: v.HTML})
		case entities.CitationArtifact:
			records = append(records, artifactRecord{Kind: kindCitations, Snippets: v.Snippets})
		case entities.ChartArtifact:
			records = append(records, artifactRecord{Kind: kindChart, Spec: v.Spec})
		default:
			return nil, fmt.Errorf("artifact kind %T is not persistable", a)
		}
	}
	return json.Marshal(records)
}

// decodeArtifacts restores a stored artifact sequence. Unknown kinds are
// skipped so older transcripts stay readable.
func decodeArtifacts(raw []byte) ([]entities.Artifact, error) {
	var records []artifactRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decoding artifacts: %w", err)
	}

	artifacts := make([]entities.Artifact, 0, len(records))
	for _, r := range records {
		switch r.Kind {
		case kindText:
			artifacts = append(artifacts, entities.TextArtifact{HTML: r.HTML})
		case kindCitations:
			artifacts = append(artifacts, entities.CitationArtifact{Snippets: r.Snippets})
		case kindChart:
			artifacts = append(artifacts, entities.ChartArtifact{Spec: r.Spec})
		}
	}
	return artifacts, nil
}
