// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no
// knowledge of transport, storage, or presentation.
package entities

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Phase is the lifecycle stage of a document session.
type Phase int

const (
	PhaseIdle         Phase = iota // No file selected, landing screen
	PhaseFileSelected              // A validated file awaits upload
	PhaseUploading                 // Upload request in flight
	PhaseActive                    // Document uploaded, chat is live
)

// String returns the phase name for logs.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFileSelected:
		return "file_selected"
	case PhaseUploading:
		return "uploading"
	case PhaseActive:
		return "active"
	default:
		return "unknown"
	}
}

// PendingUpload is a locally selected, not-yet-uploaded candidate file.
// The binary content stays on disk; the uploader adapter reads it when
// building the upload request.
type PendingUpload struct {
	Name        string
	ContentType string
	Path        string
}

// UploadStats carries the backend's processing report for an upload.
type UploadStats struct {
	Chunks             int     `json:"chunks"`
	ProcessTimeSeconds float64 `json:"process_time_seconds"`
}

// UploadResult is the backend's response to a successful upload.
type UploadResult struct {
	Message    string      `json:"message"`
	DocumentID string      `json:"doc_id"`
	Filename   string      `json:"filename"`
	Stats      UploadStats `json:"stats"`
}

// DocumentSession is the active document context questions are asked against.
// Invariant: Phase == PhaseActive implies DocumentID is non-empty.
type DocumentSession struct {
	DocumentID  string
	DisplayName string
	Stats       UploadStats
	Phase       Phase
}

// Message roles.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Message is one conversation log entry: a role plus an ordered sequence
// of renderable artifacts.
type Message struct {
	ID        uuid.UUID
	Role      string
	Artifacts []Artifact
}

// NewMessage creates a Message with a fresh ID.
func NewMessage(role string, artifacts ...Artifact) Message {
	return Message{ID: uuid.New(), Role: role, Artifacts: artifacts}
}

// IsPlaceholder reports whether the message is the transient typing
// indicator awaiting an exchange resolution.
func (m Message) IsPlaceholder() bool {
	for _, a := range m.Artifacts {
		if _, ok := a.(PendingArtifact); ok {
			return true
		}
	}
	return false
}

// Artifact is one renderable unit within a message. It is a sealed variant:
// exactly the four types below implement it.
type Artifact interface {
	artifact()
}

// TextArtifact is a formatted text bubble. HTML holds an html-safe string
// produced by the renderer's markup passes.
type TextArtifact struct {
	HTML string
}

// CitationArtifact is an ordered list of source snippets, rendered in the
// order received and undeduplicated.
type CitationArtifact struct {
	Snippets []string
}

// ChartArtifact carries an opaque chart specification, interpreted by the
// charting collaborator. The core never validates its internal shape.
type ChartArtifact struct {
	Spec json.RawMessage
}

// PendingArtifact is the transient placeholder shown while an exchange is
// pending. It is removed on resolution and never persisted.
type PendingArtifact struct{}

func (TextArtifact) artifact()     {}
func (CitationArtifact) artifact() {}
func (ChartArtifact) artifact()    {}
func (PendingArtifact) artifact()  {}

// ExchangeState is the lifecycle of one question/answer round trip.
type ExchangeState int

const (
	ExchangePending ExchangeState = iota
	ExchangeResolved
	ExchangeFailed
)

// Exchange is the in-flight request/response unit. It is created on
// submission, resolves to exactly one terminal state, then is discarded.
type Exchange struct {
	Question   string
	DocumentID string
	State      ExchangeState
}

// Source is one cited snippet in an answer.
type Source struct {
	Snippet string `json:"snippet"`
}

// AnswerPayload is the answer service's response contract.
// Failed is set by the adapter when the backend reported an application
// level failure despite a readable response body.
type AnswerPayload struct {
	Answer      string          `json:"answer"`
	Sources     []Source        `json:"sources"`
	Mode        string          `json:"mode"`
	ChartConfig json.RawMessage `json:"chart_config"`
	Error       string          `json:"error"`
	Failed      bool            `json:"-"`
}
