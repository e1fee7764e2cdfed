// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these
// abstractions, not concrete implementations. Adapters implement them.
package ports

import (
	"context"
	"encoding/json"

	"docchat/internal/domain/entities"
)

// DocumentUploader transfers a selected file to the backend.
// Any non-success transport status is an error regardless of body content;
// the returned error text is the human-readable reason surfaced to the user.
type DocumentUploader interface {
	Upload(ctx context.Context, upload *entities.PendingUpload) (*entities.UploadResult, error)
}

// AnswerService asks one question against a document.
// A transport failure or unreadable body returns an error. An application
// level failure (backend reports a handled error) returns a payload with
// Failed set, so the caller can run the error-text fallback chain.
type AnswerService interface {
	Ask(ctx context.Context, question, documentID string) (*entities.AnswerPayload, error)
}

// Notifier surfaces a transient, auto-dismissing notice. Not part of the
// conversation log; used for validation and connection errors.
type Notifier interface {
	Notify(message string)
}

// ChartRenderer draws an opaque chart specification. A rendering failure is
// localized to the chart cell and never fails the surrounding message.
type ChartRenderer interface {
	RenderChart(spec json.RawMessage) (string, error)
}

// TranscriptStore persists the conversation log for the active session.
// Placeholder messages are never stored.
type TranscriptStore interface {
	// Append stores one message at the end of the transcript.
	Append(ctx context.Context, msg entities.Message) error

	// Load returns all stored messages in append order.
	Load(ctx context.Context) ([]entities.Message, error)

	// Clear removes the whole transcript.
	Clear(ctx context.Context) error
}

// FileEvent is a candidate file appearing in the dropzone directory.
type FileEvent struct {
	Path string
}

// DropzoneWatcher monitors a directory for dropped candidate files.
// The terminal-side analog of drag-and-drop: events feed file selection.
type DropzoneWatcher interface {
	// Watch starts monitoring the directory and emits events.
	Watch(ctx context.Context, dir string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}
