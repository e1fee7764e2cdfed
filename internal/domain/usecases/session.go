// Package usecases - session.go owns the document session lifecycle:
// Idle -> FileSelected -> Uploading -> Active, plus the destructive reset.
package usecases

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docchat/internal/domain/entities"
	"docchat/internal/domain/ports"
)

// ErrNotReady is returned when a transition is requested from a state that
// does not permit it.
var ErrNotReady = errors.New("not ready")

// SessionMachine is the session state machine. It exclusively owns the
// document session, the pending upload, and the conversation log. All
// methods are safe for use from the UI event loop and its command
// goroutines, but policy keeps operations single-in-flight: a second upload
// or exchange is refused, never queued.
type SessionMachine struct {
	mu         sync.Mutex
	uploader   ports.DocumentUploader
	notifier   ports.Notifier
	transcript ports.TranscriptStore
	logger     *zap.Logger

	session  entities.DocumentSession
	pending  *entities.PendingUpload
	log      []entities.Message
	exchange bool // an exchange is pending
}

// NewSessionMachine creates a SessionMachine with injected collaborators.
func NewSessionMachine(
	uploader ports.DocumentUploader,
	notifier ports.Notifier,
	transcript ports.TranscriptStore,
	logger *zap.Logger,
) *SessionMachine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionMachine{
		uploader:   uploader,
		notifier:   notifier,
		transcript: transcript,
		logger:     logger,
	}
}

// Phase returns the current session phase.
func (m *SessionMachine) Phase() entities.Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Phase
}

// Session returns a copy of the document session.
func (m *SessionMachine) Session() entities.DocumentSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// PendingUpload returns the current candidate file, or nil.
func (m *SessionMachine) PendingUpload() *entities.PendingUpload {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return nil
	}
	copied := *m.pending
	return &copied
}

// SubmissionEnabled reports whether the submission control should be live:
// a validated candidate awaits upload, or the chat is active with no
// exchange pending.
func (m *SessionMachine) SubmissionEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.session.Phase {
	case entities.PhaseFileSelected:
		return m.pending != nil
	case entities.PhaseActive:
		return !m.exchange
	default:
		return false
	}
}

// SelectFile runs the candidate through the upload gate. On acceptance the
// candidate becomes the pending upload (replacing a previous valid one).
// On rejection the notice surfaces the reason and the current selection is
// preserved untouched. Selecting while uploading or chatting is a no-op.
func (m *SessionMachine) SelectFile(name, contentType, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.Phase != entities.PhaseIdle && m.session.Phase != entities.PhaseFileSelected {
		m.logger.Debug("file selection ignored", zap.String("phase", m.session.Phase.String()))
		return nil
	}

	if err := ValidateUpload(name, contentType); err != nil {
		m.logger.Info("candidate rejected", zap.String("name", name), zap.Error(err))
		if m.notifier != nil {
			m.notifier.Notify(err.Error())
		}
		// A rejected candidate must not replace a valid pending upload.
		return err
	}

	m.pending = &entities.PendingUpload{Name: name, ContentType: contentType, Path: path}
	m.session.Phase = entities.PhaseFileSelected
	m.logger.Info("file selected", zap.String("name", name))
	return nil
}

// RemoveFile discards the pending upload on explicit user removal.
func (m *SessionMachine) RemoveFile() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.Phase != entities.PhaseFileSelected {
		return
	}
	m.pending = nil
	m.session.Phase = entities.PhaseIdle
}

// SubmitUpload hands the pending upload to the transfer collaborator.
// On success the session becomes active with the assigned document id; on
// failure the machine returns to FileSelected with the pending upload
// preserved so the user may retry without reselecting.
func (m *SessionMachine) SubmitUpload(ctx context.Context) error {
	m.mu.Lock()
	if m.session.Phase != entities.PhaseFileSelected || m.pending == nil {
		m.mu.Unlock()
		return fmt.Errorf("submit upload: %w", ErrNotReady)
	}
	upload := *m.pending
	m.session.Phase = entities.PhaseUploading
	m.mu.Unlock()

	result, err := m.uploader.Upload(ctx, &upload)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.session.Phase = entities.PhaseFileSelected
		m.logger.Warn("upload failed", zap.String("name", upload.Name), zap.Error(err))
		if m.notifier != nil {
			m.notifier.Notify(err.Error())
		}
		return err
	}

	name := result.Filename
	if name == "" {
		name = upload.Name
	}
	m.session = entities.DocumentSession{
		DocumentID:  result.DocumentID,
		DisplayName: name,
		Stats:       result.Stats,
		Phase:       entities.PhaseActive,
	}
	m.pending = nil
	m.logger.Info("document active",
		zap.String("doc_id", result.DocumentID),
		zap.Int("chunks", result.Stats.Chunks))
	return nil
}

// NewChat is the destructive reset: it discards the document session, the
// pending upload, and the conversation log. The caller is responsible for
// user confirmation before invoking it.
func (m *SessionMachine) NewChat(ctx context.Context) {
	m.mu.Lock()
	m.session = entities.DocumentSession{}
	m.pending = nil
	m.log = nil
	m.exchange = false
	m.mu.Unlock()

	if m.transcript != nil {
		if err := m.transcript.Clear(ctx); err != nil {
			m.logger.Warn("clearing transcript", zap.Error(err))
		}
	}
	m.logger.Info("session reset")
}

// TryBeginExchange reserves the single exchange slot. It reports the active
// document id and true when the chat is live and no exchange is pending;
// otherwise false, and the caller must drop the submission.
func (m *SessionMachine) TryBeginExchange() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.Phase != entities.PhaseActive || m.exchange {
		return "", false
	}
	m.exchange = true
	return m.session.DocumentID, true
}

// EndExchange releases the exchange slot, re-enabling submission.
func (m *SessionMachine) EndExchange() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exchange = false
}

// AppendMessage appends to the conversation log. Terminal messages are also
// persisted to the transcript; placeholders are transient and never stored.
func (m *SessionMachine) AppendMessage(ctx context.Context, msg entities.Message) {
	m.mu.Lock()
	m.log = append(m.log, msg)
	m.mu.Unlock()

	if m.transcript != nil && !msg.IsPlaceholder() {
		if err := m.transcript.Append(ctx, msg); err != nil {
			m.logger.Warn("persisting message", zap.Error(err))
		}
	}
}

// RemoveMessage deletes one message from the log by id. Used only to retire
// the pending placeholder before its terminal message is appended.
func (m *SessionMachine) RemoveMessage(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, msg := range m.log {
		if msg.ID == id {
			m.log = append(m.log[:i], m.log[i+1:]...)
			return
		}
	}
}

// Messages returns a snapshot of the conversation log.
func (m *SessionMachine) Messages() []entities.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entities.Message, len(m.log))
	copy(out, m.log)
	return out
}
