package usecases

import (
	"context"
	"errors"
	"testing"

	"docchat/internal/domain/entities"
)

// mockUploader implements ports.DocumentUploader for testing.
type mockUploader struct {
	result *entities.UploadResult
	err    error
	calls  int
}

func (m *mockUploader) Upload(ctx context.Context, upload *entities.PendingUpload) (*entities.UploadResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &entities.UploadResult{DocumentID: "doc-1", Filename: upload.Name}, nil
}

// mockNotifier records transient notices.
type mockNotifier struct {
	notices []string
}

func (m *mockNotifier) Notify(message string) {
	m.notices = append(m.notices, message)
}

// mockTranscript records persisted messages.
type mockTranscript struct {
	appended []entities.Message
	cleared  int
}

func (m *mockTranscript) Append(ctx context.Context, msg entities.Message) error {
	m.appended = append(m.appended, msg)
	return nil
}

func (m *mockTranscript) Load(ctx context.Context) ([]entities.Message, error) {
	return m.appended, nil
}

func (m *mockTranscript) Clear(ctx context.Context) error {
	m.cleared++
	m.appended = nil
	return nil
}

func newTestMachine(uploader *mockUploader, notifier *mockNotifier) *SessionMachine {
	return NewSessionMachine(uploader, notifier, &mockTranscript{}, nil)
}

func TestSessionMachine_SelectValidFile(t *testing.T) {
	m := newTestMachine(&mockUploader{}, &mockNotifier{})

	if err := m.SelectFile("report.pdf", "application/pdf", "/tmp/report.pdf"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if m.Phase() != entities.PhaseFileSelected {
		t.Errorf("expected file_selected, got %s", m.Phase())
	}
	if !m.SubmissionEnabled() {
		t.Error("submission should be enabled with a valid candidate")
	}
}

func TestSessionMachine_RejectedSelection(t *testing.T) {
	notifier := &mockNotifier{}
	m := newTestMachine(&mockUploader{}, notifier)

	err := m.SelectFile("image.png", "image/png", "/tmp/image.png")

	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected gate rejection, got %v", err)
	}
	if m.Phase() != entities.PhaseIdle {
		t.Errorf("rejection must not change state, got %s", m.Phase())
	}
	if len(notifier.notices) != 1 || notifier.notices[0] != "unsupported file type" {
		t.Errorf("expected rejection notice, got %v", notifier.notices)
	}
}

func TestSessionMachine_RejectedSelectionPreservesValidPending(t *testing.T) {
	m := newTestMachine(&mockUploader{}, &mockNotifier{})

	if err := m.SelectFile("notes.txt", "text/plain", "/tmp/notes.txt"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	_ = m.SelectFile("image.png", "image/png", "/tmp/image.png")

	pending := m.PendingUpload()
	if pending == nil || pending.Name != "notes.txt" {
		t.Errorf("valid pending upload must survive a rejected selection, got %+v", pending)
	}
	if m.Phase() != entities.PhaseFileSelected {
		t.Errorf("expected file_selected, got %s", m.Phase())
	}
}

func TestSessionMachine_RemoveFile(t *testing.T) {
	m := newTestMachine(&mockUploader{}, &mockNotifier{})

	_ = m.SelectFile("notes.txt", "", "/tmp/notes.txt")
	m.RemoveFile()

	if m.Phase() != entities.PhaseIdle {
		t.Errorf("expected idle, got %s", m.Phase())
	}
	if m.PendingUpload() != nil {
		t.Error("pending upload should be discarded")
	}
	if m.SubmissionEnabled() {
		t.Error("submission should be disabled after removal")
	}
}

func TestSessionMachine_UploadSucceeded(t *testing.T) {
	uploader := &mockUploader{result: &entities.UploadResult{
		DocumentID: "doc-42",
		Filename:   "report.pdf",
		Stats:      entities.UploadStats{Chunks: 7, ProcessTimeSeconds: 1.5},
	}}
	m := newTestMachine(uploader, &mockNotifier{})
	_ = m.SelectFile("report.pdf", "application/pdf", "/tmp/report.pdf")

	if err := m.SubmitUpload(context.Background()); err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	session := m.Session()
	if session.Phase != entities.PhaseActive {
		t.Errorf("expected active, got %s", session.Phase)
	}
	if session.DocumentID != "doc-42" {
		t.Errorf("unexpected document id: %s", session.DocumentID)
	}
	if session.Stats.Chunks != 7 {
		t.Errorf("upload stats should be recorded, got %+v", session.Stats)
	}
	if m.PendingUpload() != nil {
		t.Error("pending upload should be promoted into the session")
	}
	if !m.SubmissionEnabled() {
		t.Error("submission should be enabled in active chat")
	}
}

func TestSessionMachine_UploadFailedPreservesPending(t *testing.T) {
	notifier := &mockNotifier{}
	uploader := &mockUploader{err: errors.New("too large")}
	m := newTestMachine(uploader, notifier)
	_ = m.SelectFile("big.pdf", "application/pdf", "/tmp/big.pdf")

	err := m.SubmitUpload(context.Background())

	if err == nil {
		t.Fatal("expected upload failure")
	}
	if m.Phase() != entities.PhaseFileSelected {
		t.Errorf("expected file_selected after failure, got %s", m.Phase())
	}
	pending := m.PendingUpload()
	if pending == nil || pending.Name != "big.pdf" {
		t.Errorf("pending upload must be preserved for retry, got %+v", pending)
	}
	if len(notifier.notices) != 1 || notifier.notices[0] != "too large" {
		t.Errorf("expected failure notice 'too large', got %v", notifier.notices)
	}
	if !m.SubmissionEnabled() {
		t.Error("submission control must be re-enabled after failure")
	}
}

func TestSessionMachine_UploadRequiresSelection(t *testing.T) {
	m := newTestMachine(&mockUploader{}, &mockNotifier{})

	if err := m.SubmitUpload(context.Background()); !errors.Is(err, ErrNotReady) {
		t.Errorf("expected ErrNotReady, got %v", err)
	}
}

func TestSessionMachine_NewChatResetsEverything(t *testing.T) {
	transcript := &mockTranscript{}
	m := NewSessionMachine(&mockUploader{}, &mockNotifier{}, transcript, nil)
	_ = m.SelectFile("report.pdf", "application/pdf", "/tmp/report.pdf")
	_ = m.SubmitUpload(context.Background())
	m.AppendMessage(context.Background(), entities.NewMessage(entities.RoleUser, entities.TextArtifact{HTML: "hi"}))

	m.NewChat(context.Background())

	if m.Phase() != entities.PhaseIdle {
		t.Errorf("expected idle after reset, got %s", m.Phase())
	}
	if len(m.Messages()) != 0 {
		t.Error("conversation log should be discarded")
	}
	if m.Session().DocumentID != "" {
		t.Error("document session should be discarded")
	}
	if transcript.cleared != 1 {
		t.Errorf("transcript should be cleared once, got %d", transcript.cleared)
	}
}

func TestSessionMachine_ExchangeSlot(t *testing.T) {
	m := newTestMachine(&mockUploader{}, &mockNotifier{})

	if _, ok := m.TryBeginExchange(); ok {
		t.Fatal("exchange must be refused outside active chat")
	}

	_ = m.SelectFile("report.pdf", "application/pdf", "/tmp/report.pdf")
	_ = m.SubmitUpload(context.Background())

	docID, ok := m.TryBeginExchange()
	if !ok || docID != "doc-1" {
		t.Fatalf("expected exchange slot with doc-1, got %q ok=%v", docID, ok)
	}
	if m.SubmissionEnabled() {
		t.Error("submission must be disabled while an exchange is pending")
	}
	if _, ok := m.TryBeginExchange(); ok {
		t.Error("second exchange must be refused while one is pending")
	}

	m.EndExchange()
	if !m.SubmissionEnabled() {
		t.Error("submission must be re-enabled after the exchange resolves")
	}
}

func TestSessionMachine_PlaceholderNotPersisted(t *testing.T) {
	transcript := &mockTranscript{}
	m := NewSessionMachine(&mockUploader{}, &mockNotifier{}, transcript, nil)

	placeholder := entities.NewMessage(entities.RoleBot, entities.PendingArtifact{})
	m.AppendMessage(context.Background(), placeholder)
	m.AppendMessage(context.Background(), entities.NewMessage(entities.RoleBot, entities.TextArtifact{HTML: "done"}))

	if len(transcript.appended) != 1 {
		t.Fatalf("only terminal messages persist, got %d", len(transcript.appended))
	}
	if transcript.appended[0].IsPlaceholder() {
		t.Error("placeholder leaked into the transcript")
	}
}

func TestSessionMachine_RemoveMessage(t *testing.T) {
	m := newTestMachine(&mockUploader{}, &mockNotifier{})

	first := entities.NewMessage(entities.RoleUser, entities.TextArtifact{HTML: "a"})
	second := entities.NewMessage(entities.RoleBot, entities.PendingArtifact{})
	m.AppendMessage(context.Background(), first)
	m.AppendMessage(context.Background(), second)

	m.RemoveMessage(second.ID)

	log := m.Messages()
	if len(log) != 1 || log[0].ID != first.ID {
		t.Errorf("expected only the first message to remain, got %d entries", len(log))
	}
}
