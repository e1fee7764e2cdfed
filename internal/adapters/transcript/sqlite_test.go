package transcript

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"docchat/internal/domain/entities"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "transcript.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_AppendAndLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := entities.NewMessage(entities.RoleUser, entities.TextArtifact{HTML: "hello"})
	bot := entities.NewMessage(entities.RoleBot,
		entities.TextArtifact{HTML: "<strong>hi</strong>"},
		entities.CitationArtifact{Snippets: []string{"s1", "s2"}},
		entities.ChartArtifact{Spec: json.RawMessage(`{"type":"bar"}`)},
	)

	if err := store.Append(ctx, user); err != nil {
		t.Fatalf("append user: %v", err)
	}
	if err := store.Append(ctx, bot); err != nil {
		t.Fatalf("append bot: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(loaded))
	}
	if loaded[0].ID != user.ID || loaded[0].Role != entities.RoleUser {
		t.Errorf("first message mismatch: %+v", loaded[0])
	}
	if len(loaded[1].Artifacts) != 3 {
		t.Fatalf("expected 3 artifacts, got %d", len(loaded[1].Artifacts))
	}
	citations, ok := loaded[1].Artifacts[1].(entities.CitationArtifact)
	if !ok || len(citations.Snippets) != 2 {
		t.Errorf("citations not restored: %+v", loaded[1].Artifacts[1])
	}
	chart, ok := loaded[1].Artifacts[2].(entities.ChartArtifact)
	if !ok || string(chart.Spec) != `{"type":"bar"}` {
		t.Errorf("chart spec not restored verbatim: %+v", loaded[1].Artifacts[2])
	}
}

func TestSQLiteStore_Clear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_ = store.Append(ctx, entities.NewMessage(entities.RoleUser, entities.TextArtifact{HTML: "x"}))
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty transcript, got %d messages", len(loaded))
	}
}

func TestSQLiteStore_RejectsPlaceholder(t *testing.T) {
	store := newTestStore(t)

	err := store.Append(context.Background(),
		entities.NewMessage(entities.RoleBot, entities.PendingArtifact{}))
	if err == nil {
		t.Error("placeholder messages must not be persistable")
	}
}

func TestInMemoryStore_RoundTrip(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	msg := entities.NewMessage(entities.RoleUser, entities.TextArtifact{HTML: "hello"})
	if err := store.Append(ctx, msg); err != nil {
		t.Fatalf("append: %v", err)
	}

	loaded, _ := store.Load(ctx)
	if len(loaded) != 1 || loaded[0].ID != msg.ID {
		t.Errorf("unexpected transcript: %+v", loaded)
	}

	_ = store.Clear(ctx)
	loaded, _ = store.Load(ctx)
	if len(loaded) != 0 {
		t.Error("clear should empty the transcript")
	}
}
