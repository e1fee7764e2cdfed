// Package usecases - exchange.go drives one question/answer round trip:
// optimistic user message, pending placeholder, single in-flight request,
// and the three resolution branches.
package usecases

import (
	"context"
	"html"
	"strings"

	"go.uber.org/zap"

	"docchat/internal/domain/entities"
	"docchat/internal/domain/ports"
)

// connectionErrorPrefix marks transport failures distinctly from answers.
const connectionErrorPrefix = "Connection error: "

// genericFailure is the last resort when a failed response names no reason.
const genericFailure = "Something went wrong. Please try again."

// ExchangeManager owns the current exchange. At most one may be pending at
// a time; a duplicate Submit while one is pending is dropped, not queued.
type ExchangeManager struct {
	svc     ports.AnswerService
	machine *SessionMachine
	logger  *zap.Logger
}

// NewExchangeManager creates an ExchangeManager with injected dependencies.
func NewExchangeManager(svc ports.AnswerService, machine *SessionMachine, logger *zap.Logger) *ExchangeManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExchangeManager{svc: svc, machine: machine, logger: logger}
}

// Submit runs one exchange to completion. Empty or whitespace-only input is
// rejected silently with no side effect. When the session is not active or
// another exchange is pending the call is a no-op: the UI disables the
// affordance to make that the common path, but the guard here makes a stray
// duplicate call safe. The call blocks until the exchange resolves; callers
// run it off the event loop.
func (em *ExchangeManager) Submit(ctx context.Context, question string) {
	q := strings.TrimSpace(question)
	if q == "" {
		return
	}

	docID, ok := em.machine.TryBeginExchange()
	if !ok {
		em.logger.Debug("submission dropped", zap.String("question", q))
		return
	}
	// Exactly once per exchange, on every branch.
	defer em.machine.EndExchange()

	exchange := entities.Exchange{Question: q, DocumentID: docID, State: entities.ExchangePending}

	// Optimistic: the user message lands before any network activity.
	em.machine.AppendMessage(ctx, entities.NewMessage(
		entities.RoleUser,
		entities.TextArtifact{HTML: html.EscapeString(q)},
	))

	placeholder := entities.NewMessage(entities.RoleBot, entities.PendingArtifact{})
	em.machine.AppendMessage(ctx, placeholder)

	payload, err := em.svc.Ask(ctx, q, docID)

	// The placeholder is always retired before the terminal message lands.
	em.machine.RemoveMessage(placeholder.ID)

	var terminal entities.Message
	switch {
	case err != nil:
		exchange.State = entities.ExchangeFailed
		em.logger.Warn("exchange transport failure", zap.Error(err))
		terminal = entities.NewMessage(entities.RoleBot, entities.TextArtifact{
			HTML: html.EscapeString(connectionErrorPrefix + err.Error()),
		})

	case payload.Failed:
		exchange.State = entities.ExchangeFailed
		text := failureText(payload)
		em.logger.Warn("exchange application failure", zap.String("reason", text))
		terminal = entities.NewMessage(entities.RoleBot, entities.TextArtifact{
			HTML: html.EscapeString(text),
		})

	default:
		exchange.State = entities.ExchangeResolved
		terminal = entities.NewMessage(entities.RoleBot, RenderAnswer(payload)...)
	}

	em.machine.AppendMessage(ctx, terminal)
	em.logger.Debug("exchange resolved",
		zap.String("doc_id", exchange.DocumentID),
		zap.Int("state", int(exchange.State)))
}

// failureText picks the human-readable reason from a failed payload:
// the error field first, then the answer field, then a generic message.
func failureText(payload *entities.AnswerPayload) string {
	if payload.Error != "" {
		return payload.Error
	}
	if payload.Answer != "" {
		return payload.Answer
	}
	return genericFailure
}
