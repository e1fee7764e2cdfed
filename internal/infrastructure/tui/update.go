package tui

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"docchat/internal/domain/entities"
	"docchat/internal/domain/ports"
)

// Internal messages.
type (
	toastClearMsg struct{}
	uploadDoneMsg struct{ err error }
	askDoneMsg    struct{}
	dropMsg       struct{ path string }
	dropClosedMsg struct{}
)

// waitForDrop blocks on the dropzone channel and forwards the next event.
func waitForDrop(events <-chan ports.FileEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return dropClosedMsg{}
		}
		return dropMsg{path: event.Path}
	}
}

// clearToastAfter dismisses the toast when its lifetime elapses.
func clearToastAfter() tea.Cmd {
	return tea.Tick(toastLifetime, func(time.Time) tea.Msg {
		return toastClearMsg{}
	})
}

// uploadCmd runs the upload transition off the event loop.
func (m Model) uploadCmd() tea.Cmd {
	machine, timeout := m.machine, m.uploadTimeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return uploadDoneMsg{err: machine.SubmitUpload(ctx)}
	}
}

// askCmd runs one exchange off the event loop. The manager enforces the
// single-in-flight policy itself; this command just hosts the blocking call.
func (m Model) askCmd(question string) tea.Cmd {
	manager, timeout := m.manager, m.askTimeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		manager.Submit(ctx, question)
		return askDoneMsg{}
	}
}

// Update is the event loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.textarea.SetWidth(msg.Width - 2)
		m.pathInput.Width = msg.Width - 6
		chromeHeight := 8
		if !m.ready {
			m.viewport = viewportSized(msg.Width-2, msg.Height-chromeHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = msg.Height - chromeHeight
		}
		m.refreshHistory()
		return m, nil

	case ToastMsg:
		m.toast = msg.Text
		return m, clearToastAfter()

	case toastClearMsg:
		m.toast = ""
		return m, nil

	case dropMsg:
		name := filepath.Base(msg.path)
		if err := m.machine.SelectFile(name, contentTypeFor(name), msg.path); err != nil {
			m.logger.Debug("dropped file rejected", zap.String("path", msg.path))
		}
		return m, waitForDrop(m.dropEvents)

	case dropClosedMsg:
		return m, nil

	case uploadDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.logger.Debug("upload did not complete", zap.Error(msg.err))
		}
		m.refreshHistory()
		return m, nil

	case askDoneMsg:
		m.busy = false
		m.refreshHistory()
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.busy {
			// Keep the history live while a command is in flight so the
			// optimistic user message and placeholder show up immediately.
			m.refreshHistory()
			m.viewport.GotoBottom()
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.routeToComponents(msg)
}

// handleKey dispatches key events to named state machine transitions.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmReset {
		switch msg.String() {
		case "y", "Y":
			m.confirmReset = false
			m.machine.NewChat(context.Background())
			m.textarea.Reset()
			m.pathInput.Reset()
			m.refreshHistory()
			return m, nil
		default:
			m.confirmReset = false
			return m, nil
		}
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyCtrlN:
		if m.machine.Phase() == entities.PhaseActive {
			m.confirmReset = true
		}
		return m, nil

	case tea.KeyCtrlD:
		m.machine.RemoveFile()
		return m, nil

	case tea.KeyEnter:
		return m.handleEnter()
	}

	return m.routeToComponents(msg)
}

// handleEnter is phase dependent: select, upload, or submit.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.machine.Phase() {
	case entities.PhaseIdle:
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			return m, nil
		}
		name := filepath.Base(path)
		if err := m.machine.SelectFile(name, contentTypeFor(name), path); err == nil {
			m.pathInput.Reset()
		}
		return m, nil

	case entities.PhaseFileSelected:
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, tea.Batch(m.uploadCmd(), m.spinner.Tick)

	case entities.PhaseActive:
		if m.busy || !m.machine.SubmissionEnabled() {
			// Submission affordance disabled while an exchange is pending.
			return m, nil
		}
		question := m.textarea.Value()
		if strings.TrimSpace(question) == "" {
			return m, nil
		}
		m.textarea.Reset()
		m.busy = true
		return m, tea.Batch(m.askCmd(question), m.spinner.Tick)
	}

	return m, nil
}

// routeToComponents forwards everything else to the focused widgets.
func (m Model) routeToComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch m.machine.Phase() {
	case entities.PhaseIdle:
		m.pathInput, cmd = m.pathInput.Update(msg)
		cmds = append(cmds, cmd)
	case entities.PhaseActive:
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
