package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"docchat/internal/domain/entities"
)

func viewportSized(width, height int) viewport.Model {
	if width < 10 {
		width = 10
	}
	if height < 3 {
		height = 3
	}
	return viewport.New(width, height)
}

// refreshHistory re-renders the conversation log into the viewport.
func (m *Model) refreshHistory() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderHistory())
}

// renderHistory turns the conversation log into terminal text, artifact by
// artifact.
func (m *Model) renderHistory() string {
	var sb strings.Builder

	for _, msg := range m.machine.Messages() {
		switch msg.Role {
		case entities.RoleUser:
			sb.WriteString(m.styles.UserLabel.Render("You") + "\n")
		default:
			sb.WriteString(m.styles.BotLabel.Render("docchat") + "\n")
		}
		for _, artifact := range msg.Artifacts {
			sb.WriteString(m.renderArtifact(artifact))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderArtifact draws one artifact. A chart the collaborator rejects is
// replaced in place by an error indicator; sibling artifacts are untouched.
func (m *Model) renderArtifact(artifact entities.Artifact) string {
	switch a := artifact.(type) {
	case entities.TextArtifact:
		return m.styles.renderHTML(a.HTML) + "\n"

	case entities.CitationArtifact:
		var sb strings.Builder
		sb.WriteString(m.styles.CitationBar.Render("Sources") + "\n")
		for i, snippet := range a.Snippets {
			line := fmt.Sprintf("[%d] %s", i+1, snippet)
			sb.WriteString(m.styles.Citation.Render(line) + "\n")
		}
		return sb.String()

	case entities.ChartArtifact:
		rendered, err := m.charts.RenderChart(a.Spec)
		if err != nil {
			return m.styles.Error.Render("[chart unavailable: "+err.Error()+"]") + "\n"
		}
		return rendered + "\n"

	case entities.PendingArtifact:
		return m.styles.Pending.Render(m.spinner.View()+" thinking...") + "\n"

	default:
		return ""
	}
}

// View renders the whole screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.machine.Phase() {
	case entities.PhaseActive:
		body = m.chatView()
	default:
		body = m.landingView()
	}

	if m.toast != "" {
		body += "\n" + m.styles.Toast.Render(m.toast)
	}
	if m.confirmReset {
		body += "\n" + m.styles.Error.Render("Start a new chat? This discards the conversation. (y/N)")
	}
	return body
}

// landingView covers Idle, FileSelected, and Uploading.
func (m Model) landingView() string {
	var sb strings.Builder
	sb.WriteString(m.welcome)
	sb.WriteString("\n")

	switch m.machine.Phase() {
	case entities.PhaseIdle:
		sb.WriteString(m.pathInput.View() + "\n\n")
		sb.WriteString(m.styles.Help.Render("enter: select file · ctrl+c: quit"))

	case entities.PhaseFileSelected:
		if pending := m.machine.PendingUpload(); pending != nil {
			sb.WriteString(m.styles.FileCard.Render(pending.Name) + "\n\n")
		}
		sb.WriteString(m.styles.Help.Render("enter: upload · ctrl+d: remove file · ctrl+c: quit"))

	case entities.PhaseUploading:
		if pending := m.machine.PendingUpload(); pending != nil {
			sb.WriteString(m.styles.FileCard.Render(pending.Name) + "\n\n")
		}
		sb.WriteString(m.styles.Pending.Render(m.spinner.View() + " uploading..."))
	}

	return sb.String()
}

// chatView is the active conversation screen.
func (m Model) chatView() string {
	session := m.machine.Session()
	header := m.styles.Header.Render(fmt.Sprintf("%s · %d chunks", session.DisplayName, session.Stats.Chunks))

	status := m.styles.Help.Render("enter: send · ctrl+n: new chat · ctrl+c: quit")
	if m.busy || !m.machine.SubmissionEnabled() {
		status = m.styles.Pending.Render(m.spinner.View() + " waiting for answer...")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		m.textarea.View(),
		status,
	)
}
