package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastMsg carries a transient notice into the program.
type ToastMsg struct {
	Text string
}

// ProgramNotifier implements ports.Notifier by forwarding notices into the
// running Bubble Tea program. Notices raised before Bind are dropped; the
// program does not exist yet to show them.
type ProgramNotifier struct {
	mu      sync.Mutex
	program *tea.Program
}

// NewProgramNotifier creates an unbound notifier.
func NewProgramNotifier() *ProgramNotifier {
	return &ProgramNotifier{}
}

// Bind attaches the running program.
func (n *ProgramNotifier) Bind(p *tea.Program) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.program = p
}

// Notify surfaces a transient notice.
func (n *ProgramNotifier) Notify(message string) {
	n.mu.Lock()
	p := n.program
	n.mu.Unlock()

	if p != nil {
		p.Send(ToastMsg{Text: message})
	}
}
