package tui

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"docchat/internal/domain/ports"
	"docchat/internal/domain/usecases"
)

const welcomeMarkdown = `# docchat

Chat with a document.

1. Type the path of a **.pdf** or **.txt** file below and press enter,
   or drop a file into the dropzone directory.
2. Press enter again to upload it.
3. Ask questions.
`

// toastLifetime is how long a transient notice stays on screen.
const toastLifetime = 3 * time.Second

// Options wires the core and its collaborators into the program.
type Options struct {
	Machine       *usecases.SessionMachine
	Manager       *usecases.ExchangeManager
	Charts        ports.ChartRenderer
	DropEvents    <-chan ports.FileEvent
	AskTimeout    time.Duration
	UploadTimeout time.Duration
	Logger        *zap.Logger
}

// Model is the Bubble Tea model hosting the conversation lifecycle core.
type Model struct {
	machine *usecases.SessionMachine
	manager *usecases.ExchangeManager
	charts  ports.ChartRenderer
	logger  *zap.Logger

	askTimeout    time.Duration
	uploadTimeout time.Duration
	dropEvents    <-chan ports.FileEvent

	textarea  textarea.Model
	pathInput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	styles    Styles
	welcome   string

	width, height int
	ready         bool
	busy          bool // an upload or exchange command is running
	toast         string
	confirmReset  bool
	quitting      bool
}

// New creates the program model.
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	ta := textarea.New()
	ta.Placeholder = "Ask about your document..."
	ta.CharLimit = 2000
	ta.SetHeight(2)
	ta.ShowLineNumbers = false
	ta.Focus()

	ti := textinput.New()
	ti.Placeholder = "/path/to/document.pdf"
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	styles := DefaultStyles()

	welcome := welcomeMarkdown
	if renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(76)); err == nil {
		if rendered, err := renderer.Render(welcomeMarkdown); err == nil {
			welcome = rendered
		}
	}

	return Model{
		machine:       opts.Machine,
		manager:       opts.Manager,
		charts:        opts.Charts,
		logger:        opts.Logger,
		askTimeout:    opts.AskTimeout,
		uploadTimeout: opts.UploadTimeout,
		dropEvents:    opts.DropEvents,
		textarea:      ta,
		pathInput:     ti,
		spinner:       sp,
		styles:        styles,
		welcome:       welcome,
	}
}

// Init starts the spinner and the dropzone listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink, m.spinner.Tick}
	if m.dropEvents != nil {
		cmds = append(cmds, waitForDrop(m.dropEvents))
	}
	return tea.Batch(cmds...)
}

// contentTypeFor maps a filename to the declared content type the gate
// checks. Unknown extensions return empty, leaving the decision to the
// suffix rule.
func contentTypeFor(name string) string {
	switch filepath.Ext(name) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	default:
		return ""
	}
}
