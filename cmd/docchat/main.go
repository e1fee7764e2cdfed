// docchat is a terminal client for a document question-answering backend:
// upload a PDF or text file, then chat with it.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docchat/internal/adapters/backend"
	"docchat/internal/adapters/dropzone"
	"docchat/internal/adapters/transcript"
	"docchat/internal/config"
	"docchat/internal/domain/ports"
	"docchat/internal/domain/usecases"
	"docchat/internal/infrastructure/tui"
	"docchat/internal/pkg/logger"
)

var version = "dev"

var (
	configPath  string
	serverURL   string
	dropzoneDir string
	logFile     string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Chat with a document from your terminal",
	Long: `docchat uploads a local PDF or text file to a document Q&A backend
and opens an interactive chat against it. Answers may carry cited source
snippets and charts, rendered inline.`,
	RunE: runChat,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.Flags().StringVarP(&serverURL, "server", "s", "", "backend base URL (overrides config)")
	rootCmd.Flags().StringVarP(&dropzoneDir, "dropzone", "d", "", "directory watched for dropped files (overrides config)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "log file path (overrides config)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(versionCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if serverURL != "" {
		cfg.Backend.BaseURL = serverURL
	}
	if dropzoneDir != "" {
		cfg.UI.DropzoneDir = dropzoneDir
	}
	if logFile != "" {
		cfg.Logging.FilePath = logFile
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.FilePath)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	client := backend.NewClient(cfg.Backend.BaseURL, log.Named("backend"))

	var store ports.TranscriptStore
	if cfg.Storage.TranscriptPath != "" {
		sqliteStore, err := transcript.NewSQLiteStore(cfg.Storage.TranscriptPath)
		if err != nil {
			return fmt.Errorf("opening transcript store: %w", err)
		}
		defer sqliteStore.Close()
		store = sqliteStore
	} else {
		store = transcript.NewInMemoryStore()
	}

	notifier := tui.NewProgramNotifier()
	machine := usecases.NewSessionMachine(client, notifier, store, log.Named("session"))
	manager := usecases.NewExchangeManager(client, machine, log.Named("exchange"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var dropEvents <-chan ports.FileEvent
	if cfg.UI.DropzoneDir != "" {
		watcher, err := dropzone.NewFSNotifyWatcher(nil)
		if err != nil {
			return fmt.Errorf("creating dropzone watcher: %w", err)
		}
		defer watcher.Stop()

		dropEvents, err = watcher.Watch(ctx, cfg.UI.DropzoneDir)
		if err != nil {
			return fmt.Errorf("watching dropzone %s: %w", cfg.UI.DropzoneDir, err)
		}
		log.Info("dropzone active", zap.String("dir", cfg.UI.DropzoneDir))
	}

	model := tui.New(tui.Options{
		Machine:       machine,
		Manager:       manager,
		Charts:        tui.NewBarChartRenderer(tui.DefaultStyles(), 30),
		DropEvents:    dropEvents,
		AskTimeout:    cfg.Backend.AskTimeout,
		UploadTimeout: cfg.Backend.UploadTimeout,
		Logger:        log.Named("tui"),
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	notifier.Bind(program)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
