package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/dojo/internal/adapter"
	"github.com/mmcdole/dojo/internal/content"
	"github.com/mmcdole/dojo/internal/domain"
	"github.com/mmcdole/dojo/internal/service"
	"github.com/mmcdole/dojo/internal/store"
	"github.com/mmcdole/dojo/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

type options struct {
	configFile string
	openPath   string
	status     bool
}

func main() {
	var opts options
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&opts.configFile, "config", "", "path to config file")
	flag.StringVar(&opts.openPath, "open", "", "page to open on start (e.g. /nmap)")
	flag.BoolVar(&opts.status, "status", false, "print training progress and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("dojo %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	// Load configuration
	var (
		cfg *adapter.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = adapter.LoadConfigFile(opts.configFile)
	} else {
		cfg, err = adapter.LoadConfig()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting dojo", "version", Version)

	lib, err := loadLibrary(cfg.Content)
	if err != nil {
		return err
	}

	progressStore, err := store.NewLocalStore(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open progress store: %w", err)
	}
	defer progressStore.Close()

	progressSvc := service.NewProgressService(progressStore, domain.DefaultCurriculum, logger)

	if opts.status {
		styled := term.IsTerminal(int(os.Stdout.Fd()))
		return writeStatus(os.Stdout, progressSvc.Summary(), progressSvc.StrayRecords(), styled)
	}

	start := cfg.UI.StartPage
	if opts.openPath != "" {
		start = opts.openPath
	}
	if _, err := lib.Page(start); err != nil {
		if errors.Is(err, domain.ErrPageNotFound) {
			if suggestions := lib.Suggest(start); len(suggestions) > 0 {
				return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(suggestions, ", "))
			}
		}
		return err
	}

	model := tui.NewModel(tui.Options{
		Library:      lib,
		Progress:     progressSvc,
		Store:        progressStore,
		Scheduler:    adapter.NewTimerScheduler(),
		StartPage:    start,
		ShowProgress: cfg.UI.ShowProgress,
		Logger:       logger,
	})

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// loadLibrary returns the configured lesson pages, or the built-in set
func loadLibrary(cfg adapter.ContentConfig) (*content.Library, error) {
	if cfg.Dir == "" {
		return content.Builtin()
	}
	lib, err := content.Load(os.DirFS(cfg.Dir))
	if err != nil {
		return nil, fmt.Errorf("failed to load lessons from %s: %w", cfg.Dir, err)
	}
	return lib, nil
}
