package ui

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/pinpoint/internal/executor"
	"github.com/gubarz/pinpoint/internal/logger"
	"github.com/gubarz/pinpoint/internal/parser"
	"github.com/gubarz/pinpoint/internal/watcher"
)

// Options configures an interactive presentation
type Options struct {
	// Path is the presentation file; empty when Text is a built-in deck
	Path string
	Text string

	Fullscreen bool
	Watcher    *watcher.Watcher

	Defaults *parser.Point
	Runner   executor.ShellRunner
	Log      *logger.Logger
}

// ============================================================================
// Run TUI
// ============================================================================

// getTTY returns file handles for TUI input/output
// Uses /dev/tty to bypass shell pipes and command substitution
func getTTY() (in *os.File, out *os.File, cleanup func()) {
	var closers []func()

	// If stdout is not a terminal (piped or captured by $()), use /dev/tty
	if fileInfo, _ := os.Stdout.Stat(); (fileInfo.Mode() & os.ModeCharDevice) == 0 {
		out, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			out = os.Stderr // Last resort fallback
		} else {
			closers = append(closers, func() { out.Close() })
		}

		in, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
		if err != nil {
			in = os.Stdin
		} else {
			closers = append(closers, func() { in.Close() })
		}

		// Tell lipgloss to use the TTY for color detection
		lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(out))

		return in, out, func() {
			for _, c := range closers {
				c()
			}
		}
	}

	return os.Stdin, os.Stdout, func() {}
}

// Run parses the presentation and shows it until the user quits.
// With a watcher the deck is reparsed whenever the file changes.
func Run(opts Options) error {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	if opts.Path != "" {
		log = log.With("file", opts.Path)
	}

	renderer := NewRenderer(80, 24)
	p := parser.NewParser(renderer, opts.Defaults)
	deck := &parser.Deck{}
	p.Parse(deck, opts.Text)
	defer p.Release(deck)

	m := newViewerModel(deck, p, renderer, opts.Runner, log)

	ttyIn, ttyOut, cleanup := getTTY()
	defer cleanup()

	progOpts := []tea.ProgramOption{tea.WithOutput(ttyOut), tea.WithInput(ttyIn)}
	if opts.Fullscreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	prog := tea.NewProgram(m, progOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if opts.Watcher != nil {
		w := opts.Watcher
		go func() {
			err := w.Run(ctx, func() {
				content, err := os.ReadFile(w.Path())
				prog.Send(reloadMsg{text: string(content), err: err})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("watcher stopped", "error", err)
			}
		}()
	}

	_, err := prog.Run()
	return err
}
