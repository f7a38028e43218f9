package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gubarz/pinpoint/internal/config"
	"github.com/gubarz/pinpoint/internal/executor"
	"github.com/gubarz/pinpoint/internal/export"
	"github.com/gubarz/pinpoint/internal/logger"
	"github.com/gubarz/pinpoint/internal/parser"
	"github.com/gubarz/pinpoint/internal/ui"
	"github.com/gubarz/pinpoint/internal/watcher"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

// usageDeck is shown when no presentation is given
const usageDeck = "usage: pinpoint [options] <presentation.txt>\n-- [no-markup][transition=sheet][red]\n"

var dumpCmd = &cobra.Command{
	Use:   "dump [presentation]",
	Short: "Print the parsed slides and their settings",
	Long: `Parses a presentation and prints every slide with the settings it
ends up with after inheritance, one block per slide.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

var rootCmd = &cobra.Command{
	Use:   "pinpoint [presentation]",
	Short: "Presentations made easy",
	Long: `Plain text presentation tool.

Slides are separated by lines starting with '-'. Settings for a slide go
in [brackets] on its separator line; the first slide's settings become
the defaults for the rest of the deck.

The presentation is reloaded whenever the file changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPresentation,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(dumpCmd)

	rootCmd.Flags().StringP("output", "o", "", "Output presentation to FILE (formats supported: png)")
	rootCmd.Flags().BoolP("fullscreen", "f", false, "Start in fullscreen mode")
	rootCmd.Flags().BoolP("maximized", "m", false, "Run inline in the terminal instead of fullscreen")
	rootCmd.Flags().Bool("no-watch", false, "Do not reload the presentation when it changes")
	rootCmd.Flags().BoolP("benchmark", "b", false, "Benchmark parse time and exit")

	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

// nullRenderer satisfies parser.Renderer for passes nothing is drawn from
type nullRenderer struct{}

func (nullRenderer) AllocateData() parser.Data { return nil }
func (nullRenderer) FreeData(parser.Data)      {}
func (nullRenderer) MakePoint(*parser.Point)   {}

// loadText returns the presentation text and its path, or the usage deck
func loadText(args []string) (string, string, error) {
	if len(args) == 0 {
		return usageDeck, "", nil
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return "", "", fmt.Errorf("error resolving path: %w", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to load presentation from %s: %w", args[0], err)
	}
	return string(content), path, nil
}

// configDefaults builds the persistent default record seeded from config
func configDefaults() *parser.Point {
	d := parser.DefaultPoint()
	parser.ApplyConfigLine(&d, config.GetDefaults())
	return &d
}

func stderrLogger() *logger.Logger {
	log, err := logger.New(config.GetLogMode(), config.GetLogFile())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return logger.Nop()
	}
	return log
}

func runPresentation(cmd *cobra.Command, args []string) error {
	if f, _ := cmd.Flags().GetBool("fullscreen"); f {
		config.SetFullscreen(true)
	}
	if m, _ := cmd.Flags().GetBool("maximized"); m {
		config.SetMaximized(true)
	}
	if nw, _ := cmd.Flags().GetBool("no-watch"); nw {
		config.SetWatch(false)
	}

	text, path, err := loadText(args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: pinpoint [options] <presentation>")
	}

	if benchmark, _ := cmd.Flags().GetBool("benchmark"); benchmark {
		return runBenchmark(text)
	}

	if output := config.GetOutput(); output != "" {
		return runExport(text, path, output)
	}

	// Logging to the terminal would draw over the slides
	log := logger.Nop()
	if config.GetLogFile() != "" {
		log = stderrLogger()
	}
	defer log.Sync()

	var w *watcher.Watcher
	if path != "" && config.GetWatch() {
		w, err = watcher.New(path, config.GetDebounce(), log)
		if err != nil {
			log.Warn("live reload disabled", "error", err)
		} else {
			defer w.Close()
		}
	}

	return ui.Run(ui.Options{
		Path:       path,
		Text:       text,
		Fullscreen: config.GetFullscreen() && !config.GetMaximized(),
		Watcher:    w,
		Defaults:   configDefaults(),
		Runner:     executor.NewExecutor(config.GetShell(), filepath.Dir(path)),
		Log:        log,
	})
}

func runExport(text, path, output string) error {
	if err := export.CheckTarget(output); err != nil {
		return err
	}

	log := stderrLogger()
	defer log.Sync()

	width, height := config.GetExportSize()
	baseDir := "."
	if path != "" {
		baseDir = filepath.Dir(path)
	}

	exp, err := export.New(width, height, baseDir, config.GetFontFile(), log)
	if err != nil {
		return err
	}

	p := parser.NewParser(exp, configDefaults())
	deck := &parser.Deck{}
	p.Parse(deck, text)
	defer p.Release(deck)

	written, err := exp.WritePNGs(deck, output)
	if err != nil {
		return fmt.Errorf("export error: %w", err)
	}
	log.Info("presentation exported", "slides", len(written), "output", output)
	return nil
}

func runBenchmark(text string) error {
	start := time.Now()
	p := parser.NewParser(nullRenderer{}, configDefaults())
	deck := &parser.Deck{}
	p.Parse(deck, text)
	elapsed := time.Since(start)

	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("Parsed %d slides in %v\n", deck.Len(), elapsed)
	fmt.Printf("Memory: Alloc=%dKB, TotalAlloc=%dKB, HeapObjects=%d\n",
		m.Alloc/1024, m.TotalAlloc/1024, m.HeapObjects)
	return nil
}

func runDump(cmd *cobra.Command, args []string) error {
	text, _, err := loadText(args)
	if err != nil {
		return err
	}

	p := parser.NewParser(nullRenderer{}, configDefaults())
	deck := &parser.Deck{}
	p.Parse(deck, text)

	dumpDeck(cmd.OutOrStdout(), deck)
	return nil
}

// dumpDeck writes one block per slide with its effective settings
func dumpDeck(w io.Writer, deck *parser.Deck) {
	for i, pt := range deck.Points {
		fmt.Fprintf(w, "--- slide %d/%d\n", i+1, deck.Len())
		fmt.Fprintf(w, "stage-color=%s font=%q text-color=%s text-align=%s position=%s markup=%v\n",
			pt.StageColor, pt.Font, pt.TextColor, pt.TextAlign, pt.Position, pt.UseMarkup)
		fmt.Fprintf(w, "shading-color=%s shading-opacity=%g\n", pt.ShadingColor, pt.ShadingOpacity)
		if pt.Background != "" {
			fmt.Fprintf(w, "background=%q kind=%s scale=%s\n", pt.Background, pt.BackgroundKind, pt.BackgroundScale)
		}
		if pt.Transition != "" {
			fmt.Fprintf(w, "transition=%s\n", pt.Transition)
		}
		if pt.Command != "" {
			fmt.Fprintf(w, "command=%q\n", pt.Command)
		}
		fmt.Fprintf(w, "%s\n", pt.Text)
	}
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
