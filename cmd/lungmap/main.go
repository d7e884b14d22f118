package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vanderheijden86/lungmap/pkg/atlas"
	"github.com/vanderheijden86/lungmap/pkg/config"
	"github.com/vanderheijden86/lungmap/pkg/debug"
	"github.com/vanderheijden86/lungmap/pkg/ui"
	"github.com/vanderheijden86/lungmap/pkg/version"
	"github.com/vanderheijden86/lungmap/pkg/watcher"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes lungmap with args and returns the process exit code. It
// returns instead of exiting so deferred cleanup always runs.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lungmap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cpuProfile := fs.String("cpu-profile", "", "Write CPU profile to file")
	help := fs.Bool("help", false, "Show help")
	versionFlag := fs.Bool("version", false, "Show version")
	configPath := fs.String("config", "", "Read configuration from this file instead of ~/.config/lungmap/config.yaml")
	catalogPath := fs.String("catalog", "", "Load regions from a YAML catalog instead of the built-in lungs")
	imagePath := fs.String("image", "", "Draw this PNG/JPEG under the hotspots instead of the built-in art")
	noMouse := fs.Bool("no-mouse", false, "Disable mouse capture (keyboard only)")
	markdown := fs.Bool("markdown", false, "Render region descriptions as markdown")
	noWatch := fs.Bool("no-watch", false, "Do not reload the catalog file when it changes")
	robotCatalog := fs.Bool("robot-catalog", false, "Print the catalog as JSON and exit")
	robotHit := fs.String("robot-hit", "", "Print the region under percent point X,Y as JSON and exit")
	showMetrics := fs.Bool("metrics", false, "Print timing metrics as JSON to stderr on exit")
	exportPaths := fs.String("export", "", "Write snapshots to PATH[,PATH...] (.svg, .png, .md) and exit")
	selectFlag := fs.String("select", "", "Region drawn selected in --export snapshots")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	// CPU profiling support
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(stderr, "Could not create CPU profile: %v\n", err)
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(stderr, "Could not start CPU profile: %v\n", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}
	defer debug.Close()
	if *showMetrics {
		defer func() { _ = writeRobotMetrics(stderr) }()
	}

	if *help {
		fmt.Fprintln(stdout, "Usage: lungmap [options]")
		fmt.Fprintln(stdout, "\nAn interactive lung anatomy diagram for the terminal.")
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		return 0
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "lungmap %s\n", version.Version)
		return 0
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		// Non-fatal: continue with defaults
		fmt.Fprintf(stderr, "Warning: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}
	config.ApplyEnv(&cfg)
	applyFlags(&cfg, *catalogPath, *imagePath, *noMouse, *markdown, *noWatch)
	debug.Log("config: catalog=%q image=%q mouse=%v markdown=%v", cfg.Catalog, cfg.Image, cfg.MouseEnabled(), cfg.UI.Markdown)

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading catalog: %v\n", err)
		return 1
	}

	if *robotCatalog {
		if err := writeRobotCatalog(stdout, cat); err != nil {
			fmt.Fprintf(stderr, "Error encoding catalog: %v\n", err)
			return 1
		}
		return 0
	}

	if *robotHit != "" {
		px, py, err := parsePoint(*robotHit)
		if err != nil {
			fmt.Fprintf(stderr, "Error: --robot-hit: %v\n", err)
			return 2
		}
		if err := writeRobotHit(stdout, cat, px, py); err != nil {
			fmt.Fprintf(stderr, "Error encoding hit: %v\n", err)
			return 1
		}
		return 0
	}

	var img image.Image
	if cfg.Image != "" {
		img, err = ui.LoadDiagramImage(cfg.Image)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading image: %v\n", err)
			return 1
		}
	}

	if *exportPaths != "" {
		written, err := exportSnapshots(context.Background(), *exportPaths, cat, *selectFlag, img)
		if err != nil {
			fmt.Fprintf(stderr, "Error exporting: %v\n", err)
			return 1
		}
		for _, p := range written {
			fmt.Fprintf(stdout, "Exported %s\n", p)
		}
		return 0
	}
	if *selectFlag != "" {
		fmt.Fprintln(stderr, "Error: --select only applies to --export")
		return 2
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(stderr, "Error: lungmap needs a terminal. Use --robot-catalog, --robot-hit or --export for scripted output.")
		return 2
	}

	m := ui.NewModel(cat).WithConfig(cfg)
	if img != nil {
		m = m.WithImage(img)
	}
	if cfg.Catalog != "" {
		m = m.WithCatalogDir(filepath.Dir(cfg.Catalog))
		if cfg.WatchEnabled() {
			if w := startWatcher(cfg, stderr); w != nil {
				m = m.WithWatcher(w)
			}
		}
	}
	defer m.Stop()

	if err := runTUIProgram(m, programOptions(cfg)...); err != nil {
		fmt.Fprintf(stderr, "Error running lungmap: %v\n", err)
		return 1
	}
	return 0
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// applyFlags overlays command line flags onto cfg. Flags win over the
// environment and the config file.
func applyFlags(cfg *config.Config, catalog, img string, noMouse, markdown, noWatch bool) {
	if catalog != "" {
		cfg.Catalog = catalog
	}
	if img != "" {
		cfg.Image = img
	}
	if noMouse {
		off := false
		cfg.UI.Mouse = &off
	}
	if markdown {
		cfg.UI.Markdown = true
	}
	if noWatch {
		off := false
		cfg.Watch.Enabled = &off
	}
}

// loadCatalog returns the built-in lungs for an empty path.
func loadCatalog(path string) (*atlas.Catalog, error) {
	if path == "" {
		return atlas.Default(), nil
	}
	return atlas.LoadFile(path)
}

// startWatcher returns nil when the catalog cannot be watched; the TUI then
// simply runs without live reload.
func startWatcher(cfg config.Config, stderr io.Writer) *watcher.Watcher {
	w, err := watcher.New(cfg.Catalog,
		watcher.WithDebounceDuration(cfg.Debounce()),
		watcher.WithForcePoll(cfg.Watch.Poll),
		watcher.WithOnError(func(err error) {
			debug.Log("watcher: %v", err)
		}),
	)
	if err == nil {
		err = w.Start()
	}
	if err != nil {
		fmt.Fprintf(stderr, "Warning: live reload disabled: %v\n", err)
		return nil
	}
	return w
}

func programOptions(cfg config.Config) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.MouseEnabled() {
		if cfg.HoverEnabled() {
			opts = append(opts, tea.WithMouseAllMotion())
		} else {
			opts = append(opts, tea.WithMouseCellMotion())
		}
	}
	return opts
}

func runTUIProgram(m ui.Model, opts ...tea.ProgramOption) error {
	opts = append(opts, tea.WithoutSignalHandler())
	p := tea.NewProgram(m, opts...)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set LUNGMAP_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("LUNGMAP_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
