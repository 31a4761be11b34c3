package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"listbox/internal/catalog"
	"listbox/internal/config"
	"listbox/internal/debug"
	"listbox/internal/ui"
	"listbox/internal/ui/theme"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if err := config.Initialize(); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	versionFlag := flag.Bool("version", false, "Print version information and exit")
	debugFlag := flag.Bool("debug", false, "Write a debug log to ~/.listbox/debug.log")
	themeFlag := flag.String("theme", config.GetString(config.KeyTheme), "Color theme ("+strings.Join(theme.Available(), ", ")+")")
	catalogFlag := flag.String("catalog", config.GetString(config.KeyCatalogPath), "Path to the catalog database (empty keeps it in memory)")
	widthFlag := flag.Int("width", config.GetInt(config.KeyListboxWidth), "Width of each listbox in cells")
	outputFormatFlag := flag.String("output-format", config.GetString(config.KeyOutputFormat), "Detail panel markdown style (rich, light, plain)")
	flag.Parse()

	if *versionFlag {
		printVersion()
		os.Exit(0)
	}

	visited := map[string]struct{}{}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		visited[f.Name] = struct{}{}
	})

	runtime := computeRuntimeOptions(runtimeFlags{
		debug:        debugFlag,
		theme:        themeFlag,
		catalogPath:  catalogFlag,
		width:        widthFlag,
		outputFormat: outputFormatFlag,
	}, visited)

	if err := debug.Init(runtime.debug); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log disabled: %v\n", err)
	}
	defer debug.Close()

	if !theme.SetTheme(runtime.theme) {
		fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, using %s\n", runtime.theme, theme.CurrentName())
	}

	err := runProgram(context.Background(), runtime, catalog.Open, ui.NewApp, func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen())
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type programRunner interface {
	Run() (tea.Model, error)
}

type (
	programFactory func(*ui.App) programRunner
	catalogOpener  func(context.Context, string) (*catalog.Store, error)
	appBuilder     func(context.Context, ui.Config) (*ui.App, error)
)

func runProgram(ctx context.Context, opts runtimeOptions, open catalogOpener, builder appBuilder, factory programFactory) error {
	store, err := open(ctx, opts.catalogPath)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()
	debug.Logf("catalog opened at %q", store.Path())

	app, err := builder(ctx, ui.Config{
		Catalog:      store,
		ListboxWidth: opts.width,
		OutputFormat: opts.outputFormat,
		Version:      Version,
	})
	if err != nil {
		if errors.Is(err, ui.ErrNoSources) {
			return err
		}
		return fmt.Errorf("initialize UI: %w", err)
	}
	if factory == nil {
		return fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}

type runtimeFlags struct {
	debug        *bool
	theme        *string
	catalogPath  *string
	width        *int
	outputFormat *string
}

type runtimeOptions struct {
	debug        bool
	theme        string
	catalogPath  string
	width        int
	outputFormat string
}

// computeRuntimeOptions layers explicitly set flags over the loaded
// configuration and pushes them back into it, so later reads agree.
func computeRuntimeOptions(flags runtimeFlags, visited map[string]struct{}) runtimeOptions {
	opts := runtimeOptions{
		theme:        strings.TrimSpace(config.GetString(config.KeyTheme)),
		catalogPath:  strings.TrimSpace(config.GetString(config.KeyCatalogPath)),
		width:        config.GetInt(config.KeyListboxWidth),
		outputFormat: strings.TrimSpace(config.GetString(config.KeyOutputFormat)),
	}
	overrides := map[string]any{}

	if flags.debug != nil {
		opts.debug = *flags.debug
	}
	if flagWasExplicitlySet("theme", visited) {
		opts.theme = strings.TrimSpace(*flags.theme)
		overrides[config.KeyTheme] = opts.theme
	}
	if flagWasExplicitlySet("catalog", visited) {
		opts.catalogPath = strings.TrimSpace(*flags.catalogPath)
		overrides[config.KeyCatalogPath] = opts.catalogPath
	}
	if flagWasExplicitlySet("width", visited) {
		opts.width = *flags.width
		overrides[config.KeyListboxWidth] = opts.width
	}
	if flagWasExplicitlySet("output-format", visited) {
		opts.outputFormat = strings.TrimSpace(*flags.outputFormat)
		overrides[config.KeyOutputFormat] = opts.outputFormat
	}
	if opts.width <= 0 {
		opts.width = config.DefaultListboxWidth
	}
	if opts.theme == "" {
		opts.theme = config.DefaultTheme
	}

	if err := config.ApplyOverrides(overrides); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return opts
}

func flagWasExplicitlySet(name string, visited map[string]struct{}) bool {
	if _, ok := visited[name]; ok {
		return true
	}
	f := flag.CommandLine.Lookup(name)
	if f == nil {
		return false
	}
	return f.Value.String() != f.DefValue
}
