package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"arduscan/internal/board"
	"arduscan/internal/catalog"
	"arduscan/internal/config"
	"arduscan/internal/inventory"
	"arduscan/internal/model"
	"arduscan/internal/ports"
	"arduscan/internal/report"
	"arduscan/internal/scan"
	"arduscan/internal/tui"
	"arduscan/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
	"gopkg.in/yaml.v3"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "arduscan",
		Repository: "arduscan",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/arduscan/arduscan/releases")
	} else {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

// Mode is what a run produces.
type Mode int

const (
	ModeReport Mode = iota
	ModeJSON
	ModeYAML
	ModeTUI
	ModeWeb
)

// selectMode picks the mode from explicit flags first, then the configured format.
func selectMode(tuiFlag, webFlag, jsonFlag, yamlFlag, reportFlag bool, format string) Mode {
	switch {
	case webFlag:
		return ModeWeb
	case tuiFlag:
		return ModeTUI
	case jsonFlag:
		return ModeJSON
	case yamlFlag:
		return ModeYAML
	case reportFlag:
		return ModeReport
	}
	switch format {
	case config.FormatJSON:
		return ModeJSON
	case config.FormatYAML:
		return ModeYAML
	}
	return ModeReport
}

// buildEnumerator returns the port enumerator for this platform.
func buildEnumerator(noPorts bool, goos string) ports.Enumerator {
	if noPorts {
		return ports.Disabled{}
	}
	if goos == "windows" {
		return ports.NewSerialEnumerator()
	}
	return ports.Fallback{Primary: ports.NewSerialEnumerator(), Secondary: ports.NewDevScanner()}
}

// defineConfigFlags registers the flags that override config file and
// environment settings. Names must match the keys config.Load binds.
func defineConfigFlags(fs *pflag.FlagSet) {
	defaults := config.DefaultConfig()
	fs.Int("port", defaults.WebPort, "Port for --web")
	fs.Bool("matched-only", false, "Emit only the board-matched include dir per kind when there is one")
	fs.Bool("no-ports", false, "Skip serial port enumeration")
	fs.String("log-level", defaults.LogLevel, "Log level: debug, info, warn or error")
	fs.String("format", defaults.Format, "Default output format: report, json or yaml")
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: arduscan [options] [base-dir]\n\n")
		fmt.Fprintf(os.Stderr, "arduscan inventories an Arduino / embedded toolchain installation.\n")
		fmt.Fprintf(os.Stderr, "It finds cores, C libraries and vendor headers, identifies attached USB boards\n")
		fmt.Fprintf(os.Stderr, "and suggests -I include flags matched to the detected board.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  arduscan                      # Print report for the default Arduino dir\n")
		fmt.Fprintf(os.Stderr, "  arduscan ~/.arduino15         # Scan a specific directory\n")
		fmt.Fprintf(os.Stderr, "  arduscan -r -o r.txt          # Save report to file\n")
		fmt.Fprintf(os.Stderr, "  arduscan --json --no-ports    # Headers only, as JSON\n")
		fmt.Fprintf(os.Stderr, "  arduscan --format yaml        # YAML unless another mode flag is given\n")
		fmt.Fprintf(os.Stderr, "  arduscan --tui                # Browse interactively\n")
	}

	jsonFlag := pflag.BoolP("json", "j", false, "Output the inventory as JSON")
	yamlFlag := pflag.Bool("yaml", false, "Output the inventory as YAML")
	reportFlag := pflag.BoolP("report", "r", false, "Print the diagnostic report (default)")
	outputFlag := pflag.StringP("output", "o", "", "Save output to the specified file")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Debug logging and header previews in the report")
	tuiFlag := pflag.BoolP("tui", "t", false, "Start the interactive terminal UI")
	webFlag := pflag.BoolP("web", "w", false, "Start Web Mode on http://localhost:<port>")
	defineConfigFlags(pflag.CommandLine)
	configFlag := pflag.String("config", "", "Config file (default $XDG_CONFIG_HOME/arduscan/config.yaml)")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("arduscan version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	cfg, err := config.Load(config.LoadOptions{ConfigFilePath: *configFlag, Flags: pflag.CommandLine})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "arduscan", Level: cfg.Level()})
	if *verboseFlag {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)

	explicit := cfg.BaseDir
	if pflag.NArg() > 0 {
		explicit = pflag.Arg(0)
	}
	baseDir, err := config.ResolveBaseDir(explicit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("using base dir", "path", baseDir)

	cat := cfg.Catalog(catalog.Default())
	analyzer := inventory.NewAnalyzer(cat, buildEnumerator(cfg.NoPorts, runtime.GOOS), logger,
		inventory.Options{MatchedOnly: cfg.MatchedOnly})
	load := func(ctx context.Context) (*model.Inventory, error) {
		return analyzer.Analyze(ctx, baseDir)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	mode := selectMode(*tuiFlag, *webFlag, *jsonFlag, *yamlFlag, *reportFlag, cfg.Format)
	switch mode {
	case ModeWeb:
		if err := scan.CheckRoot(baseDir); err != nil {
			exitErr(err)
		}
		srv := web.NewServer(load, cat, analyzer.Identifier(), logger)
		if err := srv.ListenAndServe(ctx, cfg.WebPort); err != nil {
			exitErr(err)
		}
	case ModeTUI:
		runTuiMode(cat, analyzer.Identifier(), load)
	default:
		inv, err := load(ctx)
		if err != nil {
			exitErr(err)
		}
		out, err := render(mode, inv, cat, analyzer.Identifier(), *verboseFlag)
		if err != nil {
			exitErr(err)
		}
		writeOutput(*outputFlag, out)
	}
}

// render formats inv for the non-interactive modes.
func render(mode Mode, inv *model.Inventory, cat *catalog.Catalog, ident *board.Identifier, verbose bool) (string, error) {
	switch mode {
	case ModeJSON:
		data, err := json.MarshalIndent(inv, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return string(data) + "\n", nil
	case ModeYAML:
		data, err := yaml.Marshal(inv)
		if err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		return string(data), nil
	default:
		return report.Generate(inv, cat, ident, report.Options{System: report.CurrentSystem(), Verbose: verbose}), nil
	}
}

func writeOutput(outputFile, content string) {
	if outputFile == "" {
		fmt.Print(content)
		return
	}
	if err := os.WriteFile(outputFile, []byte(content), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output to %s: %v\n", outputFile, err)
		os.Exit(1)
	}
	fmt.Printf("Output saved to %s\n", outputFile)
}

func exitErr(err error) {
	if errors.Is(err, scan.ErrRootNotFound) {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}

func runTuiMode(cat *catalog.Catalog, ident *board.Identifier, load tui.LoadFunc) {
	m := tui.InitialModel(cat, ident, load)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
