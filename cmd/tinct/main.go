package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/tinct/internal/appstate"
	"github.com/unkn0wn-root/tinct/internal/bindings"
	"github.com/unkn0wn-root/tinct/internal/config"
	"github.com/unkn0wn-root/tinct/internal/history"
	"github.com/unkn0wn-root/tinct/internal/importer"
	"github.com/unkn0wn-root/tinct/internal/rtfmt"
	"github.com/unkn0wn-root/tinct/internal/system"
	"github.com/unkn0wn-root/tinct/internal/telemetry"
	"github.com/unkn0wn-root/tinct/internal/theme"
	"github.com/unkn0wn-root/tinct/internal/ui"
	"github.com/unkn0wn-root/tinct/internal/update"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const historyCap = 500

func main() {
	var (
		themeOverride   string
		themeDirsRaw    string
		importSource    string
		listThemes      bool
		showVersion     bool
		checkUpdate     bool
		doUpdate        bool
		traceOTEndpoint string
		traceOTInsecure bool
		traceOTService  string
	)

	telemetryCfg := telemetry.ConfigFromEnv(os.Getenv)
	traceOTEndpoint = telemetryCfg.Endpoint
	traceOTInsecure = telemetryCfg.Insecure
	traceOTService = telemetryCfg.ServiceName

	flag.StringVar(&themeOverride, "theme", "", "Theme key to activate for this session")
	flag.StringVar(
		&themeDirsRaw,
		"themes-dir",
		"",
		"Additional theme directories (comma separated)",
	)
	flag.StringVar(
		&importSource,
		"import",
		"",
		"Import a Monaco/base16 theme (path or URL) and exit",
	)
	flag.BoolVar(&listThemes, "list", false, "Print the theme catalog and exit")
	flag.BoolVar(&showVersion, "version", false, "Show tinct version")
	flag.BoolVar(&checkUpdate, "check-update", false, "Check for newer releases and exit")
	flag.BoolVar(
		&doUpdate,
		"update",
		false,
		"Download and install the latest release, if available",
	)
	flag.StringVar(
		&traceOTEndpoint,
		"trace-otel-endpoint",
		traceOTEndpoint,
		"OTLP collector endpoint for trace export",
	)
	flag.BoolVar(
		&traceOTInsecure,
		"trace-otel-insecure",
		traceOTInsecure,
		"Disable TLS for OTLP trace export",
	)
	flag.StringVar(
		&traceOTService,
		"trace-otel-service",
		traceOTService,
		"Override service.name resource attribute for exported spans",
	)
	flag.Usage = usage
	flag.Parse()

	telemetryCfg.Endpoint = strings.TrimSpace(traceOTEndpoint)
	telemetryCfg.Insecure = traceOTInsecure
	telemetryCfg.ServiceName = strings.TrimSpace(traceOTService)
	telemetryCfg.Version = version

	if showVersion {
		fmt.Printf("tinct %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		if sum, err := executableChecksum(); err == nil {
			fmt.Printf("  sha256: %s\n", sum)
		} else {
			fmt.Printf("  sha256: unavailable (%v)\n", err)
		}
		os.Exit(0)
	}

	updateHTTP := &http.Client{Timeout: 60 * time.Second}
	upClient, err := update.NewClient(updateHTTP, updateRepo)
	if err != nil {
		log.Fatalf("update client: %v", err)
	}

	if checkUpdate || doUpdate {
		runUpdateCLI(upClient, doUpdate)
		return
	}

	themeDirs := parseThemeDirs(themeDirsRaw)

	provider, telemetryErr := telemetry.New(telemetryCfg)
	if telemetryErr != nil {
		if telemetryCfg.Enabled() {
			log.Printf("telemetry init error: %v", telemetryErr)
		}
		provider = telemetry.Noop()
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if shutdownErr := provider.Shutdown(ctx); shutdownErr != nil {
				log.Printf("telemetry shutdown: %v", shutdownErr)
			}
		}()
	}

	if importSource == "" && flag.NArg() > 0 {
		importSource = flag.Arg(0)
	}
	if importSource != "" {
		runHeadlessImport(provider, importSource, themeDirs[0])
		return
	}
	if listThemes {
		runListThemes(themeDirs)
		return
	}

	settings, settingsHandle, err := config.LoadSettings()
	if err != nil {
		log.Printf("settings load error: %v", err)
		settings = config.Settings{Layout: config.DefaultLayoutSettings()}
		settingsHandle = config.SettingsHandle{
			Path:   filepath.Join(config.Dir(), "settings.toml"),
			Format: config.SettingsFormatTOML,
		}
	}

	bindingMap, _, bindingErr := bindings.Load(config.Dir())
	if bindingErr != nil {
		log.Printf("bindings load error: %v", bindingErr)
		bindingMap = bindings.DefaultMap()
	}

	activeThemeKey := strings.TrimSpace(strings.ToLower(settings.Theme))
	if themeOverride != "" {
		activeThemeKey = strings.TrimSpace(strings.ToLower(themeOverride))
	}

	historyStore, historyErr := history.Open(config.HistoryPath(), historyCap)
	if historyErr != nil {
		log.Printf("history open error: %v", historyErr)
		historyStore = nil
	} else {
		defer func() {
			if closeErr := historyStore.Close(); closeErr != nil {
				log.Printf("history close error: %v", closeErr)
			}
		}()
	}

	// Probe the OS scheme before bubbletea owns the terminal; the
	// fallback probe writes an OSC query to the tty.
	scheme := system.DetectScheme()

	state := appstate.NewStore(appstate.Snapshot{
		ThemeKey:       activeThemeKey,
		UseSystemTheme: settings.UseSystemTheme,
	})

	model := ui.New(ui.Config{
		ActiveThemeKey: activeThemeKey,
		ThemeDirs:      themeDirs,
		Settings:       settings,
		SettingsHandle: settingsHandle,
		State:          state,
		History:        historyStore,
		Bindings:       bindingMap,
		Telemetry:      provider,
		Version:        version,
		UpdateClient:   upClient,
		EnableUpdate:   version != "dev",
	})
	model.SetInitialScheme(scheme)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		handler := rtfmt.LogHandler(log.Printf, "program.Run() write failed: %v")
		_ = rtfmt.Fprintf(os.Stderr, "error: %v\n", handler, err)
		os.Exit(1)
	}
}

func usage() {
	_ = rtfmt.Fprintln(os.Stderr, nil, heredoc.Doc(`
		tinct manages editor color themes from the terminal.

		Usage:
		  tinct [flags]
		  tinct <theme-file-or-url>    import a theme and exit

		Flags:
	`))
	flag.PrintDefaults()
}

func parseThemeDirs(raw string) []string {
	dirs := []string{config.ThemeDir()}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if abs, err := filepath.Abs(part); err == nil {
			part = abs
		}
		dirs = append(dirs, part)
	}
	return dirs
}

func runHeadlessImport(provider telemetry.Instrumenter, source, dir string) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	ctx, span := provider.Start(ctx, telemetry.OpStart{Op: telemetry.OpImport, Source: source})
	result, err := importer.Import(ctx, source, dir)
	span.End(telemetry.OpResult{Err: err})
	if err != nil {
		_ = rtfmt.Fprintf(
			os.Stderr,
			"import error: %v\n",
			rtfmt.LogHandler(log.Printf, "import error write failed: %v"),
			err,
		)
		os.Exit(1)
	}
	_ = rtfmt.Fprintf(
		os.Stdout,
		"Imported %s (%s) to %s\n",
		nil,
		result.DisplayName,
		result.Kind,
		result.Path,
	)
}

func runListThemes(dirs []string) {
	catalog, err := theme.LoadCatalog(dirs)
	if err != nil {
		log.Printf("theme load error: %v", err)
	}
	for _, def := range catalog.All() {
		line := fmt.Sprintf("%-24s %-8s %-8s %s", def.Key, def.Variant, def.Source, def.DisplayName)
		_ = rtfmt.Fprintln(os.Stdout, nil, strings.TrimRight(line, " "))
	}
}

func runUpdateCLI(upClient update.Client, apply bool) {
	u := newCLIUpdater(upClient, version)
	ctx := context.Background()
	res, ok, err := u.check(ctx)
	if err != nil {
		if errors.Is(err, errUpdateDisabled) {
			_ = rtfmt.Fprintln(
				os.Stdout,
				rtfmt.LogHandler(log.Printf, "update notice write failed: %v"),
				"Update checks are disabled for dev builds.",
			)
			os.Exit(0)
		}
		_ = rtfmt.Fprintf(
			os.Stderr,
			"update check failed: %v\n",
			rtfmt.LogHandler(log.Printf, "update check error write failed: %v"),
			err,
		)
		os.Exit(1)
	}
	if !ok {
		u.printNoUpdate()
		os.Exit(0)
	}
	u.printRelease(res)
	if !apply {
		_ = rtfmt.Fprintln(
			os.Stdout,
			rtfmt.LogHandler(log.Printf, "update hint write failed: %v"),
			"Run `tinct --update` to install.",
		)
		os.Exit(0)
	}
	if _, err := u.apply(ctx, res); err != nil && !errors.Is(err, update.ErrPendingSwap) {
		_ = rtfmt.Fprintf(
			os.Stderr,
			"update failed: %v\n",
			rtfmt.LogHandler(log.Printf, "update failure write failed: %v"),
			err,
		)
		os.Exit(1)
	}
	os.Exit(0)
}

func executableChecksum() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}
	f, err := os.Open(exe)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
