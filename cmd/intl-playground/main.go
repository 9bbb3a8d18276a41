package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/agumy/intl-playground/internal/config"
	"github.com/agumy/intl-playground/internal/dateutil"
	"github.com/agumy/intl-playground/internal/errorutil"
	"github.com/agumy/intl-playground/internal/formatter"
	"github.com/agumy/intl-playground/internal/logger"
	"github.com/agumy/intl-playground/internal/playground"
	"github.com/agumy/intl-playground/internal/template"
	"github.com/agumy/intl-playground/internal/tui"
)

const version = "1.0.0"

var (
	configFile   = flag.String("config", "", "Path to the TOML configuration file")
	initConfig   = flag.String("init-config", "", "Write the default configuration to this path and exit")
	input        = flag.String("input", "", "Date text to format; without -script, formats once and exits")
	locale       = flag.String("locale", "", "Locale (en-US, en-GB, ja-JP)")
	weekday      = flag.String("weekday", "", "Weekday: none, long, short, narrow")
	year         = flag.String("year", "", "Year: none, numeric, 2-digit")
	month        = flag.String("month", "", "Month: none, numeric, 2-digit, long, short, narrow")
	day          = flag.String("day", "", "Day: none, numeric, 2-digit")
	hour         = flag.String("hour", "", "Hour: none, numeric, 2-digit")
	minute       = flag.String("minute", "", "Minute: none, numeric, 2-digit")
	hourCycle    = flag.String("hour-cycle", "", "Hour cycle: h12, h24")
	timezone     = flag.String("timezone", "", "IANA time zone for input without an offset")
	templateName = flag.String("template", "", "Screen template name")
	script       = flag.String("script", "", "Read REPL lines from this file (\"-\" for stdin) instead of prompting")
	snapshot     = flag.String("snapshot", "", "Print the session state as yaml or json and exit")
	showVersion  = flag.Bool("version", false, "Show version information")
	help         = flag.Bool("help", false, "Show help information")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Intl Playground v%s\n\n", version)
		fmt.Fprintf(os.Stderr, "Previews how a date renders under different locales and format options.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -input 2024-01-15T09:30 -locale en-US -weekday none -hour numeric\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -input \"Jan 15, 2024\" -snapshot json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -config playground.toml -script session.txt\n", os.Args[0])
	}
}

// loadConfiguration reads the config file when one is given, applies flag
// overrides and validates the result.
func loadConfiguration(path string) (*config.Config, error) {
	var cfg *config.Config
	if path == "" {
		cfg = config.DefaultConfig()
		cfg.ApplyEnvironmentOverrides()
	} else {
		cleanPath := filepath.Clean(path)
		if err := errorutil.ValidateFileReadable(cleanPath, "load config"); err != nil {
			return nil, err
		}
		loaded, err := config.LoadConfig(cleanPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", cleanPath, err)
		}
		cfg = loaded
	}

	applyFlagOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyFlagOverrides gives command-line flags precedence over the file and
// the environment.
func applyFlagOverrides(cfg *config.Config) {
	overrides := []struct {
		dst *string
		v   string
	}{
		{&cfg.Input.Initial, *input},
		{&cfg.Input.Timezone, *timezone},
		{&cfg.Options.Locale, *locale},
		{&cfg.Options.Weekday, *weekday},
		{&cfg.Options.Year, *year},
		{&cfg.Options.Month, *month},
		{&cfg.Options.Day, *day},
		{&cfg.Options.Hour, *hour},
		{&cfg.Options.Minute, *minute},
		{&cfg.Options.HourCycle, *hourCycle},
		{&cfg.Templates.Default, *templateName},
	}
	for _, o := range overrides {
		if o.v != "" {
			*o.dst = o.v
		}
	}
}

func newSession(cfg *config.Config, log *slog.Logger) (*playground.Session, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	defaults, err := cfg.FormatOptions()
	if err != nil {
		return nil, err
	}
	return playground.New(
		playground.WithLogger(log),
		playground.WithParser(dateutil.NewParser(loc)),
		playground.WithInitialText(cfg.Input.Initial),
		playground.WithInitialPattern(cfg.Input.InitialPattern),
		playground.WithDefaults(defaults),
		playground.WithTimeZone(cfg.Input.Timezone),
	), nil
}

// runOnce formats the session's input a single time. It returns the exit
// code: 1 when the input is not a date.
func runOnce(w, errW io.Writer, session *playground.Session) int {
	if !session.OnSubmit() {
		fmt.Fprintf(errW, "%s: %q\n", formatter.FormatInvalid, session.RawText())
		return 1
	}
	entries := session.Results()
	fmt.Fprintln(w, entries[len(entries)-1].Text)
	return 0
}

// runSnapshot prints the session state. It returns 1 when the input is not
// a date, after printing.
func runSnapshot(w, errW io.Writer, session *playground.Session, format string) int {
	if err := session.Snapshot().Encode(w, format); err != nil {
		fmt.Fprintf(errW, "Error: %v\n", err)
		return 2
	}
	if !session.Parsed().IsValid() {
		return 1
	}
	return 0
}

func newDriver(scriptPath string) (tui.PromptDriver, func(), error) {
	switch {
	case scriptPath == "-":
		return tui.NewLineDriver(os.Stdin, os.Stdout), func() {}, nil
	case scriptPath != "":
		if err := errorutil.ValidateFileReadable(scriptPath, "read script"); err != nil {
			return nil, nil, err
		}
		f, err := os.Open(scriptPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open script: %w", err)
		}
		return tui.NewLineDriver(f, os.Stdout), func() { f.Close() }, nil
	case isTerminal(os.Stdin):
		stdio := terminal.Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
		return tui.NewSurveyDriver(stdio, os.Stdout), func() {}, nil
	default:
		return tui.NewLineDriver(os.Stdin, os.Stdout), func() {}, nil
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func run() int {
	flag.Parse()

	if *help {
		flag.Usage()
		return 0
	}
	if *showVersion {
		fmt.Printf("Intl Playground v%s\n", version)
		return 0
	}

	if *initConfig != "" {
		if err := config.SaveConfig(config.DefaultConfig(), *initConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing configuration: %v\n", err)
			return 1
		}
		fmt.Printf("Default configuration created at: %s\n", *initConfig)
		return 0
	}

	startTime := time.Now()

	cfg, err := loadConfiguration(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return 1
	}

	if err := logger.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}
	log := logger.Get()
	defer log.Close()

	session, err := newSession(cfg, log.Component("session"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	mode := "interactive"
	exitCode := 0
	defer func() {
		entries := make([]string, 0, len(session.Results()))
		for _, e := range session.Results() {
			entries = append(entries, e.Text)
		}
		log.LogSessionSummary(startTime, *configFile, mode, entries, exitCode)
	}()

	switch {
	case *snapshot != "":
		mode = "snapshot"
		exitCode = runSnapshot(os.Stdout, os.Stderr, session, *snapshot)
		return exitCode
	case *input != "" && *script == "":
		mode = "once"
		exitCode = runOnce(os.Stdout, os.Stderr, session)
		return exitCode
	}

	renderer := template.NewRenderer(cfg)
	if err := renderer.LoadTemplates(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading templates: %v\n", err)
		exitCode = 1
		return exitCode
	}
	if err := renderer.ValidateTemplate(renderer.DefaultTemplateName()); err != nil {
		fmt.Fprintf(os.Stderr, "Error in template %s: %v\n", renderer.DefaultTemplateName(), err)
		exitCode = 1
		return exitCode
	}

	driver, closeDriver, err := newDriver(*script)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = 1
		return exitCode
	}
	defer closeDriver()
	if *script != "" {
		mode = "script"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := tui.NewApp(session, renderer,
		tui.WithPromptDriver(driver),
		tui.WithLogger(log.Component("tui")))
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = 1
	}
	return exitCode
}

func main() {
	os.Exit(run())
}
