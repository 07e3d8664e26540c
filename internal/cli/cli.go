package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/campusbuddy/soc-events/internal/calendar"
	"github.com/campusbuddy/soc-events/internal/config"
	"github.com/campusbuddy/soc-events/internal/event"
	"github.com/campusbuddy/soc-events/internal/logger"
	"github.com/campusbuddy/soc-events/internal/page"
	"github.com/campusbuddy/soc-events/internal/pipeline"
	"github.com/campusbuddy/soc-events/internal/society"
	"github.com/campusbuddy/soc-events/internal/storage"
)

const (
	ExitSuccess   = 0
	ExitError     = 1
	ExitNewEvents = 2
	ExitSkipped   = 2
)

var (
	flagConfig    string
	flagFormat    string
	flagVerbose   bool
	flagSociety   string
	flagSpoolDir  string
	flagDataDir   string
	flagSocieties string
	flagSchedule  string
	flagOutput    string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "soc-events",
		Short: "Extract structured society events from rendered event-page text",
		Long: `A toolkit that turns the rendered text of social-network event pages
into structured events: title, location, description and concrete
start/end times in Australia/Sydney. Page rendering is an external
collaborator's job; this tool consumes its text dumps.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newURLsCmd())
	cmd.AddCommand(newExportICSCmd())

	return cmd
}

// setup loads configuration and applies flag overrides
func setup(cmd *cobra.Command) (*config.Config, OutputFormat, error) {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return nil, "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, "", err
	}

	if cmd.Flags().Changed("spool-dir") {
		cfg.SpoolDir = flagSpoolDir
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = flagDataDir
	}
	if cmd.Flags().Changed("societies") {
		cfg.Societies = flagSocieties
	}
	if cmd.Flags().Changed("schedule") {
		cfg.Schedule = flagSchedule
	}

	level := logger.ParseLevel(strings.ToUpper(cfg.LogLevel))
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	return cfg, format, nil
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract one event page (file or stdin) and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExtract,
	}
	cmd.Flags().StringVar(&flagSociety, "society", "", "Society name attached to the extracted event")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	_, format, err := setup(cmd)
	if err != nil {
		return err
	}

	var text string
	if len(args) == 1 {
		text, err = readPageFile(args[0])
		if err != nil {
			return fmt.Errorf("reading page: %w", err)
		}
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}

	result := pipeline.Process(flagSociety, text, time.Now())
	if err := WriteExtract(os.Stdout, &result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if result.Outcome != pipeline.OutcomeSaved {
		os.Exit(ExitSkipped)
	}
	return nil
}

func readPageFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		return page.FromHTML(f)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a spool directory of rendered page texts and store extracted events",
		RunE:  runScan,
	}
	cmd.Flags().StringVar(&flagSpoolDir, "spool-dir", "./spool", "Spool directory of rendered page texts")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "~/.local/share/soc-events", "Data directory for the events snapshot")
	cmd.Flags().StringVar(&flagSchedule, "schedule", "", "Cron expression for periodic scanning (e.g. '0 * * * *')")
	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, format, err := setup(cmd)
	if err != nil {
		return err
	}

	if cfg.Schedule != "" {
		c := cron.New()
		_, err := c.AddFunc(cfg.Schedule, func() {
			if _, err := scanOnce(cfg, format); err != nil {
				logger.Error("scheduled scan failed", nil, err)
			}
		})
		if err != nil {
			return fmt.Errorf("invalid schedule %q: %w", cfg.Schedule, err)
		}
		logger.Info("scanning on schedule", logger.Fields{
			"schedule":  cfg.Schedule,
			"spool_dir": cfg.SpoolDir,
		})
		c.Run()
		return nil
	}

	newCount, err := scanOnce(cfg, format)
	if err != nil {
		return err
	}
	if newCount > 0 {
		os.Exit(ExitNewEvents)
	}
	return nil
}

// scanOnce runs a single pass over the spool directory, upserting into
// the snapshot. Returns how many events were newly inserted.
func scanOnce(cfg *config.Config, format OutputFormat) (int, error) {
	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return 0, fmt.Errorf("initializing storage: %w", err)
	}

	snapshot, err := store.Load()
	if err != nil {
		return 0, fmt.Errorf("loading snapshot: %w", err)
	}

	now := time.Now()
	var newEvents []*event.Event
	stats, err := pipeline.ScanDir(cfg.SpoolDir, now, func(evt *event.Event) {
		if snapshot.Upsert(evt) {
			newEvents = append(newEvents, evt)
		}
	})
	if err != nil {
		return 0, fmt.Errorf("scanning spool: %w", err)
	}

	if err := store.Save(snapshot); err != nil {
		return 0, fmt.Errorf("saving snapshot: %w", err)
	}

	result := &ScanResult{
		ScannedAt: now.UTC(),
		Stats:     stats,
		NewEvents: newEvents,
	}
	if flagVerbose {
		result.Counters = logger.Counters()
	}
	if err := WriteScan(os.Stdout, result, format, flagVerbose); err != nil {
		return 0, fmt.Errorf("writing output: %w", err)
	}

	return len(newEvents), nil
}

func newURLsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "urls",
		Short: "Print event-listing URLs for the rendering collaborator to visit",
		RunE:  runURLs,
	}
	cmd.Flags().StringVar(&flagSocieties, "societies", "./societies.json", "Path to the society roster JSON file")
	return cmd
}

func runURLs(cmd *cobra.Command, args []string) error {
	cfg, format, err := setup(cmd)
	if err != nil {
		return err
	}

	societies, err := society.Load(cfg.Societies)
	if err != nil {
		return err
	}

	entries := make([]URLEntry, 0, len(societies))
	for _, s := range societies {
		if s.FacebookURL == "" {
			continue
		}
		normalized, ok := society.NormalizePageURL(s.FacebookURL)
		if !ok {
			logger.Warn("skipping society with invalid page URL", logger.Fields{
				"society": s.Title,
				"url":     s.FacebookURL,
			})
			continue
		}
		entries = append(entries, URLEntry{
			Society: s.Title,
			URL:     society.EventsURL(normalized),
		})
	}

	return WriteURLs(os.Stdout, entries, format)
}

func newExportICSCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-ics",
		Short: "Export upcoming stored events as an iCalendar feed",
		RunE:  runExportICS,
	}
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "~/.local/share/soc-events", "Data directory for the events snapshot")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Output file (default: stdout)")
	return cmd
}

func runExportICS(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	snapshot, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	ics := calendar.Generate(snapshot.Upcoming(time.Now()))

	if flagOutput == "" {
		fmt.Print(ics)
		return nil
	}
	if err := os.WriteFile(flagOutput, []byte(ics), 0644); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	if flagVerbose {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", flagOutput)
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
