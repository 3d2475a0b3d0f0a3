package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/pfrederiksen/bis-schedules/internal/calendar"
	"github.com/pfrederiksen/bis-schedules/internal/filter"
	"github.com/pfrederiksen/bis-schedules/internal/game"
	"github.com/pfrederiksen/bis-schedules/internal/logger"
	"github.com/pfrederiksen/bis-schedules/internal/publisher"
	"github.com/pfrederiksen/bis-schedules/internal/scraper"
	"github.com/pfrederiksen/bis-schedules/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

const (
	envURL      = "BIS_SCHEDULE_URL"
	envTimezone = "BIS_TIMEZONE"
)

var (
	flagURL       string
	flagTimezone  string
	flagOutDir    string
	flagInput     string
	flagTeams     string
	flagTimeout   time.Duration
	flagDryRun    bool
	flagFormat    string
	flagSort      string
	flagLogFormat string
	flagVerbose   bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bis-schedules",
		Short: "Convert BIS Academy schedules into per-team calendars",
		Long: `A CLI tool that scrapes the BIS Academy schedule tables and writes one
iCalendar file per team, named after the team (e.g. "Sharks.ics").`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runConvert,
	}

	// Define flags
	cmd.Flags().StringVar(&flagURL, "url", envOr(envURL, scraper.ScheduleURL), "Schedule page URL (env: "+envURL+")")
	cmd.Flags().StringVar(&flagTimezone, "timezone", envOr(envTimezone, calendar.DefaultTimezone), "IANA timezone of the schedule (env: "+envTimezone+")")
	cmd.Flags().StringVar(&flagOutDir, "out-dir", ".", "Directory for calendar files")
	cmd.Flags().StringVar(&flagInput, "input", "", "Read the schedule page from a saved HTML file instead of fetching it")
	cmd.Flags().StringVar(&flagTeams, "team", "", "Comma-separated teams to write calendars for (default: all)")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", scraper.Timeout, "HTTP timeout for fetching the schedule page (0 = none)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print calendars to stdout instead of writing files")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Summary format: text or json")
	cmd.Flags().StringVar(&flagSort, "sort", "discovery", "Summary order: discovery, team or games")
	cmd.Flags().StringVar(&flagLogFormat, "log-format", "text", "Log format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runConvert is the main command logic
func runConvert(cmd *cobra.Command, args []string) error {
	// Validate format
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	sortOrder := SortOrder(strings.ToLower(flagSort))
	if !sortOrder.valid() {
		return fmt.Errorf("invalid sort: %s (must be 'discovery', 'team' or 'games')", flagSort)
	}

	logFormat := logger.Format(strings.ToLower(flagLogFormat))
	if logFormat != logger.FormatText && logFormat != logger.FormatJSON {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", flagLogFormat)
	}
	configureLogger(cmd.ErrOrStderr(), logFormat)
	logger.ResetMetrics()

	builder, err := calendar.NewBuilder(flagURL, flagTimezone)
	if err != nil {
		return err
	}

	schedule, err := loadSchedule(cmd.Context())
	if err != nil {
		return err
	}

	logger.Info("extracted schedule", logger.Fields{
		"teams": schedule.Len(),
	})

	teamFilter := filter.ParseTeams(flagTeams)
	if missing := teamFilter.Unmatched(schedule.Teams()); len(missing) > 0 {
		logger.Warn("teams not found on schedule page", logger.Fields{
			"teams": strings.Join(missing, ", "),
		})
	}

	pub, err := newPublisher(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	result := &OutputResult{
		GeneratedAt: time.Now().UTC(),
		SourceURL:   flagURL,
		Timezone:    flagTimezone,
	}

	teams := teamFilter.Apply(schedule.Teams())
	if err := storage.CheckFileNames(teams); err != nil {
		return err
	}

	for _, team := range teams {
		cal, err := builder.Build(team, schedule)
		if err != nil {
			return fmt.Errorf("building calendar: %w", err)
		}

		summary := CalendarSummary{
			Team:   team,
			File:   storage.FileName(team),
			Events: len(cal.Events),
		}

		if !flagDryRun {
			logger.Info(fmt.Sprintf("writing %q", summary.File), logger.Fields{
				"team":   team,
				"events": summary.Events,
			})
		}
		summary.Path, err = pub.Publish(cal)
		if err != nil {
			return err
		}
		logger.IncrCounter("calendars.published")

		result.Calendars = append(result.Calendars, summary)
		result.EventCount += summary.Events
	}
	result.CalendarCount = len(result.Calendars)

	logger.Debug("run metrics", logger.MetricsSnapshot().Fields())

	// In dry-run mode stdout carries the calendars
	if flagDryRun {
		return nil
	}

	sortCalendars(result.Calendars, sortOrder)

	if err := WriteOutput(cmd.OutOrStdout(), result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// loadSchedule reads the schedule from --input or fetches it from --url
func loadSchedule(ctx context.Context) (*game.Schedule, error) {
	if flagInput != "" {
		logger.Debug("reading schedule page", logger.Fields{"file": flagInput})

		f, err := os.Open(filepath.Clean(flagInput))
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()

		schedule, err := scraper.ExtractFromReader(f)
		if err != nil {
			return nil, fmt.Errorf("extracting schedule: %w", err)
		}
		return schedule, nil
	}

	logger.Debug("fetching schedule page", logger.Fields{
		"url":     flagURL,
		"timeout": flagTimeout.String(),
	})

	sc := scraper.New(scraper.WithURL(flagURL), scraper.WithTimeout(flagTimeout))
	schedule, err := sc.FetchSchedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching schedule: %w", err)
	}
	return schedule, nil
}

// newPublisher picks the calendar destination for this run
func newPublisher(stdout io.Writer) (publisher.Publisher, error) {
	if flagDryRun {
		return publisher.NewDryRunPublisher(stdout), nil
	}

	store, err := storage.New(flagOutDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	return publisher.NewFilePublisher(store), nil
}

// configureLogger installs the default logger for this run
func configureLogger(w io.Writer, format logger.Format) {
	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}

	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd())
	}

	logger.SetDefault(logger.NewWithFormat(level, format, w, color))
}

// envOr returns the environment variable's value, or def when it is unset
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// loadDotEnv loads .env from the working directory if there is one
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("could not load .env", logger.Fields{"error": err.Error()})
	}
}

// Execute runs the CLI
func Execute() {
	loadDotEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
