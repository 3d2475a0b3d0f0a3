package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// CalendarSummary describes one written calendar
type CalendarSummary struct {
	Team   string `json:"team"`
	File   string `json:"file"`
	Path   string `json:"path,omitempty"`
	Events int    `json:"events"`
}

// OutputResult contains data to be output
type OutputResult struct {
	GeneratedAt   time.Time         `json:"generated_at"`
	SourceURL     string            `json:"source_url"`
	Timezone      string            `json:"timezone"`
	Calendars     []CalendarSummary `json:"calendars"`
	CalendarCount int               `json:"calendar_count"`
	EventCount    int               `json:"event_count"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.CalendarCount == 0 {
		fmt.Fprintln(w, "No schedules found.")
		return nil
	}

	for _, c := range result.Calendars {
		fmt.Fprintf(w, "wrote %q (%d %s)\n", c.File, c.Events, plural(c.Events, "game", "games"))
		if verbose {
			fmt.Fprintf(w, "     Team: %s\n", c.Team)
			if c.Path != "" {
				fmt.Fprintf(w, "     Path: %s\n", c.Path)
			}
		}
	}

	fmt.Fprintf(w, "\nTotal: %d %s, %d %s\n",
		result.CalendarCount, plural(result.CalendarCount, "calendar", "calendars"),
		result.EventCount, plural(result.EventCount, "event", "events"))
	if verbose {
		fmt.Fprintf(w, "Source: %s (%s)\n", result.SourceURL, result.Timezone)
	}

	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
