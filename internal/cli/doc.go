// Package cli implements the command-line interface for bis-schedules.
//
// The cli package provides the Cobra-based root command. It fetches the BIS Academy
// schedule page (or reads a saved copy), extracts every team's games, builds one
// calendar per team and writes each as <team>.ics. A run summary is printed as text
// or JSON; --dry-run prints the calendars instead of writing them.
package cli
