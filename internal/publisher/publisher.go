// Package publisher delivers built team calendars to their destination.
package publisher

import (
	"fmt"
	"io"

	"github.com/pfrederiksen/bis-schedules/internal/calendar"
	"github.com/pfrederiksen/bis-schedules/internal/storage"
)

// Publisher defines the interface for delivering a team calendar
type Publisher interface {
	// Publish delivers cal and returns where it went, or "" when it has no path
	Publish(cal *calendar.Calendar) (string, error)
}

// FilePublisher writes each calendar to "<team>.ics" in a storage directory
type FilePublisher struct {
	store *storage.Storage
}

// NewFilePublisher creates a publisher that writes into store
func NewFilePublisher(store *storage.Storage) *FilePublisher {
	return &FilePublisher{store: store}
}

// Publish saves the calendar file
func (p *FilePublisher) Publish(cal *calendar.Calendar) (string, error) {
	return p.store.SaveCalendar(cal)
}

// DryRunPublisher prints calendars instead of writing files
type DryRunPublisher struct {
	w io.Writer
}

// NewDryRunPublisher creates a dry-run publisher writing to w
func NewDryRunPublisher(w io.Writer) *DryRunPublisher {
	return &DryRunPublisher{w: w}
}

// Publish prints the iCalendar text that would be written
func (p *DryRunPublisher) Publish(cal *calendar.Calendar) (string, error) {
	if _, err := cal.WriteTo(p.w); err != nil {
		return "", fmt.Errorf("writing calendar for %s: %w", cal.Team, err)
	}
	return "", nil
}
