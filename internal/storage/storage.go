package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/bis-schedules/internal/calendar"
)

const calendarExt = ".ics"

// ErrNameCollision is returned when two teams would share a calendar file
var ErrNameCollision = errors.New("calendar file name collision")

// Storage handles writing calendar files
type Storage struct {
	dir string
}

// New creates a new Storage instance
func New(dir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	// Create output directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Storage{
		dir: dir,
	}, nil
}

// Dir returns the output directory
func (s *Storage) Dir() string {
	return s.dir
}

// FileName returns the calendar file name for a team
func FileName(team string) string {
	name := strings.ReplaceAll(team, "/", "_")
	if os.PathSeparator != '/' {
		name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	}
	return name + calendarExt
}

// CheckFileNames fails when two teams map to the same calendar file.
// Names are compared ignoring case, since the output may land on a
// case-insensitive file system.
func CheckFileNames(teams []string) error {
	seen := make(map[string]string, len(teams))
	for _, team := range teams {
		name := FileName(team)
		key := strings.ToLower(name)
		if other, ok := seen[key]; ok {
			return fmt.Errorf("%w: %q and %q both map to %s", ErrNameCollision, other, team, name)
		}
		seen[key] = team
	}
	return nil
}

// CalendarPath returns the path of a team's calendar file
func (s *Storage) CalendarPath(team string) string {
	return filepath.Join(s.dir, FileName(team))
}

// SaveCalendar writes the calendar to its team's file, replacing any previous file
func (s *Storage) SaveCalendar(cal *calendar.Calendar) (string, error) {
	path := s.CalendarPath(cal.Team)

	if err := os.WriteFile(path, []byte(calendar.GenerateICS(cal)), 0644); err != nil {
		return "", fmt.Errorf("writing calendar: %w", err)
	}

	return path, nil
}
