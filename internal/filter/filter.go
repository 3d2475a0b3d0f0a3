// Package filter selects which teams get a calendar.
//
// Teams are matched by exact name, ignoring case. An empty filter
// selects every team.
//
// Example usage:
//
//	f := filter.ParseTeams("Sharks, eagles")
//	teams := f.Apply(schedule.Teams())
package filter

import (
	"strings"
)

// Filter represents team selection criteria
type Filter struct {
	Teams []string `json:"teams,omitempty"`
}

// NewFilter creates a new empty filter that selects every team.
func NewFilter() *Filter {
	return &Filter{
		Teams: []string{},
	}
}

// ParseTeams builds a filter from a comma-separated team list.
// Blank entries are dropped.
func ParseTeams(input string) *Filter {
	f := NewFilter()
	for _, part := range strings.Split(input, ",") {
		if team := strings.TrimSpace(part); team != "" {
			f.Teams = append(f.Teams, team)
		}
	}
	return f
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return len(f.Teams) == 0
}

// Matches reports whether team is selected
func (f *Filter) Matches(team string) bool {
	if f.IsEmpty() {
		return true
	}

	for _, t := range f.Teams {
		if strings.EqualFold(t, team) {
			return true
		}
	}
	return false
}

// Apply returns the selected teams, keeping their order.
// If the filter is empty, returns the original list unchanged.
func (f *Filter) Apply(teams []string) []string {
	if f.IsEmpty() {
		return teams
	}

	var filtered []string
	for _, team := range teams {
		if f.Matches(team) {
			filtered = append(filtered, team)
		}
	}

	return filtered
}

// Unmatched returns the filter's team names that match none of teams
func (f *Filter) Unmatched(teams []string) []string {
	var missing []string
	for _, want := range f.Teams {
		found := false
		for _, team := range teams {
			if strings.EqualFold(want, team) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, want)
		}
	}
	return missing
}

// String returns a human-readable description of the filter
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "All teams"
	}
	return "Teams: " + strings.Join(f.Teams, ", ")
}
