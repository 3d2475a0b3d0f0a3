package cli

import (
	"sort"
	"strings"
)

// SortOrder represents the available summary orderings
type SortOrder string

const (
	SortByDiscovery SortOrder = "discovery"
	SortByTeam      SortOrder = "team"
	SortByGames     SortOrder = "games"
)

func (o SortOrder) valid() bool {
	switch o {
	case SortByDiscovery, SortByTeam, SortByGames:
		return true
	}
	return false
}

// sortCalendars orders calendar summaries. Discovery order leaves the slice as is.
func sortCalendars(calendars []CalendarSummary, order SortOrder) {
	switch order {
	case SortByTeam:
		sort.SliceStable(calendars, func(i, j int) bool {
			return compareByTeam(calendars[i], calendars[j])
		})
	case SortByGames:
		sort.SliceStable(calendars, func(i, j int) bool {
			if calendars[i].Events != calendars[j].Events {
				return calendars[i].Events > calendars[j].Events
			}
			// If counts are equal, sort by team
			return compareByTeam(calendars[i], calendars[j])
		})
	}
}

// compareByTeam compares team names case-insensitively
func compareByTeam(i, j CalendarSummary) bool {
	a, b := strings.ToLower(i.Team), strings.ToLower(j.Team)
	if a != b {
		return a < b
	}
	return i.Team < j.Team
}
