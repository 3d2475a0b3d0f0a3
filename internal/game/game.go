package game

import (
	"fmt"
	"strings"
)

// GameRecord represents one scheduled game as it appears in a schedule table row
type GameRecord struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	BadWeather bool   `json:"bad_weather"`
	Field      string `json:"field"`
}

// NewGameRecord creates a GameRecord, rejecting records without a date, time or team
func NewGameRecord(date, timeText, home, away string, badWeather bool, field string) (GameRecord, error) {
	missing := make([]string, 0, 4)
	if date == "" {
		missing = append(missing, "date")
	}
	if timeText == "" {
		missing = append(missing, "time")
	}
	if home == "" {
		missing = append(missing, "home team")
	}
	if away == "" {
		missing = append(missing, "away team")
	}
	if len(missing) > 0 {
		return GameRecord{}, fmt.Errorf("game record missing %s", strings.Join(missing, ", "))
	}

	return GameRecord{
		Date:       date,
		Time:       timeText,
		HomeTeam:   home,
		AwayTeam:   away,
		BadWeather: badWeather,
		Field:      field,
	}, nil
}

// DateTimeText joins the date and time cells the way they are parsed
func (g GameRecord) DateTimeText() string {
	return g.Date + " " + g.Time
}

// Involves reports whether team plays in this game
func (g GameRecord) Involves(team string) bool {
	return g.HomeTeam == team || g.AwayTeam == team
}

// Key returns a stable identifier for the record's contents.
// Identical rows share a key.
func (g GameRecord) Key() string {
	return strings.Join([]string{
		g.Date,
		g.Time,
		g.HomeTeam,
		g.AwayTeam,
		fmt.Sprintf("%t", g.BadWeather),
		g.Field,
	}, "|")
}
