package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/pfrederiksen/bis-schedules/internal/game"
)

const (
	DefaultTimezone = "America/Denver"
	GameDuration    = time.Hour

	IndoorLocation  = "Boulder Indoor Soccer"
	OutdoorLocation = "Foothills Community Park"

	HomeJersey = "blue"
	AwayJersey = "white"

	namePrefix        = "BIS Academy: "
	descriptionPrefix = "extracted from "
	summaryMarker     = "⚽️"
)

var (
	// ErrNotParticipant is returned when a team's game list holds a game it does not play in
	ErrNotParticipant = errors.New("team does not play in game")
	// ErrAmbiguousTeam is returned when a team is listed as both home and away
	ErrAmbiguousTeam = errors.New("team is both home and away")
)

// Calendar is one team's schedule as calendar events
type Calendar struct {
	Team        string
	Name        string
	Description string
	Timezone    string
	Stamp       time.Time
	Events      []Event
}

// Event is a single game on a team's calendar
type Event struct {
	UID         string
	Summary     string
	Start       time.Time
	End         time.Time
	Location    string
	Description string
}

// Builder creates calendars for one source page and timezone
type Builder struct {
	sourceURL string
	timezone  string
	loc       *time.Location
	namespace uuid.UUID
	now       func() time.Time
}

// NewBuilder creates a Builder. timezone must be an IANA zone name.
func NewBuilder(sourceURL, timezone string) (*Builder, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", timezone, err)
	}

	return &Builder{
		sourceURL: sourceURL,
		timezone:  timezone,
		loc:       loc,
		namespace: uuid.NewSHA1(uuid.NameSpaceURL, []byte(sourceURL)),
		now:       time.Now,
	}, nil
}

// Build creates the calendar for team from the games listed under it in schedule.
// It fails on the first game that cannot be converted.
func Build(team string, schedule *game.Schedule, sourceURL, timezone string) (*Calendar, error) {
	b, err := NewBuilder(sourceURL, timezone)
	if err != nil {
		return nil, err
	}
	return b.Build(team, schedule)
}

// Build creates the calendar for team
func (b *Builder) Build(team string, schedule *game.Schedule) (*Calendar, error) {
	games := schedule.Games(team)

	cal := &Calendar{
		Team:        team,
		Name:        namePrefix + team,
		Description: descriptionPrefix + b.sourceURL,
		Timezone:    b.timezone,
		Stamp:       b.now().UTC(),
		Events:      make([]Event, 0, len(games)),
	}

	for i, rec := range games {
		evt, err := b.NewEvent(team, i, rec)
		if err != nil {
			return nil, fmt.Errorf("game %d for %s: %w", i+1, team, err)
		}
		cal.Events = append(cal.Events, evt)
	}

	return cal, nil
}

// NewEvent converts the index'th game of team into an event
func (b *Builder) NewEvent(team string, index int, rec game.GameRecord) (Event, error) {
	start, err := game.ParseDateTime(rec.Date, rec.Time, b.loc)
	if err != nil {
		return Event{}, err
	}

	jersey, err := JerseyColor(team, rec)
	if err != nil {
		return Event{}, err
	}

	// The index keeps identical rows distinct.
	name := team + "|" + strconv.Itoa(index) + "|" + rec.Key()

	return Event{
		UID:         uuid.NewSHA1(b.namespace, []byte(name)).String(),
		Summary:     fmt.Sprintf("%s %s @ %s", summaryMarker, rec.AwayTeam, rec.HomeTeam),
		Start:       start,
		End:         start.Add(GameDuration),
		Location:    Location(rec.BadWeather),
		Description: fmt.Sprintf("field: %s\njersey: %s", rec.Field, jersey),
	}, nil
}

// Location returns where a game is played
func Location(badWeather bool) string {
	if badWeather {
		return IndoorLocation
	}
	return OutdoorLocation
}

// JerseyColor returns the jersey color team wears in rec
func JerseyColor(team string, rec game.GameRecord) (string, error) {
	isHome := rec.HomeTeam == team
	isAway := rec.AwayTeam == team

	switch {
	case isHome && isAway:
		return "", fmt.Errorf("%w: %q", ErrAmbiguousTeam, team)
	case isHome:
		return HomeJersey, nil
	case isAway:
		return AwayJersey, nil
	default:
		return "", fmt.Errorf("%w: %q not in %q @ %q", ErrNotParticipant, team, rec.AwayTeam, rec.HomeTeam)
	}
}
