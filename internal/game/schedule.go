package game

// Schedule maps team names to their games.
// Teams keep the order in which they were first seen and each team's games keep
// the order in which they were added.
type Schedule struct {
	teams []string
	games map[string][]GameRecord
}

// NewSchedule creates an empty Schedule
func NewSchedule() *Schedule {
	return &Schedule{
		games: make(map[string][]GameRecord),
	}
}

// Add appends the record to the home team's and the away team's game lists
func (s *Schedule) Add(rec GameRecord) {
	s.appendGame(rec.HomeTeam, rec)
	if rec.AwayTeam != rec.HomeTeam {
		s.appendGame(rec.AwayTeam, rec)
	}
}

func (s *Schedule) appendGame(team string, rec GameRecord) {
	if _, ok := s.games[team]; !ok {
		s.teams = append(s.teams, team)
	}
	s.games[team] = append(s.games[team], rec)
}

// Teams returns team names in discovery order
func (s *Schedule) Teams() []string {
	teams := make([]string, len(s.teams))
	copy(teams, s.teams)
	return teams
}

// Games returns a copy of the team's games in document order.
// Unknown teams have no games.
func (s *Schedule) Games(team string) []GameRecord {
	games := s.games[team]
	out := make([]GameRecord, len(games))
	copy(out, games)
	return out
}

// HasTeam reports whether the schedule contains any game for team
func (s *Schedule) HasTeam(team string) bool {
	_, ok := s.games[team]
	return ok
}

// Len returns the number of teams
func (s *Schedule) Len() int {
	return len(s.teams)
}
