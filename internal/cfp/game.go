package cfp

import (
	"fmt"
	"sort"
	"time"

	"github.com/segmentio/fasthash/jody"
)

// Team is a school's canonical name.
type Team string

// Game represents one completed game between two teams.
type Game struct {
	ID             int64     `json:"game_id" yaml:"game_id"`
	Week           int       `json:"week" yaml:"week"`
	HomeTeam       Team      `json:"home_team" yaml:"home_team"`
	AwayTeam       Team      `json:"away_team" yaml:"away_team"`
	HomeScore      int       `json:"home_score" yaml:"home_score"`
	AwayScore      int       `json:"away_score" yaml:"away_score"`
	HomeConference string    `json:"home_conference" yaml:"home_conference"`
	AwayConference string    `json:"away_conference" yaml:"away_conference"`
	NeutralSite    bool      `json:"neutral_site" yaml:"neutral_site"`
	Date           time.Time `json:"date" yaml:"date"`
}

// Winner returns the winning team.  Ties do not happen in this sport.
func (g Game) Winner() Team {
	if g.HomeScore > g.AwayScore {
		return g.HomeTeam
	}
	return g.AwayTeam
}

// Loser returns the losing team.
func (g Game) Loser() Team {
	if g.HomeScore > g.AwayScore {
		return g.AwayTeam
	}
	return g.HomeTeam
}

// Margin returns the home team's margin of victory (negative for a home loss).
func (g Game) Margin() int {
	return g.HomeScore - g.AwayScore
}

// Opponent returns the other team in the game, or "" if t did not play in it.
func (g Game) Opponent(t Team) Team {
	switch t {
	case g.HomeTeam:
		return g.AwayTeam
	case g.AwayTeam:
		return g.HomeTeam
	}
	return ""
}

// GameLog is a season's completed games, ordered by week then date.
/// It is treated as immutable once built: every rating and rank in the
// pipeline derives from the log plus fixed constants.
type GameLog []Game

// NewGameLog copies games into a log sorted by (week, date, id).
func NewGameLog(games []Game) GameLog {
	log := make(GameLog, len(games))
	copy(log, games)
	sort.SliceStable(log, func(i, j int) bool {
		if log[i].Week != log[j].Week {
			return log[i].Week < log[j].Week
		}
		if !log[i].Date.Equal(log[j].Date) {
			return log[i].Date.Before(log[j].Date)
		}
		return log[i].ID < log[j].ID
	})
	return log
}

// Teams returns the sorted set of all teams appearing in the log.
func (log GameLog) Teams() []Team {
	seen := make(map[Team]bool)
	for _, g := range log {
		seen[g.HomeTeam] = true
		seen[g.AwayTeam] = true
	}
	teams := make([]Team, 0, len(seen))
	for t := range seen {
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i] < teams[j] })
	return teams
}

// TeamGames returns the games in which t played, in log order.
func (log GameLog) TeamGames(t Team) []Game {
	games := make([]Game, 0)
	for _, g := range log {
		if g.HomeTeam == t || g.AwayTeam == t {
			games = append(games, g)
		}
	}
	return games
}

// Record is a team's win-loss record.
type Record struct {
	Wins   int
	Losses int
}

// Games returns the number of games in the record.
func (r Record) Games() int {
	return r.Wins + r.Losses
}

// WinPct returns the record's winning percentage.
// A team with no games gets a neutral 0.5.
func (r Record) WinPct() float64 {
	if r.Games() == 0 {
		return 0.5
	}
	return float64(r.Wins) / float64(r.Games())
}

func (r Record) String() string {
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// Record derives t's win-loss record from the log.
func (log GameLog) Record(t Team) Record {
	var r Record
	for _, g := range log {
		if g.HomeTeam != t && g.AwayTeam != t {
			continue
		}
		if g.Winner() == t {
			r.Wins++
		} else {
			r.Losses++
		}
	}
	return r
}

// Records derives every team's record in one pass.
func (log GameLog) Records() map[Team]Record {
	records := make(map[Team]Record)
	for _, g := range log {
		w := records[g.Winner()]
		w.Wins++
		records[g.Winner()] = w
		l := records[g.Loser()]
		l.Losses++
		records[g.Loser()] = l
	}
	return records
}

// Conferences maps each team to its conference as reported by its games.
// Later games win, which handles midseason data corrections.
func (log GameLog) Conferences() map[Team]string {
	conferences := make(map[Team]string)
	for _, g := range log {
		if g.HomeConference != "" {
			conferences[g.HomeTeam] = g.HomeConference
		}
		if g.AwayConference != "" {
			conferences[g.AwayTeam] = g.AwayConference
		}
	}
	return conferences
}

// Hash returns a stable identity for the ordered log, used to key caches and
// to verify that two runs saw the same season.
func (log GameLog) Hash() uint64 {
	h := jody.HashUint64(uint64(len(log)))
	for _, g := range log {
		h = jody.AddUint64(h, uint64(g.ID))
		h = jody.AddUint64(h, uint64(g.Week))
		h = jody.AddString64(h, string(g.HomeTeam))
		h = jody.AddString64(h, string(g.AwayTeam))
		h = jody.AddUint64(h, uint64(g.HomeScore))
		h = jody.AddUint64(h, uint64(g.AwayScore))
		if g.NeutralSite {
			h = jody.AddUint64(h, 1)
		} else {
			h = jody.AddUint64(h, 0)
		}
	}
	return h
}
