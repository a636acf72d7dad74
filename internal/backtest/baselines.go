package backtest

import (
	"math"
	"sort"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/reallyasi9/select-the-field/internal/cfp"
)

// A Predictor estimates the home team's margin of victory before a game is
// played. Margins are positive when the home team is favored.
type Predictor interface {
	PredictMargin(home, away cfp.Team, neutral bool) float64
}

// HomeFieldBaseline always favors the home team by a fixed margin. It is
// the floor every real model has to beat.
type HomeFieldBaseline struct {
	Advantage float64
}

// NewHomeFieldBaseline creates the baseline with the standard 3.5 point
// home advantage.
func NewHomeFieldBaseline() *HomeFieldBaseline {
	return &HomeFieldBaseline{Advantage: 3.5}
}

// PredictMargin implements Predictor. Neutral site games are predicted as
// ties.
func (h *HomeFieldBaseline) PredictMargin(home, away cfp.Team, neutral bool) float64 {
	if neutral {
		return 0
	}
	return h.Advantage
}

// Ratings ranks teams by win percentage, the only signal this baseline has.
func (h *HomeFieldBaseline) Ratings(gl cfp.GameLog) cfp.Ratings {
	ratings := make(cfp.Ratings)
	for team, rec := range gl.Records() {
		ratings[team] = rec.WinPct()
	}
	return ratings
}

// SimpleElo is a plain Elo model with no margin of victory multiplier,
// kept deliberately weaker than the full Elo solver.
type SimpleElo struct {
	K        float64
	Base     float64
	HFABonus float64

	ratings cfp.Ratings
}

// NewSimpleElo creates the baseline with the classic K of 32 and base
// rating of 1500.
func NewSimpleElo() *SimpleElo {
	return &SimpleElo{K: 32, Base: 1500, HFABonus: 55, ratings: make(cfp.Ratings)}
}

func (e *SimpleElo) expectedScore(a, b float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/400))
}

// ProcessSeason replays the log in order and returns the final ratings.
func (e *SimpleElo) ProcessSeason(gl cfp.GameLog) cfp.Ratings {
	e.ratings = make(cfp.Ratings)
	for _, team := range gl.Teams() {
		e.ratings[team] = e.Base
	}

	for _, g := range gl {
		bonus := e.HFABonus
		if g.NeutralSite {
			bonus = 0
		}
		homeExpected := e.expectedScore(e.ratings[g.HomeTeam]+bonus, e.ratings[g.AwayTeam])

		homeActual := 0.0
		if g.HomeScore > g.AwayScore {
			homeActual = 1.0
		}

		e.ratings[g.HomeTeam] += e.K * (homeActual - homeExpected)
		e.ratings[g.AwayTeam] += e.K * ((1 - homeActual) - (1 - homeExpected))
	}
	return e.ratings
}

// PredictMargin implements Predictor by scaling the expected score to
// points, where an expected score of 0.75 is worth about two touchdowns.
func (e *SimpleElo) PredictMargin(home, away cfp.Team, neutral bool) float64 {
	bonus := e.HFABonus
	if neutral {
		bonus = 0
	}
	homeRating, ok := e.ratings[home]
	if !ok {
		homeRating = e.Base
	}
	awayRating, ok := e.ratings[away]
	if !ok {
		awayRating = e.Base
	}

	homeExpected := e.expectedScore(homeRating+bonus, awayRating)
	return (homeExpected - 0.5) * 28
}

// SimpleSRS is the Simple Rating System: each team's rating is its average
// point differential plus the average rating of its opponents, solved as a
// linear system.
type SimpleSRS struct {
	ratings cfp.Ratings
}

// NewSimpleSRS creates an empty SRS model.
func NewSimpleSRS() *SimpleSRS {
	return &SimpleSRS{ratings: make(cfp.Ratings)}
}

// CalculateRatings solves the SRS system for the log. If the system is
// singular the raw average point differentials are used instead.
func (s *SimpleSRS) CalculateRatings(gl cfp.GameLog) cfp.Ratings {
	teams := gl.Teams()
	n := len(teams)
	idx := make(map[cfp.Team]int, n)
	for i, t := range teams {
		idx[t] = i
	}

	pointDiffs := make([]float64, n)
	gameCounts := make([]float64, n)
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		a.Set(i, i, 1)
	}

	for _, g := range gl {
		hi, ai := idx[g.HomeTeam], idx[g.AwayTeam]
		margin := float64(g.Margin())
		pointDiffs[hi] += margin
		pointDiffs[ai] -= margin
		gameCounts[hi]++
		gameCounts[ai]++
	}

	for _, g := range gl {
		hi, ai := idx[g.HomeTeam], idx[g.AwayTeam]
		a.Set(hi, ai, a.At(hi, ai)-1/gameCounts[hi])
		a.Set(ai, hi, a.At(ai, hi)-1/gameCounts[ai])
	}

	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		games := gameCounts[i]
		if games < 1 {
			games = 1
		}
		b.SetVec(i, pointDiffs[i]/games)
	}

	s.ratings = make(cfp.Ratings, n)
	var r mat.VecDense
	if err := r.SolveVec(a, b); err != nil {
		log.WithError(err).Warn("SRS system is singular, falling back to raw point differentials")
		for i, t := range teams {
			s.ratings[t] = b.AtVec(i)
		}
		return s.ratings
	}
	for i, t := range teams {
		s.ratings[t] = r.AtVec(i)
	}
	return s.ratings
}

// PredictMargin implements Predictor. Ratings are already in points, so
// the prediction is the rating gap plus home advantage.
func (s *SimpleSRS) PredictMargin(home, away cfp.Team, neutral bool) float64 {
	homeRating := s.ratings[home]
	if !neutral {
		homeRating += 3.5
	}
	return homeRating - s.ratings[away]
}

// rankByRating orders teams by descending rating, breaking exact ties by
// name so the order is reproducible.
func rankByRating(ratings cfp.Ratings) []cfp.Team {
	teams := make([]cfp.Team, 0, len(ratings))
	for t := range ratings {
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool {
		ri, rj := ratings[teams[i]], ratings[teams[j]]
		if ri != rj {
			return ri > rj
		}
		return teams[i] < teams[j]
	})
	return teams
}
