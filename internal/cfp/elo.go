package cfp

import "math"

// EloSolver holds the running state of a sequential Elo pass.  The state is
// private to one solver instance; after ProcessSeason returns, the resulting
// Ratings are final and treated as immutable.
type EloSolver struct {
	k        float64
	hfaBonus float64
	movScale float64
	base     float64
	ratings  Ratings
}

// NewEloSolver makes a solver with the fixed season constants.
func NewEloSolver() *EloSolver {
	return &EloSolver{
		k:        EloKFactor,
		hfaBonus: EloHFABonus,
		movScale: EloMOVScale,
		base:     EloBaseRating,
		ratings:  make(Ratings),
	}
}

// expectedScore is the probability a rating-a team beats a rating-b team.
func expectedScore(a, b float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/EloScale))
}

// movMultiplier converts a raw home score differential into an
// MOV-adjusted actual score via a logistic over the HFA-adjusted,
// cap-clipped differential.
func (e *EloSolver) movMultiplier(scoreDiff float64, neutral bool) float64 {
	adj := adjustedMargin(scoreDiff, neutral)
	return 1 / (1 + math.Pow(10, -adj/e.movScale))
}

// UpdateGame applies one game's result to both teams' ratings.
func (e *EloSolver) UpdateGame(g Game) {
	hfa := e.hfaBonus
	if g.NeutralSite {
		hfa = 0
	}
	home := e.ratings[g.HomeTeam] + hfa
	away := e.ratings[g.AwayTeam]

	homeExpected := expectedScore(home, away)
	scoreDiff := float64(g.Margin())
	sAdj := e.movMultiplier(scoreDiff, g.NeutralSite)

	var homeActual, awayActual float64
	if scoreDiff > 0 {
		homeActual = sAdj
		awayActual = 1 - sAdj
	} else {
		homeActual = 1 - sAdj
		awayActual = sAdj
	}

	e.ratings[g.HomeTeam] += e.k * (homeActual - homeExpected)
	e.ratings[g.AwayTeam] += e.k * (awayActual - (1 - homeExpected))
}

// ProcessSeason replays the ordered log from the base rating and returns the
// final ratings.  The log order is the whole point: games must be applied by
// week then date, so this pass is not parallelizable within a team's games.
func (e *EloSolver) ProcessSeason(log GameLog) Ratings {
	e.ratings = make(Ratings)
	for _, t := range log.Teams() {
		e.ratings[t] = e.base
	}
	for _, g := range log {
		e.UpdateGame(g)
	}
	return e.ratings
}

// EloRatings is the one-shot convenience form of a sequential Elo pass.
func EloRatings(log GameLog) Ratings {
	return NewEloSolver().ProcessSeason(log)
}
