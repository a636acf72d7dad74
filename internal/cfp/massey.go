package cfp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// MasseyRatings solves the Colleyized Massey system for the season: the same
// matrix as Colley, but the right-hand side accumulates each game's
// home-field-adjusted, cap-clipped score differential.
func MasseyRatings(log GameLog) (Ratings, error) {
	teams := log.Teams()
	if len(teams) == 0 {
		return Ratings{}, nil
	}
	idx := teamIndex(teams)
	c := colleyMatrix(log, teams, idx)

	p := mat.NewVecDense(len(teams), nil)
	for _, g := range log {
		margin := adjustedMargin(float64(g.Margin()), g.NeutralSite)
		hi := idx[g.HomeTeam]
		ai := idx[g.AwayTeam]
		p.SetVec(hi, p.AtVec(hi)+margin)
		p.SetVec(ai, p.AtVec(ai)-margin)
	}

	ratings, err := solveRatings(c, p, teams)
	if err != nil {
		return nil, fmt.Errorf("MasseyRatings: %w", err)
	}
	return ratings, nil
}
