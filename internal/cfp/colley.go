package cfp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ColleyRatings solves the Colley matrix system for the season.  The
// right-hand side is 1 + (wins − losses)/2, so only who beat whom matters,
// never the score.
func ColleyRatings(log GameLog) (Ratings, error) {
	teams := log.Teams()
	if len(teams) == 0 {
		return Ratings{}, nil
	}
	idx := teamIndex(teams)
	c := colleyMatrix(log, teams, idx)

	records := log.Records()
	b := mat.NewVecDense(len(teams), nil)
	for i, t := range teams {
		rec := records[t]
		b.SetVec(i, 1+0.5*float64(rec.Wins-rec.Losses))
	}

	ratings, err := solveRatings(c, b, teams)
	if err != nil {
		return nil, fmt.Errorf("ColleyRatings: %w", err)
	}
	return ratings, nil
}
