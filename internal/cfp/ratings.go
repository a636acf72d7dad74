package cfp

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Ratings maps a team to its scalar rating under one rating system.
type Ratings map[Team]float64

func (r Ratings) String() string {
	teams := make([]Team, 0, len(r))
	for t := range r {
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool { return r[teams[i]] > r[teams[j]] })
	var b strings.Builder
	for i, t := range teams {
		b.WriteString(fmt.Sprintf("%3d. %-30s %8.3f\n", i+1, t, r[t]))
	}
	return b.String()
}

// teamIndex assigns each team a row in the rating systems' linear algebra.
func teamIndex(teams []Team) map[Team]int {
	idx := make(map[Team]int, len(teams))
	for i, t := range teams {
		idx[t] = i
	}
	return idx
}

// colleyMatrix builds the matrix shared by the Colley and Massey systems:
// diagonal entries are games played plus two, off-diagonal entries are the
// negated count of games between the two teams.
func colleyMatrix(log GameLog, teams []Team, idx map[Team]int) *mat.Dense {
	n := len(teams)
	c := mat.NewDense(n, n, nil)
	for _, g := range log {
		hi := idx[g.HomeTeam]
		ai := idx[g.AwayTeam]
		c.Set(hi, hi, c.At(hi, hi)+1)
		c.Set(ai, ai, c.At(ai, ai)+1)
		c.Set(hi, ai, c.At(hi, ai)-1)
		c.Set(ai, hi, c.At(ai, hi)-1)
	}
	for i := 0; i < n; i++ {
		c.Set(i, i, c.At(i, i)+2)
	}
	return c
}

// solveRatings solves c·r = b and maps the solution back onto teams.
// A singular system is a recoverable condition: callers substitute a neutral
// rating rather than aborting the season.
func solveRatings(c *mat.Dense, b *mat.VecDense, teams []Team) (Ratings, error) {
	var r mat.VecDense
	if err := r.SolveVec(c, b); err != nil {
		return nil, fmt.Errorf("solveRatings: system is singular: %w", err)
	}
	ratings := make(Ratings, len(teams))
	for i, t := range teams {
		ratings[t] = r.AtVec(i)
	}
	return ratings, nil
}
