package cfp

import "fmt"

// DefaultTiebreakTolerance is the composite score gap below which two teams
// are considered effectively tied.
const DefaultTiebreakTolerance = 0.01

// ResolveTie compares two teams the way the committee would.  Teams whose
// scores differ by at least the tolerance are split on score alone.
// Otherwise the cascade runs: head-to-head (first decisive meeting in log
// order; multiple meetings are not aggregated), then SOS rank, then SOR
// rank, then raw composite score.  A record-vs-common-opponents step is a
// known gap in the cascade and intentionally absent.
//
// Returns the winning team and a human-readable reason.
func ResolveTie(a, b RankedTeam, log GameLog, sosRanks, sorRanks map[Team]int, tolerance float64) (Team, string) {
	diff := a.Score - b.Score
	if diff < 0 {
		diff = -diff
	}
	if diff >= tolerance {
		winner := a.Team
		if b.Score > a.Score {
			winner = b.Team
		}
		return winner, fmt.Sprintf("Composite score difference (%.3f)", diff)
	}

	for _, g := range log {
		if g.Opponent(a.Team) != b.Team || g.HomeScore == g.AwayScore {
			continue
		}
		winner := g.Winner()
		return winner, fmt.Sprintf("Head-to-head: %s defeated %s", winner, g.Loser())
	}

	sosA := rankOrPlaceholder(sosRanks, a.Team)
	sosB := rankOrPlaceholder(sosRanks, b.Team)
	if sosA != sosB {
		winner := a.Team
		if sosB < sosA {
			winner = b.Team
		}
		return winner, fmt.Sprintf("Strength of Schedule (SOS rank: %d vs %d)", min(sosA, sosB), max(sosA, sosB))
	}

	sorA := rankOrPlaceholder(sorRanks, a.Team)
	sorB := rankOrPlaceholder(sorRanks, b.Team)
	if sorA != sorB {
		winner := a.Team
		if sorB < sorA {
			winner = b.Team
		}
		return winner, fmt.Sprintf("Strength of Record (SOR rank: %d vs %d)", min(sorA, sorB), max(sorA, sorB))
	}

	winner := a.Team
	if b.Score > a.Score {
		winner = b.Team
	}
	return winner, "Composite score (marginal difference)"
}

func rankOrPlaceholder(ranks map[Team]int, t Team) int {
	if r, ok := ranks[t]; ok {
		return r
	}
	return UnrankedPlaceholder
}
