package cfp

import (
	"math"

	"github.com/atgjack/prob"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// SORBaselineRating is the 0-1 scale rating of the hypothetical
	// "average top-25" team whose chances the SOR measures.
	SORBaselineRating = 0.75

	// SORRatingScale is the logistic scale of the baseline win probability.
	SORRatingScale = 0.25

	// sorNormalCutoff is the opponent count at which the Normal
	// approximation to the Poisson binomial takes over from the Binomial
	// one.  The exact distribution is O(2^n) and intentionally not
	// implemented.
	sorNormalCutoff = 20

	// sorProbFloor keeps a perfect season against a murderous schedule
	// from producing -log10(0).
	sorProbFloor = 1e-10

	// TwoHopWeight is the share of SOS carried by opponents' opponents.
	TwoHopWeight = 0.33

	// BadLossThreshold marks losses to teams ranked below it as bad.
	BadLossThreshold = 25
)

// baselineWinProb is the probability the baseline team beats an opponent
// with the given 0-1 rating.
func baselineWinProb(oppRating float64) float64 {
	diff := SORBaselineRating - oppRating
	return 1 / (1 + math.Pow(10, -diff/SORRatingScale))
}

// SORScore measures how hard the record was to earn against this exact
// opponent set: the probability that the baseline team posts at least this
// many wins, reported as -log10 so that higher means harder-earned.
//
// The per-opponent win probabilities form a Poisson binomial.  With 20 or
// more opponents a continuity-corrected Normal approximation is used;
// otherwise a Binomial on the mean per-game probability.
func SORScore(rec Record, oppRatings []float64) float64 {
	if rec.Games() == 0 {
		return 0
	}

	winProbs := make([]float64, len(oppRatings))
	for i, r := range oppRatings {
		winProbs[i] = baselineWinProb(r)
	}

	var p float64
	if len(winProbs) >= sorNormalCutoff {
		var mu, variance float64
		for _, wp := range winProbs {
			mu += wp
			variance += wp * (1 - wp)
		}
		sigma := math.Sqrt(variance)
		if sigma > 0 {
			z := (float64(rec.Wins) - 0.5 - mu) / sigma
			normal := prob.Normal{Mu: 0, Sigma: 1}
			p = 1 - normal.Cdf(z)
		} else if float64(rec.Wins) >= mu {
			p = 1
		}
	} else {
		avg := 0.5
		if len(winProbs) > 0 {
			avg, _ = stats.Mean(winProbs)
		}
		binomial := distuv.Binomial{N: float64(rec.Games()), P: avg}
		p = 1 - binomial.CDF(float64(rec.Wins-1))
	}

	return -math.Log10(math.Max(p, sorProbFloor))
}

// SOSScore blends direct opponents' win percentage with their opponents'
// (two-hop) win percentage, 0.67/0.33.  Higher means a tougher schedule.
// Each element of twoHop holds one direct opponent's opponents' records.
func SOSScore(oppRecords []Record, twoHop [][]Record) float64 {
	if len(oppRecords) == 0 {
		return 0
	}

	oppPcts := make([]float64, len(oppRecords))
	for i, r := range oppRecords {
		oppPcts[i] = r.WinPct()
	}
	avgOpp, _ := stats.Mean(oppPcts)

	if len(twoHop) == 0 {
		return avgOpp
	}

	hopPcts := make([]float64, 0, len(twoHop))
	for _, records := range twoHop {
		pcts := make([]float64, 0, len(records))
		for _, r := range records {
			if r.Games() > 0 {
				pcts = append(pcts, r.WinPct())
			}
		}
		if len(pcts) > 0 {
			m, _ := stats.Mean(pcts)
			hopPcts = append(hopPcts, m)
		}
	}
	avgHop := 0.5
	if len(hopPcts) > 0 {
		avgHop, _ = stats.Mean(hopPcts)
	}

	return (1-TwoHopWeight)*avgOpp + TwoHopWeight*avgHop
}

// QualityWins counts wins over opponents at the standard rank thresholds.
type QualityWins struct {
	Top5  int
	Top12 int
	Top25 int
}

// CountQualityWins tallies the ranks of beaten opponents at each threshold.
func CountQualityWins(beatenOppRanks []int) QualityWins {
	var qw QualityWins
	for _, rank := range beatenOppRanks {
		if rank <= 5 {
			qw.Top5++
		}
		if rank <= 12 {
			qw.Top12++
		}
		if rank <= 25 {
			qw.Top25++
		}
	}
	return qw
}

// CountBadLosses returns the number of losses to teams ranked below the bad
// loss threshold, along with those opponents' ranks.
func CountBadLosses(lossOppRanks []int) (int, []int) {
	bad := make([]int, 0)
	for _, rank := range lossOppRanks {
		if rank > BadLossThreshold {
			bad = append(bad, rank)
		}
	}
	return len(bad), bad
}

// resumeInputs derives, for one team, its opponents in log order, their
// records, and their opponents' records.  Games involving the team itself
// are excluded throughout so the team's own results cannot feed back into
// its schedule strength.
func resumeInputs(log GameLog, t Team) (opponents []Team, oppRecords []Record, twoHop [][]Record) {
	for _, g := range log.TeamGames(t) {
		opp := g.Opponent(t)
		opponents = append(opponents, opp)
		oppRecords = append(oppRecords, recordExcluding(log, opp, t))

		var hop []Record
		for _, og := range log.TeamGames(opp) {
			if og.HomeTeam == t || og.AwayTeam == t {
				continue
			}
			far := og.Opponent(opp)
			hop = append(hop, recordExcluding(log, far, t))
		}
		twoHop = append(twoHop, hop)
	}
	return opponents, oppRecords, twoHop
}

// recordExcluding is t's record ignoring any game involving skip.
func recordExcluding(log GameLog, t, skip Team) Record {
	var r Record
	for _, g := range log.TeamGames(t) {
		if g.HomeTeam == skip || g.AwayTeam == skip {
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
