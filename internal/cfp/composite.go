package cfp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Composite blend weights.
const (
	ResumeColleyWeight  = 0.6
	ResumeWinPctWeight  = 0.4
	PredictiveMassey    = 0.5
	PredictiveElo       = 0.5
	CompositeResume     = 0.5
	CompositePredictive = 0.3
	CompositeSOR        = 0.1
	CompositeSOS        = 0.1
)

// UnrankedPlaceholder is the rank reported for a team absent from a table.
const UnrankedPlaceholder = 999

// CompositeScore is one team's row in the final ranking table.
type CompositeScore struct {
	Team            Team
	Rank            int
	Score           float64
	ResumeScore     float64
	PredictiveScore float64
	SOR             float64
	SOS             float64
	SORRank         int
	SOSRank         int
	ColleyRating    float64
	MasseyRating    float64
	EloRating       float64
	WinPct          float64
	Record          Record
	QualityWins     QualityWins
	BadLosses       int
}

// RankTable is the full composite ranking, ordered by rank 1..N.
type RankTable []CompositeScore

// Rank returns a team's dense rank, or the unranked placeholder.
func (rt RankTable) Rank(t Team) int {
	for _, row := range rt {
		if row.Team == t {
			return row.Rank
		}
	}
	return UnrankedPlaceholder
}

// Row returns a team's table row.
func (rt RankTable) Row(t Team) (CompositeScore, bool) {
	for _, row := range rt {
		if row.Team == t {
			return row, true
		}
	}
	return CompositeScore{}, false
}

// SORRanks extracts the team → SOR rank lookup used by the tiebreak cascade.
func (rt RankTable) SORRanks() map[Team]int {
	out := make(map[Team]int, len(rt))
	for _, row := range rt {
		out[row.Team] = row.SORRank
	}
	return out
}

// SOSRanks extracts the team → SOS rank lookup used by the tiebreak cascade.
func (rt RankTable) SOSRanks() map[Team]int {
	out := make(map[Team]int, len(rt))
	for _, row := range rt {
		out[row.Team] = row.SOSRank
	}
	return out
}

func (rt RankTable) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%4s %-30s %-6s %9s %8s %8s\n", "RANK", "TEAM", "REC", "SCORE", "SOR", "SOS"))
	for _, row := range rt {
		b.WriteString(fmt.Sprintf("%4d %-30s %-6s %9.4f %8.3f %8.3f\n",
			row.Rank, row.Team, row.Record, row.Score, row.SOR, row.SOS))
	}
	return b.String()
}

// CompositeRankings runs the full rating pipeline over the season log and
// produces a dense 1..N ranking.  Rating-system failures are recoverable:
// a system that cannot be solved contributes a neutral zero after
// normalization instead of killing the run.
func CompositeRankings(log GameLog) RankTable {
	teams := log.Teams()
	if len(teams) == 0 {
		return RankTable{}
	}

	// The three rating systems are independent of one another; Elo's
	// sequential state is private to its own solver.
	var colley, massey, elo Ratings
	var g errgroup.Group
	g.Go(func() error {
		var err error
		if colley, err = ColleyRatings(log); err != nil {
			logrus.WithError(err).Warn("colley system unsolvable, substituting neutral ratings")
			colley = Ratings{}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if massey, err = MasseyRatings(log); err != nil {
			logrus.WithError(err).Warn("massey system unsolvable, substituting neutral ratings")
			massey = Ratings{}
		}
		return nil
	})
	g.Go(func() error {
		elo = EloRatings(log)
		return nil
	})
	_ = g.Wait()

	records := log.Records()

	colleyNorm := normalizeOver(teams, colley)
	masseyNorm := normalizeOver(teams, massey)
	eloNorm := normalizeOver(teams, elo)

	resume := make(map[Team]float64, len(teams))
	predictive := make(map[Team]float64, len(teams))
	provisional := make(map[Team]float64, len(teams))
	for _, t := range teams {
		resume[t] = ResumeColleyWeight*colleyNorm[t] + ResumeWinPctWeight*records[t].WinPct()
		predictive[t] = PredictiveMassey*masseyNorm[t] + PredictiveElo*eloNorm[t]
		provisional[t] = CompositeResume*resume[t] + CompositePredictive*predictive[t]
	}

	// The provisional composite only ever rates opponents: it feeds SOR and
	// SOS, never the final score directly.
	oppRating := normalizeOver(teams, provisional)

	sor := make(map[Team]float64, len(teams))
	sos := make(map[Team]float64, len(teams))
	for _, t := range teams {
		opponents, oppRecords, twoHop := resumeInputs(log, t)
		ratings := make([]float64, len(opponents))
		for i, opp := range opponents {
			if r, ok := oppRating[opp]; ok {
				ratings[i] = r
			} else {
				ratings[i] = 0.5
			}
		}
		sor[t] = SORScore(records[t], ratings)
		sos[t] = SOSScore(oppRecords, twoHop)
	}

	resumeNorm := normalizeOver(teams, resume)
	predictiveNorm := normalizeOver(teams, predictive)
	sorNorm := normalizeOver(teams, sor)
	sosNorm := normalizeOver(teams, sos)

	sorRanks := rankDescending(sor)
	sosRanks := rankDescending(sos)

	table := make(RankTable, len(teams))
	for i, t := range teams {
		table[i] = CompositeScore{
			Team: t,
			Score: CompositeResume*resumeNorm[t] +
				CompositePredictive*predictiveNorm[t] +
				CompositeSOR*sorNorm[t] +
				CompositeSOS*sosNorm[t],
			ResumeScore:     resume[t],
			PredictiveScore: predictive[t],
			SOR:             sor[t],
			SOS:             sos[t],
			SORRank:         sorRanks[t],
			SOSRank:         sosRanks[t],
			ColleyRating:    colley[t],
			MasseyRating:    massey[t],
			EloRating:       elo[t],
			WinPct:          records[t].WinPct(),
			Record:          records[t],
		}
	}

	// Dense rank 1..N.  Exact score ties fall back to name order purely so
	// repeated runs produce identical tables; selection-critical near-ties
	// go through the tiebreak cascade instead.
	sort.Slice(table, func(i, j int) bool {
		if table[i].Score != table[j].Score {
			return table[i].Score > table[j].Score
		}
		return table[i].Team < table[j].Team
	})
	finalRank := make(map[Team]int, len(teams))
	for i := range table {
		table[i].Rank = i + 1
		finalRank[table[i].Team] = i + 1
	}

	// Quality wins and bad losses need the final ranks.
	for i := range table {
		t := table[i].Team
		var beaten, lostTo []int
		for _, g := range log.TeamGames(t) {
			opp := g.Opponent(t)
			if g.Winner() == t {
				beaten = append(beaten, finalRank[opp])
			} else {
				lostTo = append(lostTo, finalRank[opp])
			}
		}
		table[i].QualityWins = CountQualityWins(beaten)
		table[i].BadLosses, _ = CountBadLosses(lostTo)
	}

	return table
}

// normalizeOver min-max normalizes a rating map over the team set.  Missing
// teams contribute zero, and a degenerate (constant or empty) map normalizes
// to all zeros, which is how a failed rating system stays neutral.
func normalizeOver(teams []Team, values map[Team]float64) map[Team]float64 {
	raw := make([]float64, len(teams))
	for i, t := range teams {
		raw[i] = values[t]
	}
	min, _ := stats.Min(raw)
	max, _ := stats.Max(raw)

	out := make(map[Team]float64, len(teams))
	if max <= min {
		for _, t := range teams {
			out[t] = 0
		}
		return out
	}
	for i, t := range teams {
		out[t] = (raw[i] - min) / (max - min)
	}
	return out
}

// rankDescending assigns min-method ranks with rank 1 for the highest value.
func rankDescending(values map[Team]float64) map[Team]int {
	type pair struct {
		team  Team
		value float64
	}
	pairs := make([]pair, 0, len(values))
	for t, v := range values {
		pairs = append(pairs, pair{t, v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].value != pairs[j].value {
			return pairs[i].value > pairs[j].value
		}
		return pairs[i].team < pairs[j].team
	})

	out := make(map[Team]int, len(pairs))
	for i, p := range pairs {
		if i > 0 && p.value == pairs[i-1].value {
			out[p.team] = out[pairs[i-1].team]
			continue
		}
		out[p.team] = i + 1
	}
	return out
}
