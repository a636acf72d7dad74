package cfp

import "sort"

// ByeCount is the number of top conference champions that skip the first
// round.
const ByeCount = 4

// SeededTeam is one row of the seeded bracket table.
type SeededTeam struct {
	Seed       int
	Team       Team
	Rank       int
	Record     Record
	Conference string
	Score      float64
	IsBye      bool

	// ChampLabel names the conference a bye seed won.  A champion seeded
	// 5-12 has the label blanked: only bye seeds display their title.
	ChampLabel string
}

// SeedField assigns seeds 1-12.  The champions in the field, in rank order,
// take the bye seeds (fewer byes if fewer champions qualified); everyone
// else fills the remaining seeds strictly by rank regardless of champion
// status.
func SeedField(sel PlayoffSelection) []SeededTeam {
	isAuto := make(map[Team]bool, len(sel.AutoBids))
	for _, t := range sel.AutoBids {
		isAuto[t.Team] = true
	}

	byRank := make([]RankedTeam, len(sel.Field))
	copy(byRank, sel.Field)
	sort.Slice(byRank, func(i, j int) bool { return byRank[i].Rank < byRank[j].Rank })

	byes := make([]RankedTeam, 0, ByeCount)
	for _, t := range byRank {
		if isAuto[t.Team] && len(byes) < ByeCount {
			byes = append(byes, t)
		}
	}
	hasBye := make(map[Team]bool, len(byes))
	for _, t := range byes {
		hasBye[t.Team] = true
	}

	seeded := make([]SeededTeam, 0, len(byRank))
	seed := 1
	for _, t := range byes {
		seeded = append(seeded, SeededTeam{
			Seed:       seed,
			Team:       t.Team,
			Rank:       t.Rank,
			Record:     t.Record,
			Conference: t.Conference,
			Score:      t.Score,
			IsBye:      true,
			ChampLabel: t.Champion.Conference,
		})
		seed++
	}
	for _, t := range byRank {
		if hasBye[t.Team] {
			continue
		}
		seeded = append(seeded, SeededTeam{
			Seed:       seed,
			Team:       t.Team,
			Rank:       t.Rank,
			Record:     t.Record,
			Conference: t.Conference,
			Score:      t.Score,
		})
		seed++
	}
	return seeded
}
