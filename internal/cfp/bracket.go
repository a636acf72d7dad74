package cfp

import "fmt"

// Round names used in bracket matchups.
const (
	RoundFirst        = "First Round"
	RoundQuarterfinal = "Quarterfinals"
)

// Matchup is a single bracket game.  TeamLow may be a "Winner 8/9" style
// placeholder in rounds fed by earlier games.
type Matchup struct {
	Round    string
	GameNum  int
	SeedHigh int
	SeedLow  int
	TeamHigh Team
	TeamLow  Team
	HostTeam Team
	Location string
}

// firstRoundPairs is the fixed on-campus pairing; the bracket never reseeds.
var firstRoundPairs = [4][2]int{{5, 12}, {6, 11}, {7, 10}, {8, 9}}

// quarterfinalFeeds maps each bye seed to the first-round game feeding it.
var quarterfinalFeeds = [4]struct {
	seed int
	feed string
}{
	{1, "8/9"},
	{2, "7/10"},
	{3, "6/11"},
	{4, "5/12"},
}

// Bracket holds the constructed rounds.  Rounds past the quarterfinals are
// presentation-only and not modeled here.
type Bracket struct {
	FirstRound    []Matchup
	Quarterfinals []Matchup
}

// BuildBracket constructs the fixed first-round and quarterfinal structure
// from a seeded field.  A referenced seed missing from the field is an
// upstream invariant violation and fails loudly.
func BuildBracket(seeded []SeededTeam) (*Bracket, error) {
	bySeed := make(map[int]SeededTeam, len(seeded))
	for _, t := range seeded {
		bySeed[t.Seed] = t
	}

	firstRound := make([]Matchup, 0, len(firstRoundPairs))
	for i, pair := range firstRoundPairs {
		high, ok := bySeed[pair[0]]
		if !ok {
			return nil, fmt.Errorf("BuildBracket: seed %d missing from seeded field", pair[0])
		}
		low, ok := bySeed[pair[1]]
		if !ok {
			return nil, fmt.Errorf("BuildBracket: seed %d missing from seeded field", pair[1])
		}
		firstRound = append(firstRound, Matchup{
			Round:    RoundFirst,
			GameNum:  i + 1,
			SeedHigh: pair[0],
			SeedLow:  pair[1],
			TeamHigh: high.Team,
			TeamLow:  low.Team,
			HostTeam: high.Team,
			Location: fmt.Sprintf("Campus of #%d seed", pair[0]),
		})
	}

	quarterfinals := make([]Matchup, 0, len(quarterfinalFeeds))
	for i, qf := range quarterfinalFeeds {
		team, ok := bySeed[qf.seed]
		if !ok {
			return nil, fmt.Errorf("BuildBracket: seed %d missing from seeded field", qf.seed)
		}
		quarterfinals = append(quarterfinals, Matchup{
			Round:    RoundQuarterfinal,
			GameNum:  i + 1,
			SeedHigh: qf.seed,
			TeamHigh: team.Team,
			TeamLow:  Team(fmt.Sprintf("Winner %s", qf.feed)),
			Location: "Bowl Game (Neutral Site)",
		})
	}

	return &Bracket{FirstRound: firstRound, Quarterfinals: quarterfinals}, nil
}
