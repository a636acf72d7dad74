package cfp

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

// seasonLog is a small season with a clear pecking order: A sweeps, D loses
// out.
func seasonLog() GameLog {
	return NewGameLog([]Game{
		testGame(1, 1, "A", "B", 28, 14),
		testGame(2, 1, "C", "D", 21, 10),
		testGame(3, 2, "A", "C", 31, 10),
		testGame(4, 2, "B", "D", 24, 17),
		testGame(5, 3, "A", "D", 42, 7),
		testGame(6, 3, "B", "C", 20, 17),
	})
}

func TestCompositeRankingsPermutation(t *testing.T) {
	table := CompositeRankings(seasonLog())
	if len(table) != 4 {
		t.Fatalf("got %d rows, want 4", len(table))
	}

	seen := make(map[Team]bool)
	for i, row := range table {
		if seen[row.Team] {
			t.Errorf("%s appears twice", row.Team)
		}
		seen[row.Team] = true

		if row.Rank < 1 || row.Rank > len(table) {
			t.Errorf("%s: rank %d out of range", row.Team, row.Rank)
		}
		if i > 0 {
			if table[i-1].Score < row.Score {
				t.Errorf("table not sorted by score at row %d", i)
			}
			if table[i-1].Rank > row.Rank {
				t.Errorf("ranks not nondecreasing at row %d", i)
			}
		}
	}
	if table[0].Rank != 1 {
		t.Errorf("top row rank: got %d, want 1", table[0].Rank)
	}
}

func TestCompositeRankingsOrder(t *testing.T) {
	table := CompositeRankings(seasonLog())

	if table[0].Team != "A" {
		t.Errorf("undefeated A should rank first, got %s", table[0].Team)
	}
	if table.Rank("D") != len(table) {
		t.Errorf("winless D should rank last, got %d", table.Rank("D"))
	}
}

func TestRankTableLookups(t *testing.T) {
	table := CompositeRankings(seasonLog())

	if _, ok := table.Row("A"); !ok {
		t.Error("Row(A) not found")
	}
	if _, ok := table.Row("Nonesuch"); ok {
		t.Error("Row(Nonesuch) should not be found")
	}
	if got := table.Rank("Nonesuch"); got != UnrankedPlaceholder {
		t.Errorf("unranked team: got %d, want placeholder %d", got, UnrankedPlaceholder)
	}

	sorRanks := table.SORRanks()
	sosRanks := table.SOSRanks()
	if len(sorRanks) != len(table) || len(sosRanks) != len(table) {
		t.Error("rank maps should cover every team")
	}
}

func TestRankTableString(t *testing.T) {
	s := CompositeRankings(seasonLog()).String()
	if !strings.Contains(s, "A") {
		t.Errorf("missing team in table:\n%s", s)
	}
}

func TestNormalizeOver(t *testing.T) {
	teams := []Team{"A", "B", "C"}

	tests := []struct {
		name   string
		values map[Team]float64
		want   map[Team]float64
	}{
		{
			name:   "spread",
			values: map[Team]float64{"A": 2, "B": 1, "C": 0},
			want:   map[Team]float64{"A": 1, "B": 0.5, "C": 0},
		},
		{
			name:   "constant collapses to zero",
			values: map[Team]float64{"A": 7, "B": 7, "C": 7},
			want:   map[Team]float64{"A": 0, "B": 0, "C": 0},
		},
		{
			name:   "empty treated as zero",
			values: map[Team]float64{},
			want:   map[Team]float64{"A": 0, "B": 0, "C": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeOver(teams, tt.values)
			for team, want := range tt.want {
				if math.Abs(got[team]-want) > 1e-12 {
					t.Errorf("%s: got %f, want %f", team, got[team], want)
				}
			}
		})
	}
}

func TestRankDescending(t *testing.T) {
	ranks := rankDescending(map[Team]float64{
		"A": 0.9,
		"B": 0.7,
		"C": 0.7,
		"D": 0.1,
	})

	if ranks["A"] != 1 {
		t.Errorf("A: got %d, want 1", ranks["A"])
	}
	if ranks["B"] != 2 || ranks["C"] != 2 {
		t.Errorf("exact ties should share the lower rank: B=%d C=%d", ranks["B"], ranks["C"])
	}
	if ranks["D"] != 4 {
		t.Errorf("D: got %d, want 4", ranks["D"])
	}
}

// benchmarkLog builds a deterministic season: nTeams teams, each week pairing
// team i against team i+w, higher index winning at home by a varying margin.
func benchmarkLog(nTeams, weeks int) GameLog {
	games := make([]Game, 0, nTeams*weeks/2)
	id := int64(1)
	for w := 1; w <= weeks; w++ {
		for i := 0; i+w < nTeams; i += 2 * w {
			home := Team(fmt.Sprintf("Team %03d", i+w))
			away := Team(fmt.Sprintf("Team %03d", i))
			games = append(games, testGame(id, w, home, away, 21+(i+w)%21, 10+i%10))
			id++
		}
	}
	return NewGameLog(games)
}

func BenchmarkCompositeRankings(b *testing.B) {
	gl := benchmarkLog(64, 12)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		CompositeRankings(gl)
	}
}
