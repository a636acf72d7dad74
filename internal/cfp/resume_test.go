package cfp

import (
	"math"
	"testing"
)

func TestBaselineWinProb(t *testing.T) {
	// Against an opponent rated exactly at the baseline the probability is
	// a coin flip.
	if got := baselineWinProb(SORBaselineRating); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("even matchup: got %f, want 0.5", got)
	}
	if got := baselineWinProb(1.0); got >= 0.5 {
		t.Errorf("stronger opponent should drop the probability below 0.5, got %f", got)
	}
	if got := baselineWinProb(0.0); got <= 0.5 {
		t.Errorf("weaker opponent should raise the probability above 0.5, got %f", got)
	}
}

func TestSORScoreNoGames(t *testing.T) {
	if got := SORScore(Record{}, nil); got != 0 {
		t.Errorf("no games: got %f, want 0", got)
	}
}

func TestSORScoreOrdersWinsByDifficulty(t *testing.T) {
	rec := Record{Wins: 5, Losses: 0}
	easy := []float64{0.2, 0.2, 0.2, 0.2, 0.2}
	hard := []float64{0.9, 0.9, 0.9, 0.9, 0.9}

	easyScore := SORScore(rec, easy)
	hardScore := SORScore(rec, hard)
	if hardScore <= easyScore {
		t.Errorf("5-0 against strong teams (%f) should outscore 5-0 against weak teams (%f)", hardScore, easyScore)
	}
}

func TestSORScoreNormalBranch(t *testing.T) {
	// 25 opponents exercises the Normal approximation.  A perfect record
	// against strong opposition should score very high, and an 0-25 record
	// should score about zero.
	opponents := make([]float64, 25)
	for i := range opponents {
		opponents[i] = 0.85
	}

	perfect := SORScore(Record{Wins: 25}, opponents)
	winless := SORScore(Record{Losses: 25}, opponents)
	if perfect <= winless {
		t.Errorf("perfect record (%f) should outscore winless record (%f)", perfect, winless)
	}
	if winless > 0.01 {
		t.Errorf("a winless record is never hard to achieve, got %f", winless)
	}
}

func TestSOSScore(t *testing.T) {
	tests := []struct {
		name    string
		direct  []Record
		twoHop  [][]Record
		want    float64
		wantTol float64
	}{
		{
			name: "no opponents",
			want: 0,
		},
		{
			name:   "direct only",
			direct: []Record{{Wins: 3, Losses: 1}, {Wins: 1, Losses: 3}},
			want:   0.5, // (0.75 + 0.25) / 2, no two-hop list at all
		},
		{
			name:   "two hop blend",
			direct: []Record{{Wins: 4, Losses: 0}},
			twoHop: [][]Record{{{Wins: 0, Losses: 4}}},
			want:   0.67 * 1.0, // 0.67·1.0 + 0.33·0.0
		},
		{
			name:   "empty inner lists fall back to neutral",
			direct: []Record{{Wins: 4, Losses: 0}},
			twoHop: [][]Record{{}},
			want:   0.67*1.0 + 0.33*0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SOSScore(tt.direct, tt.twoHop)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestCountQualityWins(t *testing.T) {
	qw := CountQualityWins([]int{1, 4, 5, 6, 12, 13, 25, 26, 100})
	if qw.Top5 != 3 {
		t.Errorf("top 5: got %d, want 3", qw.Top5)
	}
	if qw.Top12 != 5 {
		t.Errorf("top 12: got %d, want 5", qw.Top12)
	}
	if qw.Top25 != 7 {
		t.Errorf("top 25: got %d, want 7", qw.Top25)
	}
}

func TestCountBadLosses(t *testing.T) {
	n, ranks := CountBadLosses([]int{3, 25, 26, 90})
	if n != 2 {
		t.Errorf("got %d bad losses, want 2", n)
	}
	if len(ranks) != 2 || ranks[0] != 26 || ranks[1] != 90 {
		t.Errorf("got ranks %v, want [26 90]", ranks)
	}
}

func TestResumeInputsExcludesRatedTeam(t *testing.T) {
	// A beat B, B beat C, C beat A.  From A's perspective, B's record must
	// not include the loss to A, and the two-hop lists must never reach
	// back to A.
	log := NewGameLog([]Game{
		testGame(1, 1, "A", "B", 21, 14),
		testGame(2, 2, "B", "C", 28, 7),
		testGame(3, 3, "C", "A", 17, 10),
	})

	opponents, oppRecords, twoHop := resumeInputs(log, "A")
	if len(opponents) != 2 {
		t.Fatalf("got %d opponents, want 2", len(opponents))
	}

	for i, opp := range opponents {
		switch opp {
		case "B":
			// B is 1-0 with the loss to A excluded.
			if oppRecords[i].Wins != 1 || oppRecords[i].Losses != 0 {
				t.Errorf("B record: got %s, want 1-0", oppRecords[i])
			}
			// B's only other opponent is C, whose game against A is excluded.
			if len(twoHop[i]) != 1 {
				t.Errorf("B two-hop: got %d records, want 1", len(twoHop[i]))
			}
		case "C":
			if oppRecords[i].Wins != 0 || oppRecords[i].Losses != 1 {
				t.Errorf("C record: got %s, want 0-1", oppRecords[i])
			}
		default:
			t.Errorf("unexpected opponent %s", opp)
		}
	}
}
