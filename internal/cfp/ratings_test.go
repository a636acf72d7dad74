package cfp

import (
	"math"
	"testing"
)

const ratingsEps = 1e-9

func TestColleyTwoTeams(t *testing.T) {
	log := NewGameLog([]Game{testGame(1, 1, "A", "B", 28, 14)})

	ratings, err := ColleyRatings(log)
	if err != nil {
		t.Fatal(err)
	}

	// 3a - b = 1.5, -a + 3b = 0.5 solves to a = 0.625, b = 0.375.
	if got := ratings["A"]; math.Abs(got-0.625) > ratingsEps {
		t.Errorf("A: got %f, want 0.625", got)
	}
	if got := ratings["B"]; math.Abs(got-0.375) > ratingsEps {
		t.Errorf("B: got %f, want 0.375", got)
	}
}

func TestColleyAverageIsHalf(t *testing.T) {
	log := NewGameLog([]Game{
		testGame(1, 1, "A", "B", 28, 14),
		testGame(2, 1, "C", "D", 21, 10),
		testGame(3, 2, "A", "C", 17, 13),
		testGame(4, 2, "B", "D", 35, 31),
		testGame(5, 3, "A", "D", 42, 0),
	})

	ratings, err := ColleyRatings(log)
	if err != nil {
		t.Fatal(err)
	}

	var sum float64
	for _, r := range ratings {
		sum += r
	}
	if avg := sum / float64(len(ratings)); math.Abs(avg-0.5) > 1e-6 {
		t.Errorf("average rating: got %f, want 0.5", avg)
	}
	if ratings["A"] <= ratings["D"] {
		t.Errorf("undefeated A (%f) should outrate winless D (%f)", ratings["A"], ratings["D"])
	}
}

func TestMasseyTwoTeams(t *testing.T) {
	// A wins at home by 10; HFA brings the credited margin to 6.25.
	log := NewGameLog([]Game{testGame(1, 1, "A", "B", 24, 14)})

	ratings, err := MasseyRatings(log)
	if err != nil {
		t.Fatal(err)
	}

	if got := ratings["A"]; math.Abs(got-1.5625) > ratingsEps {
		t.Errorf("A: got %f, want 1.5625", got)
	}
	if got := ratings["B"]; math.Abs(got+1.5625) > ratingsEps {
		t.Errorf("B: got %f, want -1.5625", got)
	}
}

func TestMasseyNeutralSiteKeepsFullMargin(t *testing.T) {
	home := NewGameLog([]Game{testGame(1, 1, "A", "B", 24, 14)})
	neutralGame := testGame(1, 1, "A", "B", 24, 14)
	neutralGame.NeutralSite = true
	neutral := NewGameLog([]Game{neutralGame})

	homeRatings, err := MasseyRatings(home)
	if err != nil {
		t.Fatal(err)
	}
	neutralRatings, err := MasseyRatings(neutral)
	if err != nil {
		t.Fatal(err)
	}

	if neutralRatings["A"] <= homeRatings["A"] {
		t.Errorf("neutral win (%f) should credit more than home win (%f)", neutralRatings["A"], homeRatings["A"])
	}
}

func TestMasseyMarginCap(t *testing.T) {
	blowout := NewGameLog([]Game{testGame(1, 1, "A", "B", 70, 0)})
	bigger := NewGameLog([]Game{testGame(1, 1, "A", "B", 90, 0)})

	a, err := MasseyRatings(blowout)
	if err != nil {
		t.Fatal(err)
	}
	b, err := MasseyRatings(bigger)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(a["A"]-b["A"]) > ratingsEps {
		t.Errorf("capped margins should rate equally: %f vs %f", a["A"], b["A"])
	}
}

func TestEloNeutralGame(t *testing.T) {
	g := testGame(1, 1, "A", "B", 28, 21)
	g.NeutralSite = true
	log := NewGameLog([]Game{g})

	ratings := EloRatings(log)

	// Equal base ratings at a neutral site: expected score is 0.5 and the
	// MOV-adjusted actual is the logistic of the 7 point margin.
	sAdj := 1 / (1 + math.Pow(10, -7.0/EloMOVScale))
	wantA := EloBaseRating + EloKFactor*(sAdj-0.5)
	wantB := EloBaseRating + EloKFactor*((1-sAdj)-0.5)

	if got := ratings["A"]; math.Abs(got-wantA) > ratingsEps {
		t.Errorf("A: got %f, want %f", got, wantA)
	}
	if got := ratings["B"]; math.Abs(got-wantB) > ratingsEps {
		t.Errorf("B: got %f, want %f", got, wantB)
	}
	if math.Abs((ratings["A"]-EloBaseRating)+(ratings["B"]-EloBaseRating)) > ratingsEps {
		t.Error("rating changes should be zero-sum")
	}
}

func TestEloDeterministic(t *testing.T) {
	log := NewGameLog([]Game{
		testGame(1, 1, "A", "B", 28, 14),
		testGame(2, 1, "C", "D", 21, 10),
		testGame(3, 2, "A", "C", 17, 13),
		testGame(4, 2, "D", "B", 31, 28),
		testGame(5, 3, "B", "C", 24, 21),
	})

	first := EloRatings(log)
	second := EloRatings(log)
	for team, r := range first {
		if second[team] != r {
			t.Errorf("%s: %f != %f across runs", team, r, second[team])
		}
	}
}

func TestColleyEmptyLog(t *testing.T) {
	ratings, err := ColleyRatings(GameLog{})
	if err != nil {
		t.Fatal(err)
	}
	if len(ratings) != 0 {
		t.Errorf("empty log produced %d ratings", len(ratings))
	}
}

func BenchmarkColleyRatings(b *testing.B) {
	gl := benchmarkLog(64, 12)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := ColleyRatings(gl); err != nil {
			b.Fatal(err)
		}
	}
}
