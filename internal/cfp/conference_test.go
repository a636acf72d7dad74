package cfp

import (
	"math"
	"testing"
)

func TestConferenceTier(t *testing.T) {
	tests := []struct {
		conference string
		want       Tier
	}{
		{"SEC", TierPower},
		{"Big Ten", TierPower},
		{"Mountain West", TierGroupOfFive},
		{"FBS Independents", TierIndependent},
		{"", TierIndependent},
	}
	for _, tt := range tests {
		if got := ConferenceTier(tt.conference); got != tt.want {
			t.Errorf("%q: got %s, want %s", tt.conference, got, tt.want)
		}
	}
}

func TestAdjustForConference(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		conference string
		want       float64
	}{
		{"power boost", 0.8, "SEC", 0.84},
		{"power boost capped at one", 0.99, "Big Ten", 1.0},
		{"group of five penalty", 0.8, "Sun Belt", 0.76},
		{"independent unchanged", 0.8, "FBS Independents", 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AdjustForConference(tt.score, tt.conference); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestConferenceStrength(t *testing.T) {
	cross := testGame(1, 1, "A", "B", 28, 14)
	cross.HomeConference = "SEC"
	cross.AwayConference = "Big Ten"
	intra := testGame(2, 2, "A", "C", 21, 20)
	intra.HomeConference = "SEC"
	intra.AwayConference = "SEC"

	strength := ConferenceStrength(NewGameLog([]Game{cross, intra}))
	if got := strength["SEC"]; got != 1.0 {
		t.Errorf("SEC: got %f, want 1.0", got)
	}
	if got := strength["Big Ten"]; got != 0.0 {
		t.Errorf("Big Ten: got %f, want 0.0", got)
	}
}

func TestScheduleInequality(t *testing.T) {
	if got := ScheduleInequality(map[Team]float64{"A": 0.6}); got != 0 {
		t.Errorf("single team: got %f, want 0", got)
	}

	even := ScheduleInequality(map[Team]float64{"A": 0.5, "B": 0.5, "C": 0.5})
	if even != 0 {
		t.Errorf("identical schedules: got %f, want 0", even)
	}

	uneven := ScheduleInequality(map[Team]float64{"A": 0.9, "B": 0.5, "C": 0.1})
	if uneven <= 0 {
		t.Errorf("uneven schedules should produce positive spread, got %f", uneven)
	}
}
