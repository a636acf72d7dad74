package backtest

import (
	"math"
	"testing"

	"github.com/reallyasi9/select-the-field/internal/cfp"
)

func TestSpearmanCorrelationPerfect(t *testing.T) {
	committee := []cfp.Team{"A", "B", "C", "D", "E"}
	ranks := map[cfp.Team]int{"A": 1, "B": 2, "C": 3, "D": 4, "E": 5}

	got := SpearmanCorrelation(ranks, committee)
	if math.Abs(got.Correlation-1) > 1e-12 {
		t.Errorf("perfect agreement: got %f, want 1", got.Correlation)
	}
	if got.N != 5 {
		t.Errorf("N: got %d, want 5", got.N)
	}
}

func TestSpearmanCorrelationReversed(t *testing.T) {
	committee := []cfp.Team{"A", "B", "C", "D"}
	ranks := map[cfp.Team]int{"A": 4, "B": 3, "C": 2, "D": 1}

	got := SpearmanCorrelation(ranks, committee)
	if math.Abs(got.Correlation+1) > 1e-12 {
		t.Errorf("reversed order: got %f, want -1", got.Correlation)
	}
}

func TestSpearmanCorrelationIgnoresUnrankedTeams(t *testing.T) {
	committee := []cfp.Team{"A", "Ghost", "B", "C"}
	ranks := map[cfp.Team]int{"A": 1, "B": 2, "C": 3}

	got := SpearmanCorrelation(ranks, committee)
	if got.N != 3 {
		t.Errorf("N: got %d, want 3", got.N)
	}
	if math.Abs(got.Correlation-1) > 1e-12 {
		t.Errorf("agreement on common teams: got %f, want 1", got.Correlation)
	}
}

func TestSpearmanCorrelationTooFewTeams(t *testing.T) {
	got := SpearmanCorrelation(map[cfp.Team]int{"A": 1}, []cfp.Team{"A"})
	if got.N != 1 || got.Correlation != 0 {
		t.Errorf("got %+v, want zero result with N=1", got)
	}
}

func TestMeasureSelection(t *testing.T) {
	model := []cfp.Team{"A", "B", "C", "D"}
	committee := []cfp.Team{"A", "B", "E", "F"}

	got := MeasureSelection(model, committee)
	if got.Correct != 2 || got.Total != 4 {
		t.Errorf("correct/total: got %d/%d, want 2/4", got.Correct, got.Total)
	}
	if got.Accuracy != 0.5 {
		t.Errorf("accuracy: got %f, want 0.5", got.Accuracy)
	}
	if got.FalsePositives != 2 || got.FalseNegatives != 2 {
		t.Errorf("FP/FN: got %d/%d, want 2/2", got.FalsePositives, got.FalseNegatives)
	}
}

func TestMeasureSeeding(t *testing.T) {
	model := map[cfp.Team]int{"A": 1, "B": 3, "C": 5, "D": 4}
	committee := map[cfp.Team]int{"A": 1, "B": 2, "C": 8, "D": 4}

	got := MeasureSeeding(model, committee)
	if got.ExactMatch != 0.5 {
		t.Errorf("exact: got %f, want 0.5", got.ExactMatch)
	}
	if got.WithinOne != 0.75 {
		t.Errorf("within one: got %f, want 0.75", got.WithinOne)
	}
	// Errors are 0, 1, 3, 0.
	if math.Abs(got.MAE-1.0) > 1e-12 {
		t.Errorf("MAE: got %f, want 1.0", got.MAE)
	}
	if math.Abs(got.RMSE-math.Sqrt(2.5)) > 1e-12 {
		t.Errorf("RMSE: got %f, want sqrt(2.5)", got.RMSE)
	}
}

func TestMeasureSeedingNoOverlap(t *testing.T) {
	got := MeasureSeeding(map[cfp.Team]int{"A": 1}, map[cfp.Team]int{"B": 1})
	if got != (SeedingAccuracy{}) {
		t.Errorf("no common teams: got %+v, want zero value", got)
	}
}

// fixedPredictor always predicts the same margin.
type fixedPredictor struct{ margin float64 }

func (f fixedPredictor) PredictMargin(home, away cfp.Team, neutral bool) float64 {
	return f.margin
}

func TestMeasurePredictions(t *testing.T) {
	log := cfp.NewGameLog([]cfp.Game{
		{ID: 1, Week: 1, HomeTeam: "A", AwayTeam: "B", HomeScore: 28, AwayScore: 21}, // margin 7
		{ID: 2, Week: 2, HomeTeam: "C", AwayTeam: "D", HomeScore: 14, AwayScore: 17}, // margin -3
	})

	got := MeasurePredictions(log, fixedPredictor{margin: 7})
	// Absolute errors: 0 and 10.
	if math.Abs(got.MAE-5) > 1e-12 {
		t.Errorf("MAE: got %f, want 5", got.MAE)
	}
	if math.Abs(got.RMSE-math.Sqrt(50)) > 1e-12 {
		t.Errorf("RMSE: got %f, want sqrt(50)", got.RMSE)
	}

	// Both games predicted as home wins with probability 1/(1+e^-1).
	p := 1 / (1 + math.Exp(-1))
	wantBrier := ((p-1)*(p-1) + p*p) / 2
	if math.Abs(got.BrierScore-wantBrier) > 1e-12 {
		t.Errorf("brier: got %f, want %f", got.BrierScore, wantBrier)
	}
}

func TestMeasurePredictionsEmptyLog(t *testing.T) {
	got := MeasurePredictions(cfp.GameLog{}, fixedPredictor{})
	if got != (PredictionAccuracy{}) {
		t.Errorf("empty log: got %+v, want zero value", got)
	}
}
