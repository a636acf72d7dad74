package backtest

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/reallyasi9/select-the-field/internal/cfp"
)

// SpearmanResult holds a rank correlation and its two-sided p-value.
type SpearmanResult struct {
	Correlation float64
	PValue      float64
	N           int
}

// SpearmanCorrelation measures how well model ranks agree with the
// committee's order. Only teams the model actually ranked are compared;
// fewer than two common teams yields a zero result with N reporting the
// overlap.
func SpearmanCorrelation(modelRanks map[cfp.Team]int, committee []cfp.Team) SpearmanResult {
	var model, actual []float64
	for i, team := range committee {
		r, ok := modelRanks[team]
		if !ok {
			continue
		}
		actual = append(actual, float64(i+1))
		model = append(model, float64(r))
	}

	n := len(model)
	if n < 2 {
		return SpearmanResult{N: n}
	}

	rho := stat.Correlation(averageRanks(model), averageRanks(actual), nil)

	// Two-sided p-value from the t approximation.
	pValue := 1.0
	if n > 2 && math.Abs(rho) < 1 {
		t := rho * math.Sqrt(float64(n-2)/(1-rho*rho))
		dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
		pValue = 2 * dist.Survival(math.Abs(t))
	} else if math.Abs(rho) >= 1 {
		pValue = 0
	}

	return SpearmanResult{Correlation: rho, PValue: pValue, N: n}
}

// averageRanks converts values to ranks, averaging the ranks of exact ties.
func averageRanks(values []float64) []float64 {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return values[order[i]] < values[order[j]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[order[j+1]] == values[order[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[order[k]] = avg
		}
		i = j + 1
	}
	return ranks
}

// SelectionAccuracy compares a model's playoff field with the committee's.
type SelectionAccuracy struct {
	Accuracy       float64
	Correct        int
	Total          int
	FalsePositives int
	FalseNegatives int
}

// MeasureSelection counts field overlap between the model's field and the
// committee's field.
func MeasureSelection(modelField, committeeField []cfp.Team) SelectionAccuracy {
	model := make(map[cfp.Team]bool, len(modelField))
	for _, t := range modelField {
		model[t] = true
	}
	committee := make(map[cfp.Team]bool, len(committeeField))
	for _, t := range committeeField {
		committee[t] = true
	}

	var acc SelectionAccuracy
	acc.Total = len(committee)
	for t := range model {
		if committee[t] {
			acc.Correct++
		} else {
			acc.FalsePositives++
		}
	}
	for t := range committee {
		if !model[t] {
			acc.FalseNegatives++
		}
	}
	if acc.Total > 0 {
		acc.Accuracy = float64(acc.Correct) / float64(acc.Total)
	}
	return acc
}

// SeedingAccuracy compares seed assignments for teams both fields share.
type SeedingAccuracy struct {
	ExactMatch float64
	WithinOne  float64
	MAE        float64
	RMSE       float64
}

// MeasureSeeding compares model seeds against committee seeds. Teams only
// one side seeded are ignored.
func MeasureSeeding(modelSeeds, committeeSeeds map[cfp.Team]int) SeedingAccuracy {
	var exact, withinOne int
	var errors, squaredErrors []float64

	for team, modelSeed := range modelSeeds {
		committeeSeed, ok := committeeSeeds[team]
		if !ok {
			continue
		}
		diff := math.Abs(float64(modelSeed - committeeSeed))
		if diff == 0 {
			exact++
		}
		if diff <= 1 {
			withinOne++
		}
		errors = append(errors, diff)
		squaredErrors = append(squaredErrors, diff*diff)
	}

	n := len(errors)
	if n == 0 {
		return SeedingAccuracy{}
	}

	mae, _ := stats.Mean(errors)
	mse, _ := stats.Mean(squaredErrors)
	return SeedingAccuracy{
		ExactMatch: float64(exact) / float64(n),
		WithinOne:  float64(withinOne) / float64(n),
		MAE:        mae,
		RMSE:       math.Sqrt(mse),
	}
}

// brierScale converts a predicted margin to a home win probability.
// A seven point favorite wins about 73% of the time.
const brierScale = 7.0

// PredictionAccuracy holds how well a predictor retrodicts game margins.
type PredictionAccuracy struct {
	MAE        float64
	RMSE       float64
	BrierScore float64
}

// MeasurePredictions scores a predictor against every game in the log.
func MeasurePredictions(gl cfp.GameLog, p Predictor) PredictionAccuracy {
	var absErrors, squaredErrors, brierScores []float64

	for _, g := range gl {
		predicted := p.PredictMargin(g.HomeTeam, g.AwayTeam, g.NeutralSite)
		actual := float64(g.Margin())

		err := predicted - actual
		absErrors = append(absErrors, math.Abs(err))
		squaredErrors = append(squaredErrors, err*err)

		probHomeWin := 1 / (1 + math.Exp(-predicted/brierScale))
		actualHomeWin := 0.0
		if actual > 0 {
			actualHomeWin = 1.0
		}
		brierScores = append(brierScores, (probHomeWin-actualHomeWin)*(probHomeWin-actualHomeWin))
	}

	if len(absErrors) == 0 {
		return PredictionAccuracy{}
	}

	mae, _ := stats.Mean(absErrors)
	mse, _ := stats.Mean(squaredErrors)
	brier, _ := stats.Mean(brierScores)
	return PredictionAccuracy{MAE: mae, RMSE: math.Sqrt(mse), BrierScore: brier}
}
