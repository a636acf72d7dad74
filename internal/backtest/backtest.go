package backtest

import (
	"fmt"

	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"

	"github.com/reallyasi9/select-the-field/internal/cfp"
)

// fieldSize is how many teams the committee's field holds.
const fieldSize = 12

// compositeMarginScale converts a composite score gap to points.
const compositeMarginScale = 20.0

// compositePredictor retrodicts margins from final composite scores.
type compositePredictor struct {
	scores map[cfp.Team]float64
	base   float64
}

func newCompositePredictor(table cfp.RankTable) *compositePredictor {
	scores := make(map[cfp.Team]float64, len(table))
	values := make([]float64, 0, len(table))
	for _, row := range table {
		scores[row.Team] = row.Score
		values = append(values, row.Score)
	}
	base, _ := stats.Mean(values)
	return &compositePredictor{scores: scores, base: base}
}

func (c *compositePredictor) PredictMargin(home, away cfp.Team, neutral bool) float64 {
	homeScore, ok := c.scores[home]
	if !ok {
		homeScore = c.base
	}
	awayScore, ok := c.scores[away]
	if !ok {
		awayScore = c.base
	}
	hfa := 3.5
	if neutral {
		hfa = 0
	}
	return (homeScore-awayScore)*compositeMarginScale + hfa
}

// MethodResult holds every metric for one ranking method in one season.
type MethodResult struct {
	Spearman   SpearmanResult
	Selection  SelectionAccuracy
	Seeding    SeedingAccuracy
	Prediction PredictionAccuracy
	Field      []cfp.Team
}

// SeasonResult holds the metrics for one season. Baseline results are nil
// when baselines were not requested.
type SeasonResult struct {
	Year  int
	Games int
	Teams int

	Composite MethodResult
	Elo       *MethodResult
	SRS       *MethodResult
	HomeField *MethodResult
}

// evaluate scores one ranking order against the committee's field.
func evaluate(ranks map[cfp.Team]int, order, committee []cfp.Team, gl cfp.GameLog, p Predictor) MethodResult {
	field := order
	if len(field) > fieldSize {
		field = field[:fieldSize]
	}

	modelSeeds := make(map[cfp.Team]int, len(field))
	for i, t := range field {
		modelSeeds[t] = i + 1
	}
	committeeSeeds := make(map[cfp.Team]int, len(committee))
	for i, t := range committee {
		committeeSeeds[t] = i + 1
	}

	return MethodResult{
		Spearman:   SpearmanCorrelation(ranks, committee),
		Selection:  MeasureSelection(field, committee),
		Seeding:    MeasureSeeding(modelSeeds, committeeSeeds),
		Prediction: MeasurePredictions(gl, p),
		Field:      field,
	}
}

// ranksFromOrder assigns 1-based ranks in slice order.
func ranksFromOrder(order []cfp.Team) map[cfp.Team]int {
	ranks := make(map[cfp.Team]int, len(order))
	for i, t := range order {
		ranks[t] = i + 1
	}
	return ranks
}

// RunSeason backtests one season's game log against the committee's
// historical field.
func RunSeason(year int, gl cfp.GameLog, includeBaselines bool) (*SeasonResult, error) {
	committee, ok := HistoricalField(year)
	if !ok {
		return nil, fmt.Errorf("RunSeason: no committee field on record for %d", year)
	}
	if len(gl) == 0 {
		return nil, fmt.Errorf("RunSeason: no games for %d", year)
	}

	table := cfp.CompositeRankings(gl)
	if len(table) == 0 {
		return nil, fmt.Errorf("RunSeason: no teams ranked for %d", year)
	}

	order := make([]cfp.Team, len(table))
	ranks := make(map[cfp.Team]int, len(table))
	for i, row := range table {
		order[i] = row.Team
		ranks[row.Team] = row.Rank
	}

	result := &SeasonResult{
		Year:      year,
		Games:     len(gl),
		Teams:     len(table),
		Composite: evaluate(ranks, order, committee, gl, newCompositePredictor(table)),
	}

	if !includeBaselines {
		return result, nil
	}

	elo := NewSimpleElo()
	eloOrder := rankByRating(elo.ProcessSeason(gl))
	eloResult := evaluate(ranksFromOrder(eloOrder), eloOrder, committee, gl, elo)
	result.Elo = &eloResult

	srs := NewSimpleSRS()
	srsOrder := rankByRating(srs.CalculateRatings(gl))
	srsResult := evaluate(ranksFromOrder(srsOrder), srsOrder, committee, gl, srs)
	result.SRS = &srsResult

	home := NewHomeFieldBaseline()
	homeOrder := rankByRating(home.Ratings(gl))
	homeResult := evaluate(ranksFromOrder(homeOrder), homeOrder, committee, gl, home)
	result.HomeField = &homeResult

	return result, nil
}

// RunSeasons backtests several seasons, loading each log with the given
// function. A season that fails is logged and skipped so one bad download
// does not sink the whole run.
func RunSeasons(years []int, load func(year int) (cfp.GameLog, error), includeBaselines bool) []SeasonResult {
	results := make([]SeasonResult, 0, len(years))
	for _, year := range years {
		gl, err := load(year)
		if err != nil {
			log.WithField("year", year).WithError(err).Warn("season load failed, skipping")
			continue
		}
		result, err := RunSeason(year, gl, includeBaselines)
		if err != nil {
			log.WithField("year", year).WithError(err).Warn("season backtest failed, skipping")
			continue
		}
		results = append(results, *result)
	}
	return results
}
