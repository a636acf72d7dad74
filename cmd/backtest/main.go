// Command backtest scores the composite ranking pipeline, and optionally
// three baseline models, against the committee's historical selections.
package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/reallyasi9/select-the-field/internal/backtest"
	"github.com/reallyasi9/select-the-field/internal/cfbdata"
	"github.com/reallyasi9/select-the-field/internal/cfp"
)

var years = flag.String("years", "2014-2023", "Season `years` to test, as a range (2014-2023) or comma list (2019,2021)")
var startWeek = flag.Int("start-week", 5, "First `week` of each season to include")
var cacheDir = flag.String("cache", "data", "`directory` for cached season files")
var baselines = flag.Bool("baselines", true, "also score the Elo, SRS, and home-field baselines")

func parseYears(s string) ([]int, error) {
	if lo, hi, ok := strings.Cut(s, "-"); ok {
		start, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("bad year %q: %w", lo, err)
		}
		end, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("bad year %q: %w", hi, err)
		}
		if end < start {
			return nil, fmt.Errorf("year range %q is backwards", s)
		}
		var out []int
		for y := start; y <= end; y++ {
			out = append(out, y)
		}
		return out, nil
	}

	var out []int
	for _, part := range strings.Split(s, ",") {
		y, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad year %q: %w", part, err)
		}
		out = append(out, y)
	}
	return out, nil
}

func main() {
	flag.Parse()
	ctx := context.Background()

	seasons, err := parseYears(*years)
	if err != nil {
		log.WithError(err).Fatal("bad -years flag")
	}

	cache := cfbdata.NewCache(*cacheDir)
	var client *cfbdata.Client

	load := func(year int) (cfp.GameLog, error) {
		if games, ok, err := cache.Load(year); err != nil {
			return nil, err
		} else if ok {
			return games, nil
		}
		if client == nil {
			apiKey, err := cfbdata.LoadAPIKey()
			if err != nil {
				return nil, err
			}
			client = cfbdata.NewClient(apiKey)
		}
		games, err := client.SeasonGames(ctx, year, *startWeek)
		if err != nil {
			return nil, err
		}
		if err := cache.Save(year, games); err != nil {
			log.WithError(err).Warn("cache write failed")
		}
		return games, nil
	}

	results := backtest.RunSeasons(seasons, load, *baselines)
	if len(results) == 0 {
		log.Fatal("no seasons produced results")
	}

	for _, r := range results {
		fmt.Printf("\n%d (%d games, %d teams)\n", r.Year, r.Games, r.Teams)
		printMethod("composite", &r.Composite)
		printMethod("elo", r.Elo)
		printMethod("srs", r.SRS)
		printMethod("home-field", r.HomeField)
	}

	printSummary(results)
}

func printMethod(name string, m *backtest.MethodResult) {
	if m == nil {
		return
	}
	fmt.Printf("  %-10s spearman=%.4f (p=%.4f)  selection=%.0f%% (%d/%d)  seeding ±1=%.0f%%  MAE=%.2f  RMSE=%.2f  brier=%.4f\n",
		name, m.Spearman.Correlation, m.Spearman.PValue,
		m.Selection.Accuracy*100, m.Selection.Correct, m.Selection.Total,
		m.Seeding.WithinOne*100,
		m.Prediction.MAE, m.Prediction.RMSE, m.Prediction.BrierScore)
}

func printSummary(results []backtest.SeasonResult) {
	var spearman, selection, brier float64
	for _, r := range results {
		spearman += r.Composite.Spearman.Correlation
		selection += r.Composite.Selection.Accuracy
		brier += r.Composite.Prediction.BrierScore
	}
	n := float64(len(results))
	fmt.Printf("\n%d seasons: mean spearman=%.4f  mean selection=%.0f%%  mean brier=%.4f\n",
		len(results), spearman/n, selection/n*100, brier/n)
}
