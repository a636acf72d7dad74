// Package backtest scores the ranking pipeline against the committee's
// actual selections and against simple baseline models.
package backtest

import "github.com/reallyasi9/select-the-field/internal/cfp"

// historicalCFPField lists the committee's final top 12 for each season,
// in rank order. For seasons before the 12-team era these are the teams the
// committee would have selected under the current format.
var historicalCFPField = map[int][]cfp.Team{
	2023: {
		"Michigan", "Washington", "Texas", "Alabama", "Georgia", "Florida State",
		"Oregon", "Ohio State", "Missouri", "Penn State", "Ole Miss", "Oklahoma",
	},
	2022: {
		"Georgia", "Michigan", "TCU", "Ohio State", "Alabama", "Tennessee",
		"Penn State", "Washington", "Clemson", "Kansas State", "Utah", "USC",
	},
	2021: {
		"Alabama", "Michigan", "Georgia", "Cincinnati", "Notre Dame", "Ohio State",
		"Baylor", "Ole Miss", "Oklahoma State", "Michigan State", "Oklahoma", "Pittsburgh",
	},
	2020: {
		"Alabama", "Clemson", "Ohio State", "Notre Dame", "Texas A&M", "Florida",
		"Cincinnati", "Georgia", "Iowa State", "Miami", "North Carolina", "Indiana",
	},
	2019: {
		"LSU", "Ohio State", "Clemson", "Oklahoma", "Georgia", "Oregon",
		"Florida", "Alabama", "Penn State", "Utah", "Wisconsin", "Auburn",
	},
	2018: {
		"Clemson", "Alabama", "Notre Dame", "Oklahoma", "Georgia", "Ohio State",
		"Michigan", "UCF", "Florida", "LSU", "Washington", "Penn State",
	},
	2017: {
		"Clemson", "Oklahoma", "Georgia", "Alabama", "Ohio State", "Wisconsin",
		"Auburn", "USC", "Penn State", "Miami", "Washington", "UCF",
	},
	2016: {
		"Alabama", "Clemson", "Ohio State", "Washington", "Penn State", "Michigan",
		"Oklahoma", "Wisconsin", "USC", "Florida State", "Oklahoma State", "Colorado",
	},
	2015: {
		"Clemson", "Alabama", "Michigan State", "Oklahoma", "Iowa", "Stanford",
		"Ohio State", "Notre Dame", "Florida State", "North Carolina", "TCU", "Ole Miss",
	},
	2014: {
		"Alabama", "Oregon", "Florida State", "Ohio State", "Baylor", "TCU",
		"Michigan State", "Mississippi State", "Georgia Tech", "Ole Miss", "Arizona", "Kansas State",
	},
}

// HistoricalField returns the committee's final top 12 for a season in rank
// order, or false if the season is not on record.
func HistoricalField(year int) ([]cfp.Team, bool) {
	field, ok := historicalCFPField[year]
	return field, ok
}
