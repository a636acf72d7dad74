// Command fieldsim ranks a season of games, selects the 12-team playoff
// field under the 5+7 protocol, seeds it, and prints the bracket.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"

	log "github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"

	"github.com/reallyasi9/select-the-field/internal/cfbdata"
	"github.com/reallyasi9/select-the-field/internal/cfp"
)

var year = flag.Int("year", 2023, "Season `year` to rank")
var startWeek = flag.Int("start-week", 1, "First `week` of the season to include")
var cacheDir = flag.String("cache", "data", "`directory` for cached season files")
var projectID = flag.String("project", "", "Google Cloud `project` to load the season from if not cached (optional)")
var championsFile = flag.String("champions", "", "YAML `file` mapping conference names to their champions")
var autoBids = flag.Int("auto", cfp.DefaultAutoBids, "`number` of automatic bids for conference champions")
var atLarge = flag.Int("atlarge", cfp.DefaultAtLarge, "`number` of at-large bids")
var topN = flag.Int("top", 25, "`number` of ranking rows to print")
var htmlOut = flag.String("html", "", "write an HTML bracket to this `file` (optional)")
var adjustConf = flag.Bool("conference-adjust", false, "apply conference tier multipliers to composite scores")
var showConferences = flag.Bool("conferences", false, "print conference strength and schedule inequality")

// championsConfig is the YAML shape of the champions file.
type championsConfig struct {
	Champions map[string]string `yaml:"champions"`
}

func loadChampions(path string) (map[cfp.Team]cfp.ChampionFlag, error) {
	flags := make(map[cfp.Team]cfp.ChampionFlag)
	if path == "" {
		return flags, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading champions file: %w", err)
	}
	var config championsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing champions file: %w", err)
	}

	for conference, team := range config.Champions {
		flags[cfp.Team(team)] = cfp.ChampionFlag{IsChampion: true, Conference: conference}
	}
	return flags, nil
}

// loadSeason finds a season's game log: the local cache first, then
// Firestore if a project is given, then the API.
func loadSeason(ctx context.Context) (cfp.GameLog, error) {
	cache := cfbdata.NewCache(*cacheDir)
	if games, ok, err := cache.Load(*year); err != nil {
		return nil, err
	} else if ok {
		log.WithFields(log.Fields{"year": *year, "games": len(games)}).Info("loaded season from cache")
		return games, nil
	}

	if *projectID != "" {
		store, err := cfbdata.NewSeasonStore(ctx, *projectID)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		games, err := store.LoadSeason(ctx, *year)
		if err == nil {
			log.WithFields(log.Fields{"year": *year, "games": len(games)}).Info("loaded season from firestore")
			return games, nil
		}
		log.WithError(err).Warn("firestore load failed, falling back to API")
	}

	apiKey, err := cfbdata.LoadAPIKey()
	if err != nil {
		return nil, err
	}
	games, err := cfbdata.NewClient(apiKey).SeasonGames(ctx, *year, *startWeek)
	if err != nil {
		return nil, err
	}
	if err := cache.Save(*year, games); err != nil {
		log.WithError(err).Warn("cache write failed")
	}
	return games, nil
}

func main() {
	flag.Parse()
	ctx := context.Background()

	games, err := loadSeason(ctx)
	if err != nil {
		log.WithError(err).Fatal("season load failed")
	}

	champions, err := loadChampions(*championsFile)
	if err != nil {
		log.WithError(err).Fatal("champions load failed")
	}
	if len(champions) == 0 {
		log.Warn("no conference champions given: every bid will be at-large")
	}

	table := cfp.CompositeRankings(games)
	conferences := games.Conferences()

	if *showConferences {
		printConferences(games, table)
	}

	ranked := make([]cfp.RankedTeam, len(table))
	for i, row := range table {
		score := row.Score
		if *adjustConf {
			score = cfp.AdjustForConference(score, conferences[row.Team])
		}
		ranked[i] = cfp.RankedTeam{
			Team:       row.Team,
			Rank:       row.Rank,
			Score:      score,
			Record:     row.Record,
			Conference: conferences[row.Team],
			Champion:   champions[row.Team],
		}
	}
	if *adjustConf {
		reorderByScore(ranked)
	}

	printRankings(table, *topN)

	sel := cfp.SelectField(ranked, *autoBids, *atLarge)
	fmt.Println()
	for _, line := range sel.AuditLog {
		fmt.Println(line)
	}

	explainBubble(ranked, sel, games, table)

	seeded := cfp.SeedField(sel)
	bracket, err := cfp.BuildBracket(seeded)
	if err != nil {
		log.WithError(err).Fatal("bracket construction failed")
	}

	fmt.Println()
	fmt.Print(cfp.RenderBracket(seeded, bracket, fmt.Sprintf("%d College Football Playoff Bracket", *year)))

	if *htmlOut != "" {
		if err := os.WriteFile(*htmlOut, []byte(cfp.RenderBracketHTML(seeded, bracket)), 0644); err != nil {
			log.WithError(err).Fatal("HTML bracket write failed")
		}
		log.WithField("file", *htmlOut).Info("HTML bracket written")
	}
}

// reorderByScore re-sorts and re-ranks after conference adjustment.
func reorderByScore(ranked []cfp.RankedTeam) {
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Team < ranked[j].Team
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
}

func printRankings(table cfp.RankTable, n int) {
	if n > len(table) {
		n = len(table)
	}
	fmt.Printf("%-4s %-25s %-7s %-8s %-8s %-8s %s\n", "Rank", "Team", "Record", "Score", "SOR", "SOS", "Q-Wins (T5/T12/T25)")
	for _, row := range table[:n] {
		fmt.Printf("%-4d %-25s %-7s %-8.4f #%-7d #%-7d %d/%d/%d\n",
			row.Rank, row.Team, row.Record, row.Score, row.SORRank, row.SOSRank,
			row.QualityWins.Top5, row.QualityWins.Top12, row.QualityWins.Top25)
	}
}

// explainBubble prints the tiebreak verdict when the last team in and the
// first team out are effectively tied.
func explainBubble(ranked []cfp.RankedTeam, sel cfp.PlayoffSelection, games cfp.GameLog, table cfp.RankTable) {
	if len(sel.Field) == 0 {
		return
	}
	inField := make(map[cfp.Team]bool, len(sel.Field))
	for _, t := range sel.Field {
		inField[t.Team] = true
	}

	lastIn := sel.Field[len(sel.Field)-1]
	var firstOut *cfp.RankedTeam
	for i := range ranked {
		if !inField[ranked[i].Team] {
			firstOut = &ranked[i]
			break
		}
	}
	if firstOut == nil {
		return
	}
	if math.Abs(lastIn.Score-firstOut.Score) >= cfp.DefaultTiebreakTolerance {
		return
	}

	winner, reason := cfp.ResolveTie(lastIn, *firstOut, games, table.SOSRanks(), table.SORRanks(), cfp.DefaultTiebreakTolerance)
	fmt.Printf("\nBubble: %s vs %s is a virtual tie. %s holds the spot. Reason: %s\n",
		lastIn.Team, firstOut.Team, winner, reason)
}

func printConferences(games cfp.GameLog, table cfp.RankTable) {
	strength := cfp.ConferenceStrength(games)
	names := make([]string, 0, len(strength))
	for conference := range strength {
		names = append(names, conference)
	}
	sort.Strings(names)

	fmt.Printf("%-20s %-5s %s\n", "Conference", "Tier", "Non-conference win pct")
	for _, conference := range names {
		fmt.Printf("%-20s %-5s %.3f\n", conference, cfp.ConferenceTier(conference), strength[conference])
	}

	sos := make(map[cfp.Team]float64, len(table))
	for _, row := range table {
		sos[row.Team] = row.SOS
	}
	fmt.Printf("Schedule inequality (SOS spread): %.4f\n", cfp.ScheduleInequality(sos))
}
