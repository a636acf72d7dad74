// Command fetcher downloads a season of completed FBS games from
// CollegeFootballData.com, caches it locally, and optionally mirrors it to
// Firestore.
package main

import (
	"context"
	"flag"

	log "github.com/sirupsen/logrus"

	"github.com/reallyasi9/select-the-field/internal/cfbdata"
)

var year = flag.Int("year", 2023, "Season `year` to download")
var startWeek = flag.Int("start-week", 1, "First `week` of the season to include")
var cacheDir = flag.String("cache", "data", "`directory` for cached season files")
var projectID = flag.String("project", "", "Google Cloud `project` to mirror the season to (optional)")
var force = flag.Bool("force", false, "Download even if the season is already cached")

func main() {
	flag.Parse()
	ctx := context.Background()

	cache := cfbdata.NewCache(*cacheDir)
	if !*force {
		if _, ok, err := cache.Load(*year); err != nil {
			log.WithError(err).Fatal("cache read failed")
		} else if ok {
			log.WithField("year", *year).Info("season already cached, use -force to re-download")
			return
		}
	}

	apiKey, err := cfbdata.LoadAPIKey()
	if err != nil {
		log.WithError(err).Fatal("no API key")
	}

	client := cfbdata.NewClient(apiKey)
	games, err := client.SeasonGames(ctx, *year, *startWeek)
	if err != nil {
		log.WithError(err).Fatal("season download failed")
	}

	if err := cache.Save(*year, games); err != nil {
		log.WithError(err).Fatal("cache write failed")
	}
	log.WithFields(log.Fields{"year": *year, "games": len(games)}).Info("season cached")

	if *projectID == "" {
		return
	}

	store, err := cfbdata.NewSeasonStore(ctx, *projectID)
	if err != nil {
		log.WithError(err).Fatal("firestore connection failed")
	}
	defer store.Close()

	if err := store.SaveSeason(ctx, *year, games); err != nil {
		log.WithError(err).Fatal("firestore write failed")
	}
	log.WithField("year", *year).Info("season mirrored to firestore")
}
