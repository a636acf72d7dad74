package cfbdata

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/iterator"

	"github.com/reallyasi9/select-the-field/internal/cfp"
)

// SeasonStore keeps season game logs in Firestore under
// seasons/{year}/games/{gameID}.
type SeasonStore struct {
	client *firestore.Client
}

// NewSeasonStore connects to the Firestore database of the given project.
func NewSeasonStore(ctx context.Context, projectID string) (*SeasonStore, error) {
	conf := &firebase.Config{ProjectID: projectID}
	app, err := firebase.NewApp(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("SeasonStore: creating firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("SeasonStore: connecting to firestore: %w", err)
	}
	return &SeasonStore{client: client}, nil
}

// Close releases the underlying Firestore connection.
func (s *SeasonStore) Close() error {
	return s.client.Close()
}

// seasonDoc is how a season is stored in Firestore.
type seasonDoc struct {
	Year      int       `firestore:"year"`
	Games     int       `firestore:"games"`
	Hash      int64     `firestore:"hash"`
	Timestamp time.Time `firestore:"timestamp,serverTimestamp"`
}

// gameDoc is how a game is stored in Firestore.
type gameDoc struct {
	ID             int64     `firestore:"id"`
	Week           int       `firestore:"week"`
	HomeTeam       string    `firestore:"home_team"`
	AwayTeam       string    `firestore:"away_team"`
	HomeScore      int       `firestore:"home_score"`
	AwayScore      int       `firestore:"away_score"`
	HomeConference string    `firestore:"home_conference"`
	AwayConference string    `firestore:"away_conference"`
	NeutralSite    bool      `firestore:"neutral_site"`
	Date           time.Time `firestore:"date"`
}

// SaveSeason writes a season and all of its games, replacing any previous
// copy of the season document.
func (s *SeasonStore) SaveSeason(ctx context.Context, year int, log cfp.GameLog) error {
	seasonRef := s.client.Collection("seasons").Doc(strconv.Itoa(year))
	season := seasonDoc{
		Year:  year,
		Games: len(log),
		Hash:  int64(log.Hash()),
	}
	if _, err := seasonRef.Set(ctx, &season); err != nil {
		return fmt.Errorf("SaveSeason: writing season %d: %w", year, err)
	}

	bw := s.client.BulkWriter(ctx)
	gamesCol := seasonRef.Collection("games")
	for _, g := range log {
		doc := gameDoc{
			ID:             g.ID,
			Week:           g.Week,
			HomeTeam:       string(g.HomeTeam),
			AwayTeam:       string(g.AwayTeam),
			HomeScore:      g.HomeScore,
			AwayScore:      g.AwayScore,
			HomeConference: g.HomeConference,
			AwayConference: g.AwayConference,
			NeutralSite:    g.NeutralSite,
			Date:           g.Date,
		}
		if _, err := bw.Set(gamesCol.Doc(strconv.FormatInt(g.ID, 10)), &doc); err != nil {
			return fmt.Errorf("SaveSeason: queueing game %d: %w", g.ID, err)
		}
	}
	bw.End()
	return nil
}

// LoadSeason reads every stored game for a season.
func (s *SeasonStore) LoadSeason(ctx context.Context, year int) (cfp.GameLog, error) {
	gamesItr := s.client.Collection("seasons").Doc(strconv.Itoa(year)).Collection("games").Documents(ctx)
	defer gamesItr.Stop()

	var games []cfp.Game
	for {
		snap, err := gamesItr.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("LoadSeason: reading season %d: %w", year, err)
		}

		var doc gameDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("LoadSeason: parsing game %s: %w", snap.Ref.ID, err)
		}
		games = append(games, cfp.Game{
			ID:             doc.ID,
			Week:           doc.Week,
			HomeTeam:       cfp.Team(doc.HomeTeam),
			AwayTeam:       cfp.Team(doc.AwayTeam),
			HomeScore:      doc.HomeScore,
			AwayScore:      doc.AwayScore,
			HomeConference: doc.HomeConference,
			AwayConference: doc.AwayConference,
			NeutralSite:    doc.NeutralSite,
			Date:           doc.Date,
		})
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("LoadSeason: no games stored for season %d", year)
	}
	return cfp.NewGameLog(games), nil
}

// MostRecentSeason returns the latest season year with stored games.
func (s *SeasonStore) MostRecentSeason(ctx context.Context) (int, error) {
	docItr := s.client.Collection("seasons").OrderBy("year", firestore.Desc).Limit(1).Documents(ctx)
	defer docItr.Stop()

	snap, err := docItr.Next()
	if err == iterator.Done {
		return 0, fmt.Errorf("MostRecentSeason: no seasons stored")
	}
	if err != nil {
		return 0, fmt.Errorf("MostRecentSeason: %w", err)
	}

	var season seasonDoc
	if err := snap.DataTo(&season); err != nil {
		return 0, fmt.Errorf("MostRecentSeason: parsing %s: %w", snap.Ref.ID, err)
	}
	return season.Year, nil
}
