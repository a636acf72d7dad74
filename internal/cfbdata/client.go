// Package cfbdata downloads completed game results from the
// CollegeFootballData.com API and keeps local and Firestore copies of them.
package cfbdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/reallyasi9/select-the-field/internal/cfp"
)

const defaultBaseURL = "https://api.collegefootballdata.com"

// lastRegularWeek is the final week of the regular season fetched by default.
const lastRegularWeek = 15

// LoadAPIKey reads the CFBD_API_KEY environment variable, consulting a .env
// file first if one is present.
func LoadAPIKey() (string, error) {
	_ = godotenv.Load()
	key := os.Getenv("CFBD_API_KEY")
	key = strings.Trim(strings.TrimSpace(key), `"'`)
	if key == "" {
		return "", fmt.Errorf("LoadAPIKey: CFBD_API_KEY not found in environment")
	}
	return key, nil
}

// Client calls the CollegeFootballData.com REST API.
type Client struct {
	// BaseURL is the API root. Override it in tests.
	BaseURL string
	// HTTPClient performs the requests.
	HTTPClient *http.Client

	apiKey string
}

// NewClient creates a Client authenticated with the given bearer token.
func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	u := c.BaseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("cfbdata: building request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("cfbdata: requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("cfbdata: %s returned status %d: %s", path, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("cfbdata: decoding %s response: %w", path, err)
	}
	return nil
}

// FBSTeams fetches the names of every FBS team for a season.
func (c *Client) FBSTeams(ctx context.Context, year int) (map[cfp.Team]bool, error) {
	params := url.Values{}
	params.Set("year", strconv.Itoa(year))

	var teams []struct {
		School string `json:"school"`
	}
	if err := c.get(ctx, "/teams/fbs", params, &teams); err != nil {
		return nil, err
	}

	names := make(map[cfp.Team]bool, len(teams))
	for _, t := range teams {
		names[cfp.Team(t.School)] = true
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("cfbdata: no FBS teams returned for %d", year)
	}
	return names, nil
}

// SeasonGames fetches every completed FBS-vs-FBS regular season game from
// startWeek through week 15. A week that fails to download is logged and
// skipped so a partial season still produces a usable log.
func (c *Client) SeasonGames(ctx context.Context, year, startWeek int) (cfp.GameLog, error) {
	fbs, err := c.FBSTeams(ctx, year)
	if err != nil {
		return nil, err
	}

	var raw []apiGame
	for week := startWeek; week <= lastRegularWeek; week++ {
		params := url.Values{}
		params.Set("year", strconv.Itoa(year))
		params.Set("week", strconv.Itoa(week))
		params.Set("seasonType", "regular")
		params.Set("division", "fbs")

		var games []apiGame
		if err := c.get(ctx, "/games", params, &games); err != nil {
			log.WithFields(log.Fields{"year": year, "week": week}).WithError(err).Warn("week download failed, skipping")
			continue
		}
		raw = append(raw, games...)
	}

	games := make([]cfp.Game, 0, len(raw))
	for _, g := range raw {
		if !fbs[cfp.Team(g.HomeTeam)] || !fbs[cfp.Team(g.AwayTeam)] {
			continue
		}
		if g.HomePoints == nil || g.AwayPoints == nil {
			continue
		}
		games = append(games, cfp.Game{
			ID:             g.ID,
			Week:           g.Week,
			HomeTeam:       cfp.Team(g.HomeTeam),
			AwayTeam:       cfp.Team(g.AwayTeam),
			HomeScore:      *g.HomePoints,
			AwayScore:      *g.AwayPoints,
			HomeConference: g.HomeConference,
			AwayConference: g.AwayConference,
			NeutralSite:    g.NeutralSite,
			Date:           g.Date,
		})
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("cfbdata: no completed FBS games found for %d", year)
	}

	log.WithFields(log.Fields{"year": year, "games": len(games)}).Info("season download complete")
	return cfp.NewGameLog(games), nil
}

// apiGame is one /games entry. The API has served both snake_case and
// camelCase field names over the years, so both spellings are accepted.
type apiGame struct {
	ID             int64
	Week           int
	HomeTeam       string
	AwayTeam       string
	HomePoints     *int
	AwayPoints     *int
	HomeConference string
	AwayConference string
	NeutralSite    bool
	Date           time.Time
}

func (g *apiGame) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	g.ID = pickInt64(raw, "id", "gameId", "game_id")
	g.Week = int(pickInt64(raw, "week"))
	g.HomeTeam = pickString(raw, "homeTeam", "home_team")
	g.AwayTeam = pickString(raw, "awayTeam", "away_team")
	g.HomePoints = pickIntPtr(raw, "homePoints", "home_points")
	g.AwayPoints = pickIntPtr(raw, "awayPoints", "away_points")
	g.HomeConference = pickString(raw, "homeConference", "home_conference")
	g.AwayConference = pickString(raw, "awayConference", "away_conference")
	g.NeutralSite = pickBool(raw, "neutralSite", "neutral_site")

	if s := pickString(raw, "startDate", "start_date"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			g.Date = t
		}
	}
	return nil
}

func pickString(raw map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		var s string
		if v, ok := raw[k]; ok && json.Unmarshal(v, &s) == nil {
			return s
		}
	}
	return ""
}

func pickInt64(raw map[string]json.RawMessage, keys ...string) int64 {
	for _, k := range keys {
		var n int64
		if v, ok := raw[k]; ok && json.Unmarshal(v, &n) == nil {
			return n
		}
	}
	return 0
}

func pickIntPtr(raw map[string]json.RawMessage, keys ...string) *int {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || string(v) == "null" {
			continue
		}
		var n int
		if json.Unmarshal(v, &n) == nil {
			return &n
		}
	}
	return nil
}

func pickBool(raw map[string]json.RawMessage, keys ...string) bool {
	for _, k := range keys {
		var b bool
		if v, ok := raw[k]; ok && json.Unmarshal(v, &b) == nil {
			return b
		}
	}
	return false
}
