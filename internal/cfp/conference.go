package cfp

import (
	"strings"

	"github.com/montanaflynn/stats"
)

// ChampionFlag is the structured replacement for the legacy "Yes (SEC)"
// marker string: an explicit boolean plus the conference won.
type ChampionFlag struct {
	IsChampion bool
	Conference string
}

// ParseChampionMarker converts a legacy marker string into a ChampionFlag.
// Anything other than a "Yes (Conference)" marker means not a champion.
func ParseChampionMarker(marker string) ChampionFlag {
	if !strings.HasPrefix(marker, "Yes") {
		return ChampionFlag{}
	}
	open := strings.Index(marker, "(")
	end := strings.Index(marker, ")")
	if open < 0 || end < open {
		return ChampionFlag{IsChampion: true}
	}
	return ChampionFlag{IsChampion: true, Conference: marker[open+1 : end]}
}

// Tier classifies a conference's competitive level.
type Tier string

const (
	TierPower       Tier = "P5"
	TierGroupOfFive Tier = "G5"
	TierIndependent Tier = "IND"
)

// powerConferences and groupOfFiveConferences are read-only reference
// tables, current through the 2024 realignment.
var powerConferences = map[string]bool{
	"SEC":     true,
	"Big Ten": true,
	"Big 12":  true,
	"ACC":     true,
	"Pac-12":  true, // historical, defunct after 2023
}

var groupOfFiveConferences = map[string]bool{
	"American Athletic": true,
	"Mountain West":     true,
	"Sun Belt":          true,
	"Mid-American":      true,
	"Conference USA":    true,
}

// ConferenceTier returns the tier classification for a conference name.
func ConferenceTier(conference string) Tier {
	switch {
	case powerConferences[conference]:
		return TierPower
	case groupOfFiveConferences[conference]:
		return TierGroupOfFive
	default:
		return TierIndependent
	}
}

// ConferenceStrength measures each conference by its win percentage in
// non-conference games.  Conferences with no non-conference games get a
// neutral 0.5.
func ConferenceStrength(log GameLog) map[string]float64 {
	wins := make(map[string]int)
	games := make(map[string]int)
	for _, g := range log {
		if g.HomeConference == "" || g.AwayConference == "" || g.HomeConference == g.AwayConference {
			continue
		}
		games[g.HomeConference]++
		games[g.AwayConference]++
		if g.Winner() == g.HomeTeam {
			wins[g.HomeConference]++
		} else {
			wins[g.AwayConference]++
		}
	}

	out := make(map[string]float64, len(games))
	for conf, n := range games {
		if n == 0 {
			out[conf] = 0.5
			continue
		}
		out[conf] = float64(wins[conf]) / float64(n)
	}
	return out
}

// Conference adjustment multipliers, reflecting the committee's historical
// preference for power-conference teams.
const (
	PowerBoost         = 1.05
	GroupOfFivePenalty = 0.95
)

// AdjustForConference applies the tier multiplier to a 0-1 team score.
func AdjustForConference(score float64, conference string) float64 {
	switch ConferenceTier(conference) {
	case TierPower:
		adjusted := score * PowerBoost
		if adjusted > 1 {
			return 1
		}
		return adjusted
	case TierGroupOfFive:
		return score * GroupOfFivePenalty
	default:
		return score
	}
}

// ScheduleInequality is the standard deviation of SOS among a conference's
// teams, quantifying how unevenly its schedules are distributed.
func ScheduleInequality(conferenceSOS map[Team]float64) float64 {
	if len(conferenceSOS) < 2 {
		return 0
	}
	values := make([]float64, 0, len(conferenceSOS))
	for _, v := range conferenceSOS {
		values = append(values, v)
	}
	sd, _ := stats.StdDevP(values)
	return sd
}
