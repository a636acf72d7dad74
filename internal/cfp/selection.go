package cfp

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// Default 5+7 selection protocol sizes.
const (
	DefaultAutoBids = 5
	DefaultAtLarge  = 7
)

// RankedTeam couples a composite table row with conference metadata, the
// shape the selector and seeder work on.
type RankedTeam struct {
	Team       Team
	Rank       int
	Score      float64
	Record     Record
	Conference string
	Champion   ChampionFlag
}

// PlayoffSelection is the outcome of the 5+7 protocol: the field, its
// partition into automatic and at-large bids, the audit-only displacement
// markers, and an ordered log of every decision taken.
type PlayoffSelection struct {
	Field         []RankedTeam
	AutoBids      []RankedTeam
	AtLargeBids   []RankedTeam
	DisplacedTeam *RankedTeam
	ChampPulledIn bool
	AuditLog      []string
}

// SelectField applies the selection protocol to a ranked table.  Automatic
// bids go to the top nAutoBids conference champions; if fewer champions
// exist, the at-large pool grows so the field size stays fixed.  A champion
// ranked outside the field size is pulled in and the displacement recorded,
// but the recorded displacement never removes a team: the field is simply
// the union of bids in rank order.
func SelectField(ranked []RankedTeam, nAutoBids, nAtLarge int) PlayoffSelection {
	total := nAutoBids + nAtLarge
	audit := make([]string, 0)

	byRank := make([]RankedTeam, len(ranked))
	copy(byRank, ranked)
	sort.Slice(byRank, func(i, j int) bool { return byRank[i].Rank < byRank[j].Rank })

	champs := make([]RankedTeam, 0)
	for _, t := range byRank {
		if t.Champion.IsChampion {
			champs = append(champs, t)
		}
	}
	audit = append(audit, fmt.Sprintf("Found %d conference champions", len(champs)))

	if len(champs) < nAutoBids {
		audit = append(audit, fmt.Sprintf("WARNING: Only %d champions found, need %d", len(champs), nAutoBids))
		logrus.WithFields(logrus.Fields{
			"champions": len(champs),
			"requested": nAutoBids,
		}).Warn("too few conference champions, growing at-large pool")
		nAutoBids = len(champs)
		nAtLarge = total - nAutoBids
	}

	autoBids := champs[:nAutoBids]
	isAuto := make(map[Team]bool, nAutoBids)
	for _, t := range autoBids {
		isAuto[t.Team] = true
	}

	audit = append(audit, fmt.Sprintf("Automatic bids (top %d conference champions):", nAutoBids))
	for i, t := range autoBids {
		audit = append(audit, fmt.Sprintf("  %d. #%d %s (%s)", i+1, t.Rank, t.Team, t.Champion.Conference))
	}

	eligible := make([]RankedTeam, 0, len(byRank))
	for _, t := range byRank {
		if !isAuto[t.Team] {
			eligible = append(eligible, t)
		}
	}
	n := nAtLarge
	if n > len(eligible) {
		n = len(eligible)
	}
	atLarge := eligible[:n]

	audit = append(audit, fmt.Sprintf("At-large bids (%d spots):", nAtLarge))
	for i, t := range atLarge {
		audit = append(audit, fmt.Sprintf("  %d. #%d %s", i+1, t.Rank, t.Team))
	}

	selected := make([]RankedTeam, 0, len(autoBids)+len(atLarge))
	selected = append(selected, autoBids...)
	selected = append(selected, atLarge...)
	sort.Slice(selected, func(i, j int) bool { return selected[i].Rank < selected[j].Rank })

	var champPulledIn bool
	var displaced *RankedTeam
	for _, t := range autoBids {
		if t.Rank <= total {
			continue
		}
		champPulledIn = true
		// The displaced team is recorded for the audit trail only; it
		// stays in the field if the bids already include it.
		if len(atLarge) > 0 && len(eligible) > nAtLarge {
			d := eligible[nAtLarge-1]
			displaced = &d
			audit = append(audit, fmt.Sprintf("CHAMPION PULLED IN: #%d %s", t.Rank, t.Team))
			audit = append(audit, fmt.Sprintf("DISPLACED: #%d %s", d.Rank, d.Team))
		}
		break
	}

	if len(selected) > total {
		selected = selected[:total]
	}

	audit = append(audit, fmt.Sprintf("Final %d-team playoff field:", total))
	for i, t := range selected {
		status := "AT-LARGE"
		if isAuto[t.Team] {
			status = "AUTO"
		}
		audit = append(audit, fmt.Sprintf("  %d. #%d %s (%s)", i+1, t.Rank, t.Team, status))
	}

	return PlayoffSelection{
		Field:         selected,
		AutoBids:      autoBids,
		AtLargeBids:   atLarge,
		DisplacedTeam: displaced,
		ChampPulledIn: champPulledIn,
		AuditLog:      audit,
	}
}
