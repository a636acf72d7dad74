package cfp

import (
	"fmt"
	"html"
	"strings"
)

// RenderBracket formats a seeded field and its bracket as plain text
// suitable for a terminal.
func RenderBracket(seeded []SeededTeam, bracket *Bracket, title string) string {
	if title == "" {
		title = "College Football Playoff Bracket"
	}
	rule := strings.Repeat("=", 80)
	thin := strings.Repeat("-", 80)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString(centerText(title, 80) + "\n")
	b.WriteString(rule + "\n\n")

	b.WriteString("FIRST ROUND BYES:\n")
	b.WriteString(thin + "\n")
	for _, team := range seeded {
		if !team.IsBye {
			continue
		}
		fmt.Fprintf(&b, "  Seed #%d: %-30s (Rank #%d)\n", team.Seed, team.Team, team.Rank)
	}
	b.WriteString("\n")

	b.WriteString("FIRST ROUND (On-Campus Sites):\n")
	b.WriteString(thin + "\n")
	for _, m := range bracket.FirstRound {
		fmt.Fprintf(&b, "Game %d:\n", m.GameNum)
		fmt.Fprintf(&b, "  Seed #%d: %s\n", m.SeedHigh, m.TeamHigh)
		b.WriteString("    vs\n")
		fmt.Fprintf(&b, "  Seed #%d: %s\n", m.SeedLow, m.TeamLow)
		fmt.Fprintf(&b, "  Location: %s\n\n", m.Location)
	}

	b.WriteString("QUARTERFINALS (Bowl Games, Neutral Sites):\n")
	b.WriteString(thin + "\n")
	for _, m := range bracket.Quarterfinals {
		fmt.Fprintf(&b, "  Seed #%d vs %s\n", m.SeedHigh, m.TeamLow)
	}
	b.WriteString("\n")

	b.WriteString(rule + "\n")
	b.WriteString("Note: Bracket does not reseed - winners advance to predetermined matchups\n")
	b.WriteString(rule + "\n")

	return b.String()
}

func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s
}

// RenderBracketHTML formats a seeded field and its bracket as a standalone
// HTML fragment.
func RenderBracketHTML(seeded []SeededTeam, bracket *Bracket) string {
	rankBySeed := make(map[int]int, len(seeded))
	for _, team := range seeded {
		rankBySeed[team.Seed] = team.Rank
	}

	var b strings.Builder
	b.WriteString(bracketCSS)
	b.WriteString(`<div class="bracket-container">` + "\n")
	b.WriteString(`  <div class="bracket-title">College Football Playoff Bracket</div>` + "\n")

	b.WriteString(`  <div class="bracket-round">` + "\n")
	b.WriteString(`    <div class="round-title">FIRST ROUND BYES</div>` + "\n")
	for _, team := range seeded {
		if !team.IsBye {
			continue
		}
		b.WriteString(`    <div class="matchup bye-team">` + "\n")
		writeTeamLine(&b, team.Seed, team.Team, team.Rank)
		b.WriteString(`    </div>` + "\n")
	}
	b.WriteString(`  </div>` + "\n")

	b.WriteString(`  <div class="bracket-round">` + "\n")
	b.WriteString(`    <div class="round-title">FIRST ROUND (On-Campus)</div>` + "\n")
	for _, m := range bracket.FirstRound {
		b.WriteString(`    <div class="matchup">` + "\n")
		writeTeamLine(&b, m.SeedHigh, m.TeamHigh, rankBySeed[m.SeedHigh])
		b.WriteString(`      <div class="vs-text">vs</div>` + "\n")
		writeTeamLine(&b, m.SeedLow, m.TeamLow, rankBySeed[m.SeedLow])
		fmt.Fprintf(&b, "      <div class=\"location\">%s</div>\n", html.EscapeString(m.Location))
		b.WriteString(`    </div>` + "\n")
	}
	b.WriteString(`  </div>` + "\n")

	b.WriteString(`  <div class="bracket-round">` + "\n")
	b.WriteString(`    <div class="round-title">QUARTERFINALS (Bowl Games)</div>` + "\n")
	for _, m := range bracket.Quarterfinals {
		b.WriteString(`    <div class="matchup">` + "\n")
		writeTeamLine(&b, m.SeedHigh, m.TeamHigh, rankBySeed[m.SeedHigh])
		b.WriteString(`      <div class="vs-text">vs</div>` + "\n")
		fmt.Fprintf(&b, "      <div class=\"team-line\"><span class=\"team-name\">%s</span></div>\n", html.EscapeString(string(m.TeamLow)))
		fmt.Fprintf(&b, "      <div class=\"location\">%s</div>\n", html.EscapeString(m.Location))
		b.WriteString(`    </div>` + "\n")
	}
	b.WriteString(`  </div>` + "\n")

	b.WriteString(`  <div class="bracket-notes">Bracket does not reseed: winners advance to predetermined matchups.</div>` + "\n")
	b.WriteString(`</div>` + "\n")

	return b.String()
}

func writeTeamLine(b *strings.Builder, seed int, team Team, rank int) {
	b.WriteString(`      <div class="team-line">` + "\n")
	fmt.Fprintf(b, "        <span class=\"seed\">Seed #%d</span>\n", seed)
	fmt.Fprintf(b, "        <span class=\"team-name\">%s</span>\n", html.EscapeString(string(team)))
	if rank > 0 {
		fmt.Fprintf(b, "        <span class=\"rank-badge\">Rank #%d</span>\n", rank)
	}
	b.WriteString(`      </div>` + "\n")
}

const bracketCSS = `<style>
.bracket-container { font-family: Arial, sans-serif; max-width: 1200px; margin: 20px auto; background: #f5f5f5; padding: 20px; border-radius: 10px; }
.bracket-title { text-align: center; font-size: 24px; font-weight: bold; margin-bottom: 20px; color: #333; }
.bracket-round { margin-bottom: 30px; }
.round-title { font-size: 18px; font-weight: bold; color: #0066cc; margin-bottom: 15px; padding-bottom: 5px; border-bottom: 2px solid #0066cc; }
.matchup { background: white; border: 2px solid #ddd; border-radius: 8px; padding: 15px; margin-bottom: 15px; }
.bye-team { background: #e8f4f8; border-left: 4px solid #0066cc; }
.team-line { display: flex; align-items: center; padding: 8px; margin: 4px 0; }
.seed { font-weight: bold; color: #0066cc; min-width: 50px; }
.team-name { flex-grow: 1; font-weight: 600; }
.rank-badge { background: #f0f0f0; padding: 2px 8px; border-radius: 4px; font-size: 12px; color: #666; }
.vs-text { text-align: center; color: #999; font-weight: bold; margin: 5px 0; }
.location { font-size: 12px; color: #666; font-style: italic; margin-top: 8px; padding-top: 8px; border-top: 1px solid #eee; }
.bracket-notes { margin-top: 20px; padding: 15px; background: #fff9e6; border-left: 4px solid #ffcc00; border-radius: 4px; }
</style>
`
