package mister

import (
	"fmt"

	"misterstats-backend/lib/htmlutil"
	"misterstats-backend/lib/moneyutil"
)

// ExtractRoster pulls the player list out of the team page. Every
// field is guarded independently: a missing node yields its sentinel
// and never drops the record, a missing list yields an empty roster.
func ExtractRoster(doc htmlutil.Node) ([]Player, RosterSummary) {
	summary := RosterSummary{
		PlayerCount: NotAvailable,
		TeamValue:   NotAvailable,
		Balance:     NotAvailable,
	}

	list, ok := doc.FindFirst("ul.player-list")
	if !ok {
		return []Player{}, summary
	}

	var players []Player
	for _, row := range list.FindAll("li a.player-link") {
		players = append(players, extractPlayer(row))
	}
	if players == nil {
		players = []Player{}
	}

	// the footer is only trusted when it has exactly its three items:
	// player count, team value and balance
	footer := doc.FindAll("ul.team-overview li")
	if len(footer) == 3 {
		summary.PlayerCount = textOr(footer[0], NotAvailable)
		summary.TeamValue = textOr(footer[1], NotAvailable)
		summary.Balance = textOr(footer[2], NotAvailable)
	}

	return players, summary
}

func extractPlayer(row htmlutil.Node) Player {
	p := Player{
		Id:       row.Attr("data-id"),
		Position: positionCodes[row.Attr("data-position")],
		Points:   NotAvailable,
		Average:  NotAvailable,
	}

	if name, ok := row.FindFirst("div.name"); ok {
		p.Name = name.Text()
	}
	if p.Name == "" {
		p.Name = NotAvailable
	}
	if photo, ok := row.FindFirst("img.player-pic"); ok {
		p.PhotoUrl = photo.Attr("src")
	}
	if logo, ok := row.FindFirst("img.team-logo"); ok {
		p.TeamLogoUrl = logo.Attr("src")
	}
	if value, ok := row.FindFirst("div.value"); ok {
		p.Value = moneyutil.ParseEuros(value.Text())
	}
	if points, ok := row.FindFirst("div.points"); ok {
		p.Points = textOr(points, NotAvailable)
	}
	if avg, ok := row.FindFirst("div.avg"); ok {
		p.Average = textOr(avg, NotAvailable)
	}

	return p
}

// ExtractFormation reads the lineup block and resolves the player ids
// referenced on each line against an already extracted roster. Ids the
// roster does not know are dropped silently, the upstream sometimes
// references stale players.
func ExtractFormation(doc htmlutil.Node, roster []Player) Formation {
	byId := make(map[string]Player, len(roster))
	for _, p := range roster {
		byId[p.Id] = p
	}

	formation := Formation{}
	for line := 4; line >= 1; line-- {
		refs := doc.FindAll(fmt.Sprintf("div.lineup div.line-%d a.player-link", line))
		var players []Player
		for _, ref := range refs {
			p, ok := byId[ref.Attr("data-id")]
			if !ok {
				continue
			}
			players = append(players, p)
		}
		if players != nil {
			formation[line] = players
		}
	}
	return formation
}

func textOr(n htmlutil.Node, fallback string) string {
	text := n.Text()
	if text == "" {
		return fallback
	}
	return text
}
