package mister

import (
	"regexp"
	"strings"

	"misterstats-backend/lib/htmlutil"
	"misterstats-backend/lib/moneyutil"
)

var userHrefRegex = regexp.MustCompile(`users/(\d+)/([\w-]+)`)

// the "played/value" field renders as e.g.
// "17 jugadores · € 51.921.000", split on the middle dot
const playedValueSeparator = "·"

// ExtractStandings pulls the league ranking out of the standings page.
// Rows without their user link are skipped entirely, everything else
// degrades per field.
func ExtractStandings(doc htmlutil.Node) []StandingEntry {
	panel, ok := doc.FindFirst("div.panel-total")
	if !ok {
		return []StandingEntry{}
	}

	entries := []StandingEntry{}
	for _, row := range panel.FindAll("li") {
		link, ok := row.FindFirst("a.user")
		if !ok {
			continue
		}
		entries = append(entries, extractStandingEntry(link))
	}
	return entries
}

func extractStandingEntry(link htmlutil.Node) StandingEntry {
	entry := StandingEntry{PointsDiff: NotAvailable}

	if pos, ok := link.FindFirst("div.position"); ok {
		entry.Position = moneyutil.ParseEuros(pos.Text())
	}
	if name, ok := link.FindFirst("div.name"); ok {
		entry.Name = name.Text()
	}
	if entry.Name == "" {
		entry.Name = NotAvailable
	}

	if groups := userHrefRegex.FindStringSubmatch(link.Attr("href")); len(groups) == 3 {
		entry.UserId = groups[1]
		entry.UserSlug = groups[2]
	}

	if avatar, ok := link.FindFirst("img"); ok {
		entry.AvatarUrl = avatar.Attr("src")
	}

	if points, ok := link.FindFirst("div.points"); ok {
		// the first text node is the total, the nested diff node (when
		// present) carries the matchday differential
		entry.Points = moneyutil.ParseEuros(points.FirstText())
		if diff, ok := points.FindFirst("div.diff"); ok {
			entry.PointsDiff = textOr(diff, NotAvailable)
		}
	}

	if played, ok := link.FindFirst("div.played"); ok {
		parts := strings.Split(played.Text(), playedValueSeparator)
		if len(parts) == 2 {
			entry.PlayerCount = moneyutil.ParseEuros(parts[0])
			entry.TeamValue = moneyutil.ParseEuros(parts[1])
		}
	}

	return entry
}
