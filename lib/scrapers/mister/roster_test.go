package mister

import (
	"testing"

	"misterstats-backend/lib/htmlutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const teamPage = `
<div class="team">
	<ul class="player-list">
		<li><a class="player-link" href="#" data-id="27425" data-position="4">
			<img class="player-pic" src="https://cdn.example.com/p/27425.png">
			<div class="info"><div class="name">Lewandowski</div></div>
			<div class="points">120</div>
			<div class="avg">6,32</div>
			<div class="value">25.000.000 €</div>
			<img class="team-logo" src="https://cdn.example.com/t/fcb.png">
		</a></li>
		<li><a class="player-link" href="#" data-id="30102" data-position="1">
			<img class="player-pic" src="https://cdn.example.com/p/30102.png">
			<div class="info"><div class="name">Ter Stegen</div></div>
			<div class="value">12.500.000 €</div>
			<img class="team-logo" src="https://cdn.example.com/t/fcb.png">
		</a></li>
		<li><a class="player-link" href="#" data-id="18777" data-position="9">
			<div class="info"><div class="name">Canterano</div></div>
			<div class="points">N/A</div>
			<div class="value">sin valor</div>
		</a></li>
	</ul>
	<ul class="team-overview">
		<li>17 jugadores</li>
		<li>51.921.000 €</li>
		<li>3.421.000 €</li>
	</ul>
	<div class="lineup">
		<div class="line-4">
			<a class="player-link" data-id="27425"></a>
			<a class="player-link" data-id="99999"></a>
		</div>
		<div class="line-1">
			<a class="player-link" data-id="30102"></a>
		</div>
	</div>
</div>`

func TestExtractRoster(t *testing.T) {
	doc, err := htmlutil.Parse(teamPage)
	require.NoError(t, err)

	players, summary := ExtractRoster(doc)
	require.Len(t, players, 3)

	want := Player{
		Id:          "27425",
		Name:        "Lewandowski",
		PhotoUrl:    "https://cdn.example.com/p/27425.png",
		Position:    PositionForward,
		Value:       25000000,
		Points:      "120",
		Average:     "6,32",
		TeamLogoUrl: "https://cdn.example.com/t/fcb.png",
	}
	if diff := cmp.Diff(want, players[0]); diff != "" {
		t.Fatalf("player mismatch (-want +got):\n%s", diff)
	}

	// second entry has no points/avg nodes
	require.Equal(t, PositionGoalkeeper, players[1].Position)
	require.Equal(t, NotAvailable, players[1].Points)
	require.Equal(t, NotAvailable, players[1].Average)
	require.Equal(t, 12500000, players[1].Value)

	// third entry carries an unknown position code and a value without digits
	require.Equal(t, PositionUnknown, players[2].Position)
	require.Equal(t, 0, players[2].Value)
	require.Equal(t, "", players[2].PhotoUrl)
	require.Equal(t, NotAvailable, players[2].Points)

	require.Equal(t, "17 jugadores", summary.PlayerCount)
	require.Equal(t, "51.921.000 €", summary.TeamValue)
	require.Equal(t, "3.421.000 €", summary.Balance)
}

func TestExtractRosterIdsUnique(t *testing.T) {
	doc, err := htmlutil.Parse(teamPage)
	require.NoError(t, err)

	players, _ := ExtractRoster(doc)
	seen := map[string]bool{}
	for _, p := range players {
		require.False(t, seen[p.Id], "duplicate player id %q", p.Id)
		seen[p.Id] = true
	}
}

func TestExtractRosterNoContainer(t *testing.T) {
	doc, err := htmlutil.Parse(`<div class="team"><p>mantenimiento</p></div>`)
	require.NoError(t, err)

	players, summary := ExtractRoster(doc)
	require.Empty(t, players)
	require.Equal(t, NotAvailable, summary.PlayerCount)
	require.Equal(t, NotAvailable, summary.TeamValue)
	require.Equal(t, NotAvailable, summary.Balance)
}

func TestExtractRosterFooterWrongShape(t *testing.T) {
	doc, err := htmlutil.Parse(`
		<ul class="player-list"></ul>
		<ul class="team-overview">
			<li>17 jugadores</li>
			<li>51.921.000 €</li>
		</ul>`)
	require.NoError(t, err)

	_, summary := ExtractRoster(doc)
	require.Equal(t, NotAvailable, summary.PlayerCount)
	require.Equal(t, NotAvailable, summary.TeamValue)
	require.Equal(t, NotAvailable, summary.Balance)
}

func TestExtractFormation(t *testing.T) {
	doc, err := htmlutil.Parse(teamPage)
	require.NoError(t, err)

	roster, _ := ExtractRoster(doc)
	formation := ExtractFormation(doc, roster)

	// line 4 references one roster player and one stale id
	require.Len(t, formation[4], 1)
	require.Equal(t, "27425", formation[4][0].Id)

	require.Len(t, formation[1], 1)
	require.Equal(t, "30102", formation[1][0].Id)

	_, ok := formation[2]
	require.False(t, ok)
}

func TestExtractFormationKeepsDocumentOrder(t *testing.T) {
	doc, err := htmlutil.Parse(`
		<div class="lineup">
			<div class="line-3">
				<a class="player-link" data-id="b"></a>
				<a class="player-link" data-id="stale"></a>
				<a class="player-link" data-id="a"></a>
			</div>
		</div>`)
	require.NoError(t, err)

	roster := []Player{
		{Id: "a", Name: "A"},
		{Id: "b", Name: "B"},
		{Id: "c", Name: "C"},
		{Id: "d", Name: "D"},
		{Id: "e", Name: "E"},
	}
	formation := ExtractFormation(doc, roster)

	require.Len(t, formation[3], 2)
	require.Equal(t, "b", formation[3][0].Id)
	require.Equal(t, "a", formation[3][1].Id)
}
