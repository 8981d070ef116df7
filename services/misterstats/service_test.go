package misterstats

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"misterstats-backend/lib/scrapers/mister"
	"misterstats-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

const teamPage = `
<html><body>
	<ul class="player-list">
		<li><a class="player-link" href="#" data-id="27425" data-position="4">
			<div class="name">Lewandowski</div>
			<div class="points">120</div>
			<div class="value">25.000.000 €</div>
		</a></li>
		<li><a class="player-link" href="#" data-id="30102" data-position="1">
			<div class="name">Ter Stegen</div>
			<div class="points">98</div>
			<div class="value">12.500.000 €</div>
		</a></li>
		<li><a class="player-link" href="#" data-id="18777" data-position="2">
			<div class="name">Cubarsí</div>
			<div class="points">74</div>
			<div class="value">9.800.000 €</div>
		</a></li>
	</ul>
	<ul class="team-overview">
		<li>3 jugadores</li>
		<li>47.300.000 €</li>
		<li>1.000.000 €</li>
	</ul>
</body></html>`

const standingsPage = `
<html><body>
	<div class="panel-total"><ul>
		<li><a class="user" href="/users/2148832/pedro-garcia">
			<div class="position">1</div>
			<div class="name">Pedro García</div>
			<div class="points">1.204<div class="diff">+38</div></div>
			<div class="played">17 jugadores · € 51.921.000</div>
		</a></li>
		<li><a class="user" href="/users/901234/la-maquina">
			<div class="position">2</div>
			<div class="name">La Máquina</div>
			<div class="points">1.198</div>
			<div class="played">16 jugadores · € 49.100.000</div>
		</a></li>
	</ul></div>
</body></html>`

// fixtureUpstream mimics the upstream surface: HTML pages for team and
// standings, enveloped JSON for the ajax endpoints. Player 18777
// always fails its detail fetch.
func fixtureUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/team", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(teamPage))
	})
	mux.HandleFunc("/standings", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(standingsPage))
	})
	mux.HandleFunc("/ajax/balance", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok", "data": {"balance": 3421000}}`))
	})
	mux.HandleFunc("/ajax/sw/players", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		id := r.PostFormValue("id")
		w.Header().Set("Content-Type", "application/json")

		switch id {
		case "27425":
			fmt.Fprint(w, `{"status": "ok", "data": {
				"player": {"id": 27425, "name": "Lewandowski", "value": 25000000},
				"values": [
					{"time": "1 día", "change": -200000},
					{"time": "1 semana", "change": 1300000}
				],
				"values_chart": {"points": [
					{"date": "15 ene 2024", "value": 24000000},
					{"date": "not a date", "value": 1},
					{"date": "16 ene 2024", "value": 24200000}
				]}
			}}`)
		case "30102":
			fmt.Fprint(w, `{"status": "ok", "data": {
				"player": {"id": 30102, "name": "Ter Stegen", "value": 12500000},
				"values": [{"time": "1 día", "change": 150000}]
			}}`)
		default:
			fmt.Fprint(w, `{"status": "error"}`)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func fixtureService(t *testing.T) Service {
	t.Helper()
	t.Cleanup(telemetry.SetupForTesting(t, "test:services/misterstats"))

	server := fixtureUpstream(t)
	client, err := mister.NewClient(context.Background(), mister.ClientOptions{
		BaseUrl:   server.URL,
		Session:   mister.SessionConfig{PhpSessId: "s", Token: "t", RefreshToken: "r", XAuth: "x"},
		Transport: http.DefaultTransport,
	})
	require.NoError(t, err)
	return NewService(client)
}

func TestGetTeam(t *testing.T) {
	service := fixtureService(t)

	players, summary, err := service.GetTeam(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 3)
	require.Equal(t, "Lewandowski", players[0].Name)
	require.Equal(t, 25000000, players[0].Value)
	require.Equal(t, "47.300.000 €", summary.TeamValue)
}

func TestGetStandings(t *testing.T) {
	service := fixtureService(t)

	entries, err := service.GetStandings(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "pedro-garcia", entries[0].UserSlug)
	require.Equal(t, 1204, entries[0].Points)
	require.Equal(t, 49100000, entries[1].TeamValue)
}

func TestGetPlayerDetailEnvelopeFailure(t *testing.T) {
	service := fixtureService(t)

	_, err := service.GetPlayerDetail(context.Background(), "18777")
	require.ErrorIs(t, err, mister.ErrEnvelope)
}

func TestGetBalance(t *testing.T) {
	service := fixtureService(t)

	balance, err := service.GetBalance(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3421000, balance)
}

func TestGetDailyVariation(t *testing.T) {
	service := fixtureService(t)
	players, _, err := service.GetTeam(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 3)

	variations := service.GetDailyVariation(context.Background(), players)
	// player 18777 fails its detail fetch and must simply be absent
	require.Len(t, variations, 2)
	require.Equal(t, -200000, variations["27425"])
	require.Equal(t, 150000, variations["30102"])

	require.Equal(t, -50000, ComputeTotalVariation(variations))
	require.Equal(t, 0, ComputeTotalVariation(map[string]int{}))
	require.Equal(t, 0, ComputeTotalVariation(nil))
}

func TestGetDailyVariationConcurrent(t *testing.T) {
	service := fixtureService(t)
	players, _, err := service.GetTeam(context.Background())
	require.NoError(t, err)

	sequential := service.GetDailyVariation(context.Background(), players)
	concurrent := service.GetDailyVariationConcurrent(context.Background(), players, 2)
	require.Equal(t, sequential, concurrent)
}

func TestGetValueHistory(t *testing.T) {
	service := fixtureService(t)

	points, err := service.GetValueHistory(context.Background(), "27425")
	// the malformed chart point is reported, the rest stays usable
	require.Error(t, err)
	require.Len(t, points, 2)
	require.True(t, points[0].Date.Before(points[1].Date))
}

func TestServiceUnavailableUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client, err := mister.NewClient(context.Background(), mister.ClientOptions{
		BaseUrl:   server.URL,
		Transport: http.DefaultTransport,
	})
	require.NoError(t, err)
	service := NewService(client)

	_, _, err = service.GetTeam(context.Background())
	require.ErrorIs(t, err, mister.ErrUnavailable)

	_, err = service.GetStandings(context.Background())
	require.ErrorIs(t, err, mister.ErrUnavailable)

	variations := service.GetDailyVariation(context.Background(), []mister.Player{{Id: "1"}})
	require.Empty(t, variations)
}

func TestMarkupShapeFailureYieldsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>página nueva</p></body></html>`))
	}))
	t.Cleanup(server.Close)

	client, err := mister.NewClient(context.Background(), mister.ClientOptions{
		BaseUrl:   server.URL,
		Transport: http.DefaultTransport,
	})
	require.NoError(t, err)
	service := NewService(client)

	players, summary, err := service.GetTeam(context.Background())
	require.NoError(t, err)
	require.Empty(t, players)
	require.Equal(t, mister.NotAvailable, summary.Balance)

	entries, err := service.GetStandings(context.Background())
	require.NoError(t, err)
	require.Empty(t, entries)
}
