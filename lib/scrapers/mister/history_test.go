package mister

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValueHistory(t *testing.T) {
	detail := PlayerDetail{
		ValuesChart: valuesChart{Points: []chartPoint{
			{Date: "15 ene 2024", Value: 24000000},
			{Date: "16 ene 2024", Value: 24350000},
			{Date: "1 dic 2023", Value: 21000000},
		}},
	}

	points, err := ValueHistory(detail)
	require.NoError(t, err)
	require.Len(t, points, 3)
	// upstream order preserved, not re-sorted
	require.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), points[0].Date)
	require.Equal(t, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), points[2].Date)

	SortValueHistory(points)
	for i := 1; i < len(points); i++ {
		require.False(t, points[i].Date.Before(points[i-1].Date))
	}
}

func TestValueHistoryBadDates(t *testing.T) {
	detail := PlayerDetail{
		ValuesChart: valuesChart{Points: []chartPoint{
			{Date: "15 ene 2024", Value: 24000000},
			{Date: "whenever", Value: 1},
			{Date: "5 sept 2024", Value: 26000000},
		}},
	}

	points, err := ValueHistory(detail)
	// the malformed date is observable, not silently coerced
	require.Error(t, err)
	require.Len(t, points, 2)
	require.Equal(t, 26000000.0, points[1].Value)
}

func TestOptionalIntUnmarshal(t *testing.T) {
	var payload struct {
		A OptionalInt `json:"a"`
		B OptionalInt `json:"b"`
		C OptionalInt `json:"c"`
		D OptionalInt `json:"d"`
	}
	err := json.Unmarshal([]byte(`{"a": 120, "b": "N/A", "c": null}`), &payload)
	require.NoError(t, err)

	require.True(t, payload.A.Valid)
	require.Equal(t, 120, payload.A.Value)
	require.False(t, payload.B.Valid)
	require.False(t, payload.C.Valid)
	require.False(t, payload.D.Valid)
}

func TestPlayerDetailDecoding(t *testing.T) {
	raw := `{
		"player": {
			"id": 27425,
			"name": "Lewandowski",
			"photoUrl": "https://cdn.example.com/p/27425.png",
			"value": 25000000,
			"points": "N/A",
			"clause": {"value": 40000000},
			"team": {"id": 3, "name": "Barcelona"},
			"bio": {"age": 36, "height": 185, "weight": 81}
		},
		"values": [
			{"time": "1 día", "change": -200000},
			{"time": "1 semana", "change": 1300000}
		],
		"points_history": [
			{"season": "2023/24", "points": 214, "avg": 5.94}
		],
		"values_chart": {"points": [{"date": "15 ene 2024", "value": 24000000}]}
	}`

	var detail PlayerDetail
	require.NoError(t, json.Unmarshal([]byte(raw), &detail))

	require.Equal(t, "27425", detail.Player.Id.String())
	require.True(t, detail.Player.Value.Valid)
	require.False(t, detail.Player.Points.Valid)
	require.Equal(t, 40000000, detail.Player.Clause.Value.Value)
	require.Len(t, detail.Values, 2)
	require.Equal(t, "1 día", detail.Values[0].Period)
	require.Equal(t, -200000.0, detail.Values[0].Change)
	require.Equal(t, 5.94, detail.PointsHistory[0].Average)
}
