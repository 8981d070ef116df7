package mister

import (
	"bytes"
	"encoding/json"
	"time"
)

// NotAvailable is the sentinel substituted for display fields the
// upstream markup omits.
const NotAvailable = "N/A"

type Position int

const (
	PositionUnknown Position = iota
	PositionGoalkeeper
	PositionDefender
	PositionMidfielder
	PositionForward
)

// the upstream encodes positions as a 1-4 code on roster entries
var positionCodes = map[string]Position{
	"1": PositionGoalkeeper,
	"2": PositionDefender,
	"3": PositionMidfielder,
	"4": PositionForward,
}

func (p Position) String() string {
	switch p {
	case PositionGoalkeeper:
		return "Goalkeeper"
	case PositionDefender:
		return "Defender"
	case PositionMidfielder:
		return "Midfielder"
	case PositionForward:
		return "Forward"
	}
	return "Unknown"
}

// Player is one roster entry, an immutable snapshot of a single fetch.
// Points and Average stay upstream-formatted since they are display
// only and the upstream itself renders "N/A" for missing values.
type Player struct {
	Id          string
	Name        string
	PhotoUrl    string
	Position    Position
	Value       int
	Points      string
	Average     string
	TeamLogoUrl string
}

// RosterSummary is the 3-field footer under the roster list. The
// fields are opaque upstream-formatted strings; when the footer does
// not have exactly three items all of them fall back to NotAvailable.
type RosterSummary struct {
	PlayerCount string
	TeamValue   string
	Balance     string
}

type StandingEntry struct {
	Position    int
	UserId      string
	UserSlug    string
	Name        string
	AvatarUrl   string
	Points      int
	PointsDiff  string
	PlayerCount int
	TeamValue   int
}

// Formation maps a line index (1 = most defensive, 4 = most attacking)
// to the players on that line, in document order.
type Formation map[int][]Player

type ValueHistoryPoint struct {
	Date  time.Time
	Value float64
}

type ValueChange struct {
	Period string  `json:"time"`
	Change float64 `json:"change"`
}

type PointsHistoryEntry struct {
	Season  string  `json:"season"`
	Points  int     `json:"points"`
	Average float64 `json:"avg"`
}

// OptionalInt models upstream fields that hold either a number or the
// literal string "N/A". Invalid means unknown, never zero.
type OptionalInt struct {
	Value int
	Valid bool
}

func (o *OptionalInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*o = OptionalInt{}
		return nil
	}
	if b[0] == '"' {
		// "N/A" or similar placeholder, treated as unknown
		*o = OptionalInt{}
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		*o = OptionalInt{}
		return nil
	}
	*o = OptionalInt{Value: v, Valid: true}
	return nil
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return json.Marshal(NotAvailable)
	}
	return json.Marshal(o.Value)
}

type PlayerBio struct {
	Age    OptionalInt `json:"age"`
	Height OptionalInt `json:"height"`
	Weight OptionalInt `json:"weight"`
}

type PlayerTeam struct {
	Id   json.Number `json:"id"`
	Name string      `json:"name"`
}

type PlayerClause struct {
	Value OptionalInt `json:"value"`
}

type PlayerInfo struct {
	Id       json.Number  `json:"id"`
	Name     string       `json:"name"`
	PhotoUrl string       `json:"photoUrl"`
	Value    OptionalInt  `json:"value"`
	Points   OptionalInt  `json:"points"`
	Clause   PlayerClause `json:"clause"`
	Team     PlayerTeam   `json:"team"`
	Bio      PlayerBio    `json:"bio"`
}

type chartPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type valuesChart struct {
	Points []chartPoint `json:"points"`
}

// PlayerDetail is the decoded payload of the player detail endpoint.
type PlayerDetail struct {
	Player        PlayerInfo           `json:"player"`
	Values        []ValueChange        `json:"values"`
	PointsHistory []PointsHistoryEntry `json:"points_history"`
	ValuesChart   valuesChart          `json:"values_chart"`
	NextMatch     json.RawMessage      `json:"next_match"`
}

type UserInfo struct {
	Id     json.Number `json:"id"`
	Name   string      `json:"name"`
	Avatar string      `json:"avatar"`
}

// UserDetail is the decoded payload of the user detail endpoint.
// Gameweeks, lineup and bench are kept raw: their shape varies per
// league mode and only the presentation layer interprets them.
type UserDetail struct {
	UserInfo  UserInfo        `json:"userInfo"`
	Balance   OptionalInt     `json:"balance"`
	Value     OptionalInt     `json:"value"`
	Season    json.RawMessage `json:"season"`
	Gameweeks json.RawMessage `json:"gameweeks"`
	Lineup    json.RawMessage `json:"lineup"`
	Bench     json.RawMessage `json:"bench"`
}
