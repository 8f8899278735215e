package player

import "fmt"

// Position represents football position categories used in fantasy rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// OrderedPositions lists positions in goalkeeper-to-forward order.
var OrderedPositions = []Position{
	PositionGoalkeeper,
	PositionDefender,
	PositionMidfielder,
	PositionForward,
}

func (p Position) Valid() bool {
	_, ok := AllPositions[p]
	return ok
}

// Stats holds informational per-player numbers from the catalog.
// None of them take part in roster rules.
type Stats struct {
	Goals        int `json:"goals"`
	Assists      int `json:"assists"`
	CleanSheets  int `json:"clean_sheets"`
	MinutesTotal int `json:"minutes_total"`
}

// Player is a selectable athlete in a fantasy league pool.
type Player struct {
	ID       string
	LeagueID string
	TeamID   string
	Name     string
	Position Position
	Country  string
	Price    int64
	Points   int
	Stats    Stats
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.LeagueID == "" {
		return fmt.Errorf("player league id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if !p.Position.Valid() {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Price <= 0 {
		return fmt.Errorf("player price must be greater than zero")
	}

	return nil
}
