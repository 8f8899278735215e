package postgres

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
)

type playerTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	LeagueID    string     `db:"league_public_id"`
	TeamID      string     `db:"team_public_id"`
	Name        string     `db:"name"`
	Position    string     `db:"position"`
	CountryCode string     `db:"country_code"`
	Price       int64      `db:"price"`
	TotalPoints int        `db:"total_points"`
	Stats       []byte     `db:"stats"`
	IsActive    bool       `db:"is_active"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

func (m playerTableModel) toDomain() (player.Player, error) {
	stats, err := decodeStats(m.Stats)
	if err != nil {
		return player.Player{}, err
	}

	return player.Player{
		ID:       m.PublicID,
		LeagueID: m.LeagueID,
		TeamID:   m.TeamID,
		Name:     m.Name,
		Position: player.Position(m.Position),
		Country:  m.CountryCode,
		Price:    m.Price,
		Points:   m.TotalPoints,
		Stats:    stats,
	}, nil
}

func decodeStats(raw []byte) (player.Stats, error) {
	var stats player.Stats
	if len(raw) == 0 {
		return stats, nil
	}
	if err := sonic.Unmarshal(raw, &stats); err != nil {
		return player.Stats{}, err
	}
	return stats, nil
}

// encodeStats returns JSON text; lib/pq would send a []byte as bytea, which a
// JSONB column rejects.
func encodeStats(stats player.Stats) (string, error) {
	return sonic.MarshalString(stats)
}
