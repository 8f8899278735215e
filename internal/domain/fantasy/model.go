package fantasy

import (
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
)

// Role is the exclusive armband a starter may hold.
type Role string

const (
	RoleNone        Role = ""
	RoleCaptain     Role = "captain"
	RoleViceCaptain Role = "vice_captain"
)

func (r Role) Valid() bool {
	switch r {
	case RoleNone, RoleCaptain, RoleViceCaptain:
		return true
	default:
		return false
	}
}

// SpecialistKind selects one of the set-piece flags.
type SpecialistKind string

const (
	SpecialistPenalty  SpecialistKind = "penalty"
	SpecialistFreeKick SpecialistKind = "free_kick"
)

func (k SpecialistKind) Valid() bool {
	return k == SpecialistPenalty || k == SpecialistFreeKick
}

// SquadMember wraps a catalog player with roster-scoped state.
type SquadMember struct {
	Player          player.Player
	InSquad         bool
	InStarting11    bool
	OnBench         bool
	Role            Role
	IsPenaltyTaker  bool
	IsFreeKickTaker bool
}

func NewSquadMember(p player.Player) SquadMember {
	return SquadMember{Player: p, InSquad: true}
}

func (m SquadMember) ID() string {
	return m.Player.ID
}

func (m SquadMember) Position() player.Position {
	return m.Player.Position
}

func (m SquadMember) specialist(kind SpecialistKind) bool {
	if kind == SpecialistPenalty {
		return m.IsPenaltyTaker
	}
	return m.IsFreeKickTaker
}

func (m *SquadMember) setSpecialist(kind SpecialistKind, on bool) {
	if kind == SpecialistPenalty {
		m.IsPenaltyTaker = on
		return
	}
	m.IsFreeKickTaker = on
}

func (m *SquadMember) moveToBench() {
	m.InStarting11 = false
	m.OnBench = true
	m.Role = RoleNone
	m.IsPenaltyTaker = false
	m.IsFreeKickTaker = false
}

func (m *SquadMember) moveToStarting11() {
	m.InStarting11 = true
	m.OnBench = false
}

// TransferRecord is appended on each committed transfer for quota accounting.
type TransferRecord struct {
	PlayerOutID string
	PlayerInID  string
	PeriodID    string
	CreatedAt   time.Time
}

// Squad is one team's authoritative roster. Engine operations never mutate a
// Squad in place; they return a new value for the caller to commit.
type Squad struct {
	ID        string
	UserID    string
	LeagueID  string
	Name      string
	BudgetCap int64
	Members   []SquadMember
	Transfers []TransferRecord
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Squad) ValidateBasic() error {
	if s.ID == "" {
		return fmt.Errorf("squad id is required")
	}
	if s.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if s.LeagueID == "" {
		return fmt.Errorf("league id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("squad name is required")
	}
	if s.BudgetCap <= 0 {
		return fmt.Errorf("budget cap must be greater than zero")
	}
	if len(s.Members) == 0 {
		return fmt.Errorf("squad members are required")
	}

	return nil
}

func (s Squad) Clone() Squad {
	copied := s
	copied.Members = append([]SquadMember(nil), s.Members...)
	copied.Transfers = append([]TransferRecord(nil), s.Transfers...)
	return copied
}

func (s Squad) Member(playerID string) (SquadMember, bool) {
	idx := s.indexOf(playerID)
	if idx < 0 {
		return SquadMember{}, false
	}
	return s.Members[idx], true
}

func (s Squad) indexOf(playerID string) int {
	return indexOfMember(s.Members, playerID)
}

func (s Squad) TotalSpend() int64 {
	return totalPrice(s.Members)
}

func (s Squad) PositionCounts() map[player.Position]int {
	return countPositions(s.Members)
}

// TransfersUsed counts committed transfers recorded for one period.
func (s Squad) TransfersUsed(periodID string) int {
	used := 0
	for _, t := range s.Transfers {
		if t.PeriodID == periodID {
			used++
		}
	}
	return used
}

// Lineup returns the current starting/bench partition in squad order.
func (s Squad) Lineup() Lineup {
	out := Lineup{
		Starting11: make([]SquadMember, 0, len(s.Members)),
		Bench:      make([]SquadMember, 0, len(s.Members)),
	}
	for _, m := range s.Members {
		if m.InStarting11 {
			out.Starting11 = append(out.Starting11, m)
			continue
		}
		out.Bench = append(out.Bench, m)
	}
	return out
}

// Captain returns the current captain, if any.
func (s Squad) Captain() (SquadMember, bool) {
	return s.roleHolder(RoleCaptain)
}

func (s Squad) ViceCaptain() (SquadMember, bool) {
	return s.roleHolder(RoleViceCaptain)
}

func (s Squad) roleHolder(role Role) (SquadMember, bool) {
	for _, m := range s.Members {
		if m.Role == role {
			return m, true
		}
	}
	return SquadMember{}, false
}

// Lineup is the Starting11/Bench partition of a squad. Slice order is the slot
// order; substitutions swap slots so a reversed substitution restores it.
type Lineup struct {
	Starting11 []SquadMember
	Bench      []SquadMember
}

func (l Lineup) Clone() Lineup {
	return Lineup{
		Starting11: append([]SquadMember(nil), l.Starting11...),
		Bench:      append([]SquadMember(nil), l.Bench...),
	}
}

func (l Lineup) StarterCounts() map[player.Position]int {
	return countPositions(l.Starting11)
}

func (l Lineup) StarterIDs() []string {
	return memberIDs(l.Starting11)
}

func (l Lineup) BenchIDs() []string {
	return memberIDs(l.Bench)
}

func countPositions(members []SquadMember) map[player.Position]int {
	out := make(map[player.Position]int, len(player.OrderedPositions))
	for _, m := range members {
		out[m.Position()]++
	}
	return out
}

func totalPrice(members []SquadMember) int64 {
	var total int64
	for _, m := range members {
		total += m.Player.Price
	}
	return total
}

func memberIDs(members []SquadMember) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, m.ID())
	}
	return out
}

func indexOfMember(members []SquadMember, playerID string) int {
	for i, m := range members {
		if m.ID() == playerID {
			return i
		}
	}
	return -1
}
