package fantasy

import (
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
)

// Bound is an inclusive count range.
type Bound struct {
	Min int
	Max int
}

func (b Bound) Contains(n int) bool {
	return n >= b.Min && n <= b.Max
}

// Rules stores fantasy roster validation parameters.
type Rules struct {
	SquadSize        int
	BudgetCap        int64
	SquadComposition map[player.Position]int
	StarterSize      int
	BenchSize        int
	StarterBounds    map[player.Position]Bound
	// DerivationShape caps how many starters per position DeriveLineup takes
	// in its first greedy pass.
	DerivationShape map[player.Position]int
	TransferLimit   int
}

func DefaultRules() Rules {
	return Rules{
		SquadSize: 15,
		BudgetCap: 1000,
		SquadComposition: map[player.Position]int{
			player.PositionGoalkeeper: 2,
			player.PositionDefender:   5,
			player.PositionMidfielder: 5,
			player.PositionForward:    3,
		},
		StarterSize: 11,
		BenchSize:   4,
		StarterBounds: map[player.Position]Bound{
			player.PositionGoalkeeper: {Min: 1, Max: 1},
			player.PositionDefender:   {Min: 3, Max: 5},
			player.PositionMidfielder: {Min: 2, Max: 5},
			player.PositionForward:    {Min: 1, Max: 3},
		},
		DerivationShape: map[player.Position]int{
			player.PositionGoalkeeper: 1,
			player.PositionDefender:   4,
			player.PositionMidfielder: 3,
			player.PositionForward:    3,
		},
		TransferLimit: 4,
	}
}

// BuildSquad validates a candidate roster and commits it with the derived
// default lineup. Every violated rule is reported; nothing is committed unless
// all of them pass. Lineup and role flags on the candidates are ignored.
func BuildSquad(candidates []SquadMember, budgetCap int64, rules Rules) (Squad, error) {
	var c collector

	if len(candidates) != rules.SquadSize {
		c.add(KindSquadSizeInvalid,
			map[string]any{"current": len(candidates), "required": rules.SquadSize},
			"squad has %d players, expected %d", len(candidates), rules.SquadSize,
		)
	}

	seen := make(map[string]struct{}, len(candidates))
	for _, m := range candidates {
		id := m.ID()
		if id == "" {
			c.add(KindInvalidPlayer, map[string]any{"player_id": id}, "player id is required")
			continue
		}
		if _, ok := seen[id]; ok {
			c.add(KindDuplicatePlayer, map[string]any{"player_id": id}, "player %s selected more than once", id)
			continue
		}
		seen[id] = struct{}{}

		if !m.Position().Valid() {
			c.add(KindUnknownPosition,
				map[string]any{"player_id": id, "position": string(m.Position())},
				"player %s has unknown position %q", id, m.Position(),
			)
		}
		if m.Player.Price <= 0 {
			c.add(KindInvalidPlayer,
				map[string]any{"player_id": id, "price": m.Player.Price},
				"player %s price must be greater than zero", id,
			)
		}
	}

	counts := countPositions(candidates)
	for _, pos := range player.OrderedPositions {
		required := rules.SquadComposition[pos]
		if counts[pos] != required {
			c.add(KindPositionCountInvalid,
				map[string]any{"position": string(pos), "current": counts[pos], "required": required},
				"%s count %d, expected %d", pos, counts[pos], required,
			)
		}
	}

	total := totalPrice(candidates)
	if total > budgetCap {
		c.add(KindBudgetExceeded,
			map[string]any{"total": total, "budget_cap": budgetCap, "overspend": total - budgetCap},
			"squad costs %d, budget cap is %d (over by %d)", total, budgetCap, total-budgetCap,
		)
	}

	if err := c.err(); err != nil {
		return Squad{}, err
	}

	members := make([]SquadMember, 0, len(candidates))
	for _, m := range candidates {
		members = append(members, NewSquadMember(m.Player))
	}
	squad := Squad{BudgetCap: budgetCap, Members: members}

	lineup, err := DeriveLineup(squad, rules)
	if err != nil {
		return Squad{}, err
	}
	return ApplyLineup(squad, lineup, rules)
}

// ValidateSquad re-checks every roster invariant on a stored squad: size and
// composition, budget, partition and formation, role and specialist exclusivity,
// and the per-period transfer quota.
func ValidateSquad(squad Squad, rules Rules) error {
	var c collector

	if len(squad.Members) != rules.SquadSize {
		c.add(KindSquadSizeInvalid,
			map[string]any{"current": len(squad.Members), "required": rules.SquadSize},
			"squad has %d players, expected %d", len(squad.Members), rules.SquadSize,
		)
	}

	counts := squad.PositionCounts()
	for _, pos := range player.OrderedPositions {
		required := rules.SquadComposition[pos]
		if counts[pos] != required {
			c.add(KindPositionCountInvalid,
				map[string]any{"position": string(pos), "current": counts[pos], "required": required},
				"%s count %d, expected %d", pos, counts[pos], required,
			)
		}
	}

	total := squad.TotalSpend()
	if total > squad.BudgetCap {
		c.add(KindBudgetExceeded,
			map[string]any{"total": total, "budget_cap": squad.BudgetCap, "overspend": total - squad.BudgetCap},
			"squad costs %d, budget cap is %d (over by %d)", total, squad.BudgetCap, total-squad.BudgetCap,
		)
	}

	for _, m := range squad.Members {
		if !m.InSquad || m.InStarting11 == m.OnBench {
			c.add(KindLineupMembership,
				map[string]any{"member_id": m.ID()},
				"member %s must be either a starter or on the bench", m.ID(),
			)
		}
	}
	checkLineup(&c, squad.Lineup(), rules)
	checkRoles(&c, squad.Members)

	usedByPeriod := make(map[string]int)
	for _, t := range squad.Transfers {
		usedByPeriod[t.PeriodID]++
	}
	for periodID, used := range usedByPeriod {
		if used > rules.TransferLimit {
			c.add(KindTransferLimitReached,
				map[string]any{"period_id": periodID, "used": used, "limit": rules.TransferLimit},
				"period %s has %d transfers, limit is %d", periodID, used, rules.TransferLimit,
			)
		}
	}

	return c.err()
}

func checkRoles(c *collector, members []SquadMember) {
	holders := make(map[string][]string)
	note := func(key string, m SquadMember) {
		holders[key] = append(holders[key], m.ID())
		if !m.InStarting11 {
			c.add(KindRoleRequiresStarter,
				map[string]any{"member_id": m.ID(), "role": key},
				"%s is held by bench player %s", key, m.ID(),
			)
		}
	}

	for _, m := range members {
		if !m.Role.Valid() {
			c.add(KindInvalidRole, map[string]any{"member_id": m.ID(), "role": string(m.Role)}, "unknown role %q", m.Role)
		} else if m.Role != RoleNone {
			note(string(m.Role), m)
		}
		if m.IsPenaltyTaker {
			note(string(SpecialistPenalty), m)
		}
		if m.IsFreeKickTaker {
			note(string(SpecialistFreeKick), m)
		}
	}

	for _, key := range []string{string(RoleCaptain), string(RoleViceCaptain), string(SpecialistPenalty), string(SpecialistFreeKick)} {
		if ids := holders[key]; len(ids) > 1 {
			c.add(KindRoleNotExclusive,
				map[string]any{"role": key, "member_ids": ids},
				"%s is held by %d players", key, len(ids),
			)
		}
	}
}
