package fantasy

import (
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
)

// DeriveLineup builds a default partition: one goalkeeper, then up to the
// derivation shape per position in GK, DEF, MID, FWD order, topped up to the
// starter size within formation maxima. The result must still pass
// ValidateLineup; when it cannot, the caller has to assign the lineup manually.
func DeriveLineup(squad Squad, rules Rules) (Lineup, error) {
	starters := make([]SquadMember, 0, rules.StarterSize)
	picked := make(map[string]struct{}, rules.StarterSize)
	counts := make(map[player.Position]int, len(player.OrderedPositions))

	take := func(pos player.Position, limit int) {
		for _, m := range squad.Members {
			if len(starters) >= rules.StarterSize || counts[pos] >= limit {
				return
			}
			if m.Position() != pos {
				continue
			}
			if _, ok := picked[m.ID()]; ok {
				continue
			}
			m.moveToStarting11()
			starters = append(starters, m)
			picked[m.ID()] = struct{}{}
			counts[pos]++
		}
	}

	for _, pos := range player.OrderedPositions {
		take(pos, rules.DerivationShape[pos])
	}
	for _, pos := range player.OrderedPositions {
		take(pos, rules.StarterBounds[pos].Max)
	}

	bench := make([]SquadMember, 0, len(squad.Members)-len(starters))
	for _, m := range squad.Members {
		if _, ok := picked[m.ID()]; ok {
			continue
		}
		m.moveToBench()
		bench = append(bench, m)
	}

	lineup := Lineup{Starting11: starters, Bench: bench}
	if err := ValidateLineup(lineup, rules); err != nil {
		return Lineup{}, err
	}
	return lineup, nil
}

// ValidateLineup checks partition sizes, disjointness and starting formation
// bounds. It never mutates its input, so repeated calls agree.
func ValidateLineup(lineup Lineup, rules Rules) error {
	var c collector
	checkLineup(&c, lineup, rules)
	return c.err()
}

func checkLineup(c *collector, lineup Lineup, rules Rules) {
	if len(lineup.Starting11) != rules.StarterSize {
		c.add(KindLineupMembership,
			map[string]any{"slot": "starting11", "current": len(lineup.Starting11), "required": rules.StarterSize},
			"starting lineup has %d players, expected %d", len(lineup.Starting11), rules.StarterSize,
		)
	}
	if len(lineup.Bench) != rules.BenchSize {
		c.add(KindLineupMembership,
			map[string]any{"slot": "bench", "current": len(lineup.Bench), "required": rules.BenchSize},
			"bench has %d players, expected %d", len(lineup.Bench), rules.BenchSize,
		)
	}

	seen := make(map[string]struct{}, len(lineup.Starting11)+len(lineup.Bench))
	for _, m := range append(append([]SquadMember(nil), lineup.Starting11...), lineup.Bench...) {
		if _, ok := seen[m.ID()]; ok {
			c.add(KindLineupMembership,
				map[string]any{"member_id": m.ID()},
				"player %s appears more than once in the lineup", m.ID(),
			)
			continue
		}
		seen[m.ID()] = struct{}{}
	}

	checkFormation(c, lineup.StarterCounts(), rules, false)
}

// checkFormation reports every starter count outside its bound. Hypothetical
// counts come from a simulated substitution and are worded that way.
func checkFormation(c *collector, counts map[player.Position]int, rules Rules, hypothetical bool) {
	for _, pos := range player.OrderedPositions {
		bound := rules.StarterBounds[pos]
		n := counts[pos]
		if bound.Contains(n) {
			continue
		}

		context := map[string]any{"position": string(pos), "current": n, "min": bound.Min, "max": bound.Max}
		switch {
		case !hypothetical:
			c.add(KindFormationBoundViolated, context, "%s count %d, expected %d-%d", pos, n, bound.Min, bound.Max)
		case n < bound.Min:
			c.add(KindFormationBoundViolated, context, "would leave %d %s, minimum is %d", n, pos, bound.Min)
		default:
			c.add(KindFormationBoundViolated, context, "would field %d %s, maximum is %d", n, pos, bound.Max)
		}
	}
}

// ApplyLineup commits a partition onto the squad. The lineup must cover exactly
// the squad's members and pass ValidateLineup. Members are reordered starters
// first so Squad.Lineup reproduces the slot order. Anyone landing on the bench
// loses role and specialist flags.
func ApplyLineup(squad Squad, lineup Lineup, rules Rules) (Squad, error) {
	var c collector

	lineupIDs := make(map[string]struct{}, len(lineup.Starting11)+len(lineup.Bench))
	for _, id := range append(lineup.StarterIDs(), lineup.BenchIDs()...) {
		lineupIDs[id] = struct{}{}
		if squad.indexOf(id) < 0 {
			c.add(KindPlayerNotInSquad, map[string]any{"player_id": id}, "player %s is not part of the squad", id)
		}
	}
	for _, m := range squad.Members {
		if _, ok := lineupIDs[m.ID()]; !ok {
			c.add(KindLineupMembership, map[string]any{"member_id": m.ID()}, "squad player %s is missing from the lineup", m.ID())
		}
	}
	if err := c.err(); err != nil {
		return Squad{}, err
	}

	if err := ValidateLineup(lineup, rules); err != nil {
		return Squad{}, err
	}

	members := make([]SquadMember, 0, len(squad.Members))
	for _, starter := range lineup.Starting11 {
		m, _ := squad.Member(starter.ID())
		m.moveToStarting11()
		members = append(members, m)
	}
	for _, benched := range lineup.Bench {
		m, _ := squad.Member(benched.ID())
		m.moveToBench()
		members = append(members, m)
	}

	out := squad.Clone()
	out.Members = members
	return out, nil
}

// LineupFromStarterIDs builds a partition from explicit starter ids; every other
// squad member lands on the bench. Unknown ids are reported, not dropped.
func LineupFromStarterIDs(squad Squad, starterIDs []string) (Lineup, error) {
	var c collector

	lineup := Lineup{
		Starting11: make([]SquadMember, 0, len(starterIDs)),
		Bench:      make([]SquadMember, 0, len(squad.Members)),
	}
	starters := make(map[string]struct{}, len(starterIDs))
	for _, id := range starterIDs {
		m, ok := squad.Member(id)
		if !ok {
			c.add(KindPlayerNotInSquad, map[string]any{"player_id": id}, "player %s is not part of the squad", id)
			continue
		}
		if _, dup := starters[id]; dup {
			c.add(KindLineupMembership, map[string]any{"member_id": id}, "player %s appears more than once in the lineup", id)
			continue
		}
		starters[id] = struct{}{}
		lineup.Starting11 = append(lineup.Starting11, m)
	}
	if err := c.err(); err != nil {
		return Lineup{}, err
	}

	for _, m := range squad.Members {
		if _, ok := starters[m.ID()]; ok {
			continue
		}
		lineup.Bench = append(lineup.Bench, m)
	}
	return lineup, nil
}
