package fantasy

import (
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
)

// Substitute swaps one starter with one bench player. Either argument order is
// accepted as long as the two players sit on opposite sides. The swap is
// simulated and checked before anything changes; the first violated rule is
// returned. The player leaving the starting lineup loses role and specialist
// flags; reassigning them is left to AssignRole and ToggleSpecialist.
func Substitute(lineup Lineup, playerOutID, playerInID string, rules Rules) (Lineup, error) {
	outStart, outBench := indexOfMember(lineup.Starting11, playerOutID), indexOfMember(lineup.Bench, playerOutID)
	if outStart < 0 && outBench < 0 {
		return Lineup{}, reject(KindPlayerNotInSquad,
			map[string]any{"player_id": playerOutID},
			"player %s is not in the lineup", playerOutID,
		)
	}
	inStart, inBench := indexOfMember(lineup.Starting11, playerInID), indexOfMember(lineup.Bench, playerInID)
	if inStart < 0 && inBench < 0 {
		return Lineup{}, reject(KindPlayerNotInSquad,
			map[string]any{"player_id": playerInID},
			"player %s is not in the lineup", playerInID,
		)
	}

	starterIdx, benchIdx := outStart, inBench
	if outStart < 0 {
		starterIdx, benchIdx = inStart, outBench
	}
	if starterIdx < 0 || benchIdx < 0 {
		return Lineup{}, reject(KindSubstitutionSideInvalid,
			map[string]any{"player_out_id": playerOutID, "player_in_id": playerInID},
			"players %s and %s are on the same side of the lineup", playerOutID, playerInID,
		)
	}

	starter := lineup.Starting11[starterIdx]
	benched := lineup.Bench[benchIdx]

	starterIsGK := starter.Position() == player.PositionGoalkeeper
	benchedIsGK := benched.Position() == player.PositionGoalkeeper
	if starterIsGK != benchedIsGK {
		return Lineup{}, reject(KindGoalkeeperMismatch,
			map[string]any{
				"starter_id":       starter.ID(),
				"starter_position": string(starter.Position()),
				"bench_id":         benched.ID(),
				"bench_position":   string(benched.Position()),
			},
			"goalkeeper %s can only be swapped with another goalkeeper", goalkeeperOf(starter, benched).ID(),
		)
	}

	counts := lineup.StarterCounts()
	counts[starter.Position()]--
	counts[benched.Position()]++

	var c collector
	checkFormation(&c, counts, rules, true)
	if err := c.err(); err != nil {
		return Lineup{}, err
	}

	out := lineup.Clone()
	starter.moveToBench()
	benched.moveToStarting11()
	out.Starting11[starterIdx] = benched
	out.Bench[benchIdx] = starter
	return out, nil
}

// SubstituteInSquad runs Substitute against the squad's current lineup and
// commits the result.
func SubstituteInSquad(squad Squad, playerOutID, playerInID string, rules Rules) (Squad, error) {
	lineup, err := Substitute(squad.Lineup(), playerOutID, playerInID, rules)
	if err != nil {
		return Squad{}, err
	}
	return ApplyLineup(squad, lineup, rules)
}

func goalkeeperOf(a, b SquadMember) SquadMember {
	if a.Position() == player.PositionGoalkeeper {
		return a
	}
	return b
}
