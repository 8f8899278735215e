package fantasy

import (
	"fmt"
	"testing"

	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
)

func testPlayer(id string, pos player.Position, price int64) player.Player {
	return player.Player{
		ID:       id,
		LeagueID: "league-1",
		TeamID:   "team-" + id,
		Name:     "Player " + id,
		Position: pos,
		Country:  "ID",
		Price:    price,
	}
}

func playersFor(pos player.Position, prefix string, n int, price int64) []SquadMember {
	out := make([]SquadMember, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, NewSquadMember(testPlayer(fmt.Sprintf("%s%d", prefix, i), pos, price)))
	}
	return out
}

// validCandidates returns gk1-2, def1-5, mid1-5, fwd1-3, all priced 60.
func validCandidates() []SquadMember {
	out := playersFor(player.PositionGoalkeeper, "gk", 2, 60)
	out = append(out, playersFor(player.PositionDefender, "def", 5, 60)...)
	out = append(out, playersFor(player.PositionMidfielder, "mid", 5, 60)...)
	out = append(out, playersFor(player.PositionForward, "fwd", 3, 60)...)
	return out
}

func mustBuildSquad(t *testing.T, candidates []SquadMember, budgetCap int64) Squad {
	t.Helper()

	squad, err := BuildSquad(candidates, budgetCap, DefaultRules())
	if err != nil {
		t.Fatalf("build squad: %v", err)
	}
	return squad
}

func mustValidationErrors(t *testing.T, err error) ValidationErrors {
	t.Helper()

	if err == nil {
		t.Fatalf("expected validation errors, got nil")
	}
	list, ok := AsValidationErrors(err)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
	}
	return list
}

func lineupOf(starters, bench []SquadMember) Lineup {
	l := Lineup{}
	for _, m := range starters {
		m.moveToStarting11()
		l.Starting11 = append(l.Starting11, m)
	}
	for _, m := range bench {
		m.moveToBench()
		l.Bench = append(l.Bench, m)
	}
	return l
}

func sameIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
