package fantasy

import (
	"errors"
	"reflect"
	"testing"

	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
)

func TestSubstitute_Rejections(t *testing.T) {
	rules := DefaultRules()
	lineup := mustBuildSquad(t, validCandidates(), 1000).Lineup()

	tests := []struct {
		name   string
		out    string
		in     string
		target error
	}{
		{name: "goalkeeper for outfield", out: "gk1", in: "def5", target: ErrGoalkeeperMismatch},
		{name: "outfield for goalkeeper", out: "mid1", in: "gk2", target: ErrGoalkeeperMismatch},
		{name: "both starters", out: "def1", in: "def2", target: ErrSubstitutionSideInvalid},
		{name: "both bench", out: "mid4", in: "mid5", target: ErrSubstitutionSideInvalid},
		{name: "unknown out", out: "ghost", in: "mid4", target: ErrPlayerNotInSquad},
		{name: "unknown in", out: "mid1", in: "ghost", target: ErrPlayerNotInSquad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := lineup.Clone()

			_, err := Substitute(lineup, tt.out, tt.in, rules)
			if !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
			if !reflect.DeepEqual(before, lineup) {
				t.Fatalf("rejected substitution mutated the lineup")
			}
		})
	}
}

func TestSubstitute_GoalkeeperForGoalkeeper(t *testing.T) {
	lineup := mustBuildSquad(t, validCandidates(), 1000).Lineup()

	got, err := Substitute(lineup, "gk1", "gk2", DefaultRules())
	if err != nil {
		t.Fatalf("substitute goalkeepers: %v", err)
	}
	if got.Starting11[0].ID() != "gk2" || !got.Starting11[0].InStarting11 {
		t.Fatalf("expected gk2 in goal, got %+v", got.Starting11[0])
	}
	if got.Bench[0].ID() != "gk1" || !got.Bench[0].OnBench {
		t.Fatalf("expected gk1 on bench, got %+v", got.Bench[0])
	}
	if n := got.StarterCounts()[player.PositionGoalkeeper]; n != 1 {
		t.Fatalf("expected one goalkeeper, got %d", n)
	}
}

func TestSubstitute_RoundTrip(t *testing.T) {
	rules := DefaultRules()
	original := mustBuildSquad(t, validCandidates(), 1000).Lineup()

	swapped, err := Substitute(original, "mid1", "def5", rules)
	if err != nil {
		t.Fatalf("substitute: %v", err)
	}
	restored, err := Substitute(swapped, "def5", "mid1", rules)
	if err != nil {
		t.Fatalf("substitute back: %v", err)
	}
	if !reflect.DeepEqual(original, restored) {
		t.Fatalf("round trip changed lineup:\nwant %v / %v\ngot  %v / %v",
			original.StarterIDs(), original.BenchIDs(), restored.StarterIDs(), restored.BenchIDs())
	}
}

func TestSubstitute_DirectionIsSymmetric(t *testing.T) {
	rules := DefaultRules()
	lineup := mustBuildSquad(t, validCandidates(), 1000).Lineup()

	a, err := Substitute(lineup, "fwd2", "mid4", rules)
	if err != nil {
		t.Fatalf("starter first: %v", err)
	}
	b, err := Substitute(lineup, "mid4", "fwd2", rules)
	if err != nil {
		t.Fatalf("bench first: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical results for either argument order")
	}
}

// Starters 1-3-4-3 with three defenders and a keeper on the bench: every
// defender brought on for a midfielder succeeds until midfield drops below two.
func TestSubstitute_DefendersForMidfieldersUntilBoundBreaks(t *testing.T) {
	rules := DefaultRules()

	gks := playersFor(player.PositionGoalkeeper, "gk", 2, 50)
	defs := playersFor(player.PositionDefender, "def", 6, 50)
	mids := playersFor(player.PositionMidfielder, "mid", 4, 50)
	fwds := playersFor(player.PositionForward, "fwd", 3, 50)

	starters := append(append(append(append([]SquadMember{}, gks[0]), defs[:3]...), mids...), fwds...)
	bench := append(append([]SquadMember{}, defs[3:]...), gks[1])
	lineup := lineupOf(starters, bench)
	if err := ValidateLineup(lineup, rules); err != nil {
		t.Fatalf("fixture lineup invalid: %v", err)
	}

	var err error
	lineup, err = Substitute(lineup, "mid1", "def4", rules)
	if err != nil {
		t.Fatalf("fourth defender: %v", err)
	}
	if n := lineup.StarterCounts()[player.PositionDefender]; n != 4 {
		t.Fatalf("expected 4 defenders, got %d", n)
	}

	lineup, err = Substitute(lineup, "mid2", "def5", rules)
	if err != nil {
		t.Fatalf("fifth defender: %v", err)
	}

	before := lineup.Clone()
	_, err = Substitute(lineup, "mid3", "def6", rules)
	if !errors.Is(err, ErrFormationBoundViolated) {
		t.Fatalf("expected ErrFormationBoundViolated, got %v", err)
	}
	list := mustValidationErrors(t, err)

	var sawMidfield bool
	for _, item := range list {
		if item.Context["position"] == string(player.PositionMidfielder) {
			sawMidfield = true
			if item.Message != "would leave 1 MID, minimum is 2" {
				t.Fatalf("unexpected message: %q", item.Message)
			}
		}
	}
	if !sawMidfield {
		t.Fatalf("expected a midfield bound violation, got %v", list)
	}
	if !reflect.DeepEqual(before, lineup) {
		t.Fatalf("rejected substitution mutated the lineup")
	}
}

func TestSubstituteInSquad_BenchedCaptainLosesRole(t *testing.T) {
	rules := DefaultRules()
	squad := mustBuildSquad(t, validCandidates(), 1000)

	squad, err := AssignRole(squad, "mid2", RoleCaptain)
	if err != nil {
		t.Fatalf("assign captain: %v", err)
	}
	squad, err = ToggleSpecialist(squad, "mid2", SpecialistPenalty)
	if err != nil {
		t.Fatalf("toggle penalty: %v", err)
	}

	squad, err = SubstituteInSquad(squad, "mid2", "mid4", rules)
	if err != nil {
		t.Fatalf("substitute: %v", err)
	}

	mid2, _ := squad.Member("mid2")
	if !mid2.OnBench || mid2.Role != RoleNone || mid2.IsPenaltyTaker {
		t.Fatalf("benched captain should lose role and flags: %+v", mid2)
	}
	if _, ok := squad.Captain(); ok {
		t.Fatalf("captaincy is not reassigned implicitly")
	}
	mid4, _ := squad.Member("mid4")
	if !mid4.InStarting11 || mid4.Role != RoleNone {
		t.Fatalf("incoming player should start without a role: %+v", mid4)
	}
	if err := ValidateSquad(squad, rules); err != nil {
		t.Fatalf("squad should stay valid: %v", err)
	}
}
