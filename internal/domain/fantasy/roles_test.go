package fantasy

import (
	"errors"
	"testing"
)

func TestAssignRole_ReassignmentRevokesPreviousHolder(t *testing.T) {
	squad := mustBuildSquad(t, validCandidates(), 1000)

	squad, err := AssignRole(squad, "def1", RoleCaptain)
	if err != nil {
		t.Fatalf("assign captain to def1: %v", err)
	}
	squad, err = AssignRole(squad, "fwd1", RoleCaptain)
	if err != nil {
		t.Fatalf("assign captain to fwd1: %v", err)
	}

	holders := 0
	for _, m := range squad.Members {
		if m.Role == RoleCaptain {
			holders++
			if m.ID() != "fwd1" {
				t.Fatalf("expected fwd1 as captain, got %s", m.ID())
			}
		}
	}
	if holders != 1 {
		t.Fatalf("expected exactly one captain, got %d", holders)
	}
}

func TestAssignRole_BenchPlayerRejected(t *testing.T) {
	squad := mustBuildSquad(t, validCandidates(), 1000)
	squad, err := AssignRole(squad, "def1", RoleCaptain)
	if err != nil {
		t.Fatalf("assign captain: %v", err)
	}

	_, err = AssignRole(squad, "mid5", RoleCaptain)
	if !errors.Is(err, ErrRoleRequiresStarter) {
		t.Fatalf("expected ErrRoleRequiresStarter, got %v", err)
	}

	captain, ok := squad.Captain()
	if !ok || captain.ID() != "def1" {
		t.Fatalf("existing captain should be unchanged, got %+v", captain)
	}
}

func TestAssignRole_CaptainAndViceCaptainExclusivePerPlayer(t *testing.T) {
	squad := mustBuildSquad(t, validCandidates(), 1000)

	squad, err := AssignRole(squad, "mid1", RoleViceCaptain)
	if err != nil {
		t.Fatalf("assign vice captain: %v", err)
	}
	squad, err = AssignRole(squad, "mid1", RoleCaptain)
	if err != nil {
		t.Fatalf("promote to captain: %v", err)
	}

	mid1, _ := squad.Member("mid1")
	if mid1.Role != RoleCaptain {
		t.Fatalf("expected captain, got %q", mid1.Role)
	}
	if _, ok := squad.ViceCaptain(); ok {
		t.Fatalf("vice captain slot should be empty after promotion")
	}
	if err := ValidateSquad(squad, DefaultRules()); err != nil {
		t.Fatalf("squad should validate: %v", err)
	}
}

func TestAssignRole_ClearAndInvalid(t *testing.T) {
	squad := mustBuildSquad(t, validCandidates(), 1000)
	squad, err := AssignRole(squad, "def2", RoleViceCaptain)
	if err != nil {
		t.Fatalf("assign vice captain: %v", err)
	}

	cleared, err := AssignRole(squad, "def2", RoleNone)
	if err != nil {
		t.Fatalf("clear role: %v", err)
	}
	if _, ok := cleared.ViceCaptain(); ok {
		t.Fatalf("expected no vice captain after clearing")
	}
	if _, ok := squad.ViceCaptain(); !ok {
		t.Fatalf("input squad must not be mutated")
	}

	if _, err := AssignRole(squad, "def2", Role("manager")); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := AssignRole(squad, "ghost", RoleCaptain); !errors.Is(err, ErrPlayerNotInSquad) {
		t.Fatalf("expected ErrPlayerNotInSquad, got %v", err)
	}
}

func TestToggleSpecialist(t *testing.T) {
	squad := mustBuildSquad(t, validCandidates(), 1000)

	squad, err := ToggleSpecialist(squad, "fwd1", SpecialistPenalty)
	if err != nil {
		t.Fatalf("toggle on fwd1: %v", err)
	}
	squad, err = ToggleSpecialist(squad, "mid3", SpecialistPenalty)
	if err != nil {
		t.Fatalf("toggle on mid3: %v", err)
	}

	fwd1, _ := squad.Member("fwd1")
	mid3, _ := squad.Member("mid3")
	if fwd1.IsPenaltyTaker || !mid3.IsPenaltyTaker {
		t.Fatalf("penalty duty should move to mid3: fwd1=%v mid3=%v", fwd1.IsPenaltyTaker, mid3.IsPenaltyTaker)
	}

	squad, err = ToggleSpecialist(squad, "mid3", SpecialistFreeKick)
	if err != nil {
		t.Fatalf("free kick on mid3: %v", err)
	}
	mid3, _ = squad.Member("mid3")
	if !mid3.IsPenaltyTaker || !mid3.IsFreeKickTaker {
		t.Fatalf("specialist flags are independent: %+v", mid3)
	}

	squad, err = ToggleSpecialist(squad, "mid3", SpecialistPenalty)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	for _, m := range squad.Members {
		if m.IsPenaltyTaker {
			t.Fatalf("expected no penalty taker, found %s", m.ID())
		}
	}

	if _, err := ToggleSpecialist(squad, "gk2", SpecialistFreeKick); !errors.Is(err, ErrRoleRequiresStarter) {
		t.Fatalf("expected ErrRoleRequiresStarter, got %v", err)
	}
	if _, err := ToggleSpecialist(squad, "gk1", SpecialistKind("corner")); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}
