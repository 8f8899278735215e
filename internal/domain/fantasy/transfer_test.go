package fantasy

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
)

func transferRequest(out string, in player.Player, used int, budgetCap int64) TransferRequest {
	return TransferRequest{
		PlayerOutID:         out,
		PlayerIn:            in,
		PeriodID:            "gw-7",
		PeriodTransfersUsed: used,
		TransferLimit:       4,
		BudgetCap:           budgetCap,
		At:                  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestTransfer_CarriesLineupAndRoleFlags(t *testing.T) {
	squad := mustBuildSquad(t, validCandidates(), 1000)
	squad, err := AssignRole(squad, "def2", RoleCaptain)
	if err != nil {
		t.Fatalf("assign captain: %v", err)
	}
	squad, err = ToggleSpecialist(squad, "def2", SpecialistFreeKick)
	if err != nil {
		t.Fatalf("toggle free kick: %v", err)
	}

	incoming := testPlayer("def-new", player.PositionDefender, 80)
	got, err := Transfer(squad, transferRequest("def2", incoming, 0, 1000))
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}

	if _, ok := got.Member("def2"); ok {
		t.Fatalf("outgoing player should be gone")
	}
	in, ok := got.Member("def-new")
	if !ok {
		t.Fatalf("incoming player missing")
	}
	if !in.InStarting11 || in.OnBench || in.Role != RoleCaptain || !in.IsFreeKickTaker {
		t.Fatalf("incoming player should inherit flags: %+v", in)
	}
	if got.TotalSpend() != 920 {
		t.Fatalf("expected spend 920, got %d", got.TotalSpend())
	}
	if got.TransfersUsed("gw-7") != 1 || got.TransfersUsed("gw-8") != 0 {
		t.Fatalf("unexpected transfer accounting: %+v", got.Transfers)
	}
	record := got.Transfers[0]
	if record.PlayerOutID != "def2" || record.PlayerInID != "def-new" || record.PeriodID != "gw-7" {
		t.Fatalf("unexpected transfer record: %+v", record)
	}
	if err := ValidateSquad(got, DefaultRules()); err != nil {
		t.Fatalf("squad should stay valid: %v", err)
	}
	if _, ok := squad.Member("def2"); !ok {
		t.Fatalf("input squad must not be mutated")
	}
}

func TestTransfer_BenchGoalkeeperLandsOnBench(t *testing.T) {
	squad := mustBuildSquad(t, validCandidates(), 1000)

	got, err := Transfer(squad, transferRequest("gk2", testPlayer("gk-new", player.PositionGoalkeeper, 40), 3, 1000))
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	in, _ := got.Member("gk-new")
	if !in.OnBench || in.InStarting11 {
		t.Fatalf("replacement should stay on the bench: %+v", in)
	}
}

func TestTransfer_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		req    TransferRequest
		target error
	}{
		{
			name:   "player not in squad",
			req:    transferRequest("ghost", testPlayer("def-new", player.PositionDefender, 60), 0, 1000),
			target: ErrPlayerNotInSquad,
		},
		{
			name:   "position mismatch",
			req:    transferRequest("gk1", testPlayer("fwd-new", player.PositionForward, 10), 0, 1000),
			target: ErrPositionMismatch,
		},
		{
			name:   "already in squad",
			req:    transferRequest("def1", testPlayer("def3", player.PositionDefender, 60), 0, 1000),
			target: ErrDuplicatePlayer,
		},
		{
			name:   "limit reached beats budget",
			req:    transferRequest("def1", testPlayer("def-new", player.PositionDefender, 5000), 4, 1000),
			target: ErrTransferLimitReached,
		},
		{
			name:   "limit reached beats duplicate",
			req:    transferRequest("def1", testPlayer("def3", player.PositionDefender, 60), 4, 1000),
			target: ErrTransferLimitReached,
		},
		{
			name:   "duplicate beats budget",
			req:    transferRequest("def1", testPlayer("def3", player.PositionDefender, 5000), 0, 1000),
			target: ErrDuplicatePlayer,
		},
		{
			name:   "position beats limit",
			req:    transferRequest("def1", testPlayer("mid-new", player.PositionMidfielder, 60), 4, 1000),
			target: ErrPositionMismatch,
		},
		{
			name:   "budget exceeded",
			req:    transferRequest("def1", testPlayer("def-new", player.PositionDefender, 161), 0, 1000),
			target: ErrBudgetExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			squad := mustBuildSquad(t, validCandidates(), 1000)

			_, err := Transfer(squad, tt.req)
			if !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
			if list := mustValidationErrors(t, err); len(list) != 1 {
				t.Fatalf("transfer should fail fast with one error, got %v", list)
			}
		})
	}
}

func TestTransfer_BudgetShortfall(t *testing.T) {
	candidates := validCandidates()
	candidates[0].Player.Price = 6
	// 6 + 14*60 = 846, two below the cap.
	const budgetCap = 848
	squad := mustBuildSquad(t, candidates, budgetCap)

	_, err := Transfer(squad, transferRequest("gk1", testPlayer("gk-new", player.PositionGoalkeeper, 9), 0, budgetCap))
	list := mustValidationErrors(t, err)
	if list[0].Kind != KindBudgetExceeded {
		t.Fatalf("expected BudgetExceeded, got %v", list)
	}
	if list[0].Context["shortfall"] != int64(1) {
		t.Fatalf("expected shortfall 1, got %v", list[0].Context["shortfall"])
	}
}

func TestTransfer_FifthTransferRejected(t *testing.T) {
	squad := mustBuildSquad(t, validCandidates(), 1000)

	for i, in := range []string{"mid-a", "mid-b", "mid-c", "mid-d"} {
		out := []string{"mid1", "mid2", "mid3", "mid4"}[i]
		var err error
		squad, err = Transfer(squad, transferRequest(out, testPlayer(in, player.PositionMidfielder, 60), squad.TransfersUsed("gw-7"), 1000))
		if err != nil {
			t.Fatalf("transfer %d: %v", i+1, err)
		}
	}

	used := squad.TransfersUsed("gw-7")
	for _, in := range []player.Player{
		testPlayer("mid-e", player.PositionMidfielder, 10),
		testPlayer("mid-a", player.PositionMidfielder, 10),
	} {
		_, err := Transfer(squad, transferRequest("mid5", in, used, 1000))
		if !errors.Is(err, ErrTransferLimitReached) {
			t.Fatalf("transfer of %s: expected ErrTransferLimitReached, got %v", in.ID, err)
		}
	}
}
