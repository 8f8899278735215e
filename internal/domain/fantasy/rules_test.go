package fantasy

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
)

func TestBuildSquad(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func([]SquadMember) []SquadMember
		budgetCap int64
		wantKinds []Kind
	}{
		{
			name:      "valid squad",
			mutate:    func(c []SquadMember) []SquadMember { return c },
			budgetCap: 1000,
		},
		{
			name:      "spend equal to cap",
			mutate:    func(c []SquadMember) []SquadMember { return c },
			budgetCap: 900,
		},
		{
			name:      "too few players",
			mutate:    func(c []SquadMember) []SquadMember { return c[:14] },
			budgetCap: 1000,
			wantKinds: []Kind{KindSquadSizeInvalid, KindPositionCountInvalid},
		},
		{
			name: "wrong position spread",
			mutate: func(c []SquadMember) []SquadMember {
				c[11].Player.Position = player.PositionDefender
				return c
			},
			budgetCap: 1000,
			wantKinds: []Kind{KindPositionCountInvalid, KindPositionCountInvalid},
		},
		{
			name:      "budget exceeded",
			mutate:    func(c []SquadMember) []SquadMember { return c },
			budgetCap: 899,
			wantKinds: []Kind{KindBudgetExceeded},
		},
		{
			name: "duplicate player",
			mutate: func(c []SquadMember) []SquadMember {
				c[3].Player.ID = c[2].Player.ID
				return c
			},
			budgetCap: 1000,
			wantKinds: []Kind{KindDuplicatePlayer},
		},
		{
			name: "unknown position",
			mutate: func(c []SquadMember) []SquadMember {
				c[0].Player.Position = player.Position("SW")
				return c
			},
			budgetCap: 1000,
			wantKinds: []Kind{KindUnknownPosition, KindPositionCountInvalid},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := tt.mutate(validCandidates())

			squad, err := BuildSquad(candidates, tt.budgetCap, DefaultRules())
			if len(tt.wantKinds) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if got := len(squad.Members); got != 15 {
					t.Fatalf("expected 15 members, got %d", got)
				}
				if squad.TotalSpend() > tt.budgetCap {
					t.Fatalf("spend %d exceeds cap %d", squad.TotalSpend(), tt.budgetCap)
				}
				counts := squad.PositionCounts()
				for pos, want := range DefaultRules().SquadComposition {
					if counts[pos] != want {
						t.Fatalf("expected %d %s, got %d", want, pos, counts[pos])
					}
				}
				return
			}

			list := mustValidationErrors(t, err)
			got := list.Kinds()
			if len(got) != len(tt.wantKinds) {
				t.Fatalf("expected kinds %v, got %v", tt.wantKinds, got)
			}
			for i := range got {
				if got[i] != tt.wantKinds[i] {
					t.Fatalf("expected kinds %v, got %v", tt.wantKinds, got)
				}
			}
		})
	}
}

func TestBuildSquad_CollectsEveryViolation(t *testing.T) {
	candidates := validCandidates()[:14]

	_, err := BuildSquad(candidates, 700, DefaultRules())
	list := mustValidationErrors(t, err)

	for _, target := range []error{ErrSquadSizeInvalid, ErrPositionCountInvalid, ErrBudgetExceeded} {
		if !errors.Is(err, target) {
			t.Fatalf("expected %v in %v", target, err)
		}
	}

	for _, item := range list {
		switch item.Kind {
		case KindSquadSizeInvalid:
			if item.Context["current"] != 14 || item.Context["required"] != 15 {
				t.Fatalf("unexpected size context: %v", item.Context)
			}
		case KindPositionCountInvalid:
			if item.Context["position"] != string(player.PositionForward) || item.Context["current"] != 2 || item.Context["required"] != 3 {
				t.Fatalf("unexpected position context: %v", item.Context)
			}
		case KindBudgetExceeded:
			if item.Context["overspend"] != int64(140) {
				t.Fatalf("expected overspend 140, got %v", item.Context["overspend"])
			}
		}
	}
}

func TestBuildSquad_DerivesDefaultLineup(t *testing.T) {
	candidates := validCandidates()
	candidates[1].Role = RoleCaptain
	candidates[1].IsPenaltyTaker = true

	squad := mustBuildSquad(t, candidates, 1000)
	lineup := squad.Lineup()

	wantStarters := []string{"gk1", "def1", "def2", "def3", "def4", "mid1", "mid2", "mid3", "fwd1", "fwd2", "fwd3"}
	wantBench := []string{"gk2", "def5", "mid4", "mid5"}
	if !sameIDs(lineup.StarterIDs(), wantStarters) {
		t.Fatalf("unexpected starters: %v", lineup.StarterIDs())
	}
	if !sameIDs(lineup.BenchIDs(), wantBench) {
		t.Fatalf("unexpected bench: %v", lineup.BenchIDs())
	}

	for _, m := range squad.Members {
		if !m.InSquad || m.InStarting11 == m.OnBench {
			t.Fatalf("member %s has inconsistent flags: %+v", m.ID(), m)
		}
		if m.Role != RoleNone || m.IsPenaltyTaker || m.IsFreeKickTaker {
			t.Fatalf("member %s should carry no role after build: %+v", m.ID(), m)
		}
	}
	if err := ValidateSquad(squad, DefaultRules()); err != nil {
		t.Fatalf("built squad should validate: %v", err)
	}
}

func TestBuildSquad_DoesNotMutateCandidates(t *testing.T) {
	candidates := validCandidates()
	_ = mustBuildSquad(t, candidates, 1000)

	for _, m := range candidates {
		if m.InStarting11 || m.OnBench {
			t.Fatalf("candidate %s was mutated: %+v", m.ID(), m)
		}
	}
}

func TestValidateSquad(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name     string
		mutate   func(*Squad)
		wantKind Kind
	}{
		{
			name:     "two captains",
			mutate:   func(s *Squad) { s.Members[0].Role = RoleCaptain; s.Members[1].Role = RoleCaptain },
			wantKind: KindRoleNotExclusive,
		},
		{
			name:     "captain on bench",
			mutate:   func(s *Squad) { s.Members[12].Role = RoleCaptain },
			wantKind: KindRoleRequiresStarter,
		},
		{
			name:     "two penalty takers",
			mutate:   func(s *Squad) { s.Members[2].IsPenaltyTaker = true; s.Members[3].IsPenaltyTaker = true },
			wantKind: KindRoleNotExclusive,
		},
		{
			name:     "spend above cap",
			mutate:   func(s *Squad) { s.BudgetCap = 800 },
			wantKind: KindBudgetExceeded,
		},
		{
			name:     "member on both sides",
			mutate:   func(s *Squad) { s.Members[0].OnBench = true },
			wantKind: KindLineupMembership,
		},
		{
			name: "transfer quota exceeded",
			mutate: func(s *Squad) {
				for i := 0; i < 5; i++ {
					s.Transfers = append(s.Transfers, TransferRecord{PeriodID: "gw-1"})
				}
			},
			wantKind: KindTransferLimitReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			squad := mustBuildSquad(t, validCandidates(), 1000).Clone()
			tt.mutate(&squad)

			list := mustValidationErrors(t, ValidateSquad(squad, rules))
			if !list.Has(tt.wantKind) {
				t.Fatalf("expected %s, got %v", tt.wantKind, list.Kinds())
			}
		})
	}
}

func TestValidationErrors_ErrorJoinsMessages(t *testing.T) {
	list := ValidationErrors{
		{Kind: KindSquadSizeInvalid, Message: "squad has 14 players, expected 15"},
		{Kind: KindBudgetExceeded, Message: "over"},
	}

	want := "SquadSizeInvalid: squad has 14 players, expected 15; BudgetExceeded: over"
	if got := list.Error(); got != want {
		t.Fatalf("unexpected error string: %q", got)
	}
	if !errors.Is(list, ErrBudgetExceeded) || errors.Is(list, ErrGoalkeeperMismatch) {
		t.Fatalf("errors.Is should match by kind")
	}
}
