package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	idgen "github.com/riskibarqy/fantasy-roster/internal/platform/id"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
	"github.com/riskibarqy/fantasy-roster/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// BuildSquadInput is the incoming payload for creating a squad.
type BuildSquadInput struct {
	UserID    string
	LeagueID  string
	Name      string
	PlayerIDs []string
}

type SaveLineupInput struct {
	SquadID    string
	StarterIDs []string
}

type SubstituteInput struct {
	SquadID     string
	PlayerOutID string
	PlayerInID  string
}

type AssignRoleInput struct {
	SquadID  string
	MemberID string
	Role     string
}

type ToggleSpecialistInput struct {
	SquadID  string
	MemberID string
	Kind     string
}

type TransferInput struct {
	SquadID     string
	PlayerOutID string
	PlayerInID  string
	PeriodID    string
}

// SquadService hosts the roster engine. Every mutation is serialized per squad,
// applied to the stored snapshot and persisted as a whole; when persisting
// fails the stored snapshot stays authoritative.
type SquadService struct {
	playerRepo player.Repository
	squadRepo  fantasy.Repository
	rules      fantasy.Rules
	idGen      idgen.Generator
	locks      *resilience.KeyedLock
	logger     *logging.Logger
	now        func() time.Time
}

func NewSquadService(
	playerRepo player.Repository,
	squadRepo fantasy.Repository,
	rules fantasy.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
) *SquadService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SquadService{
		playerRepo: playerRepo,
		squadRepo:  squadRepo,
		rules:      rules,
		idGen:      idGen,
		locks:      resilience.NewKeyedLock(),
		logger:     logger,
		now:        time.Now,
	}
}

func (s *SquadService) BuildSquad(ctx context.Context, input BuildSquadInput) (fantasy.Squad, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.Name = strings.TrimSpace(input.Name)
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.BuildSquad",
		attribute.String("user_id", input.UserID),
		attribute.String("league_id", input.LeagueID),
	)
	defer span.End()

	if input.UserID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.LeagueID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: squad name is required", ErrInvalidInput)
	}
	if len(input.PlayerIDs) == 0 {
		return fantasy.Squad{}, fmt.Errorf("%w: player ids are required", ErrInvalidInput)
	}

	unlock, err := s.locks.Lock(ctx, "owner:"+input.UserID+":"+input.LeagueID)
	if err != nil {
		return fantasy.Squad{}, fmt.Errorf("wait for squad lock: %w", err)
	}
	defer unlock()

	_, exists, err := s.squadRepo.GetByUserAndLeague(ctx, input.UserID, input.LeagueID)
	if err != nil {
		return fantasy.Squad{}, storeError("get existing squad", err)
	}
	if exists {
		return fantasy.Squad{}, fmt.Errorf("%w: user=%s already has a squad in league=%s", ErrConflict, input.UserID, input.LeagueID)
	}

	candidates, err := s.resolveCandidates(ctx, input.LeagueID, input.PlayerIDs)
	if err != nil {
		return fantasy.Squad{}, err
	}

	squad, err := fantasy.BuildSquad(candidates, s.rules.BudgetCap, s.rules)
	if err != nil {
		return fantasy.Squad{}, s.rejected(ctx, "build", "", err)
	}

	squadID, err := s.idGen.NewID()
	if err != nil {
		return fantasy.Squad{}, fmt.Errorf("generate squad id: %w", err)
	}

	now := s.now().UTC()
	squad.ID = squadID
	squad.UserID = input.UserID
	squad.LeagueID = input.LeagueID
	squad.Name = input.Name
	squad.CreatedAt = now
	squad.UpdatedAt = now

	if err := squad.ValidateBasic(); err != nil {
		return fantasy.Squad{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.squadRepo.Upsert(ctx, squad); err != nil {
		if errors.Is(err, fantasy.ErrOwnerConflict) {
			return fantasy.Squad{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "upsert squad")
		return fantasy.Squad{}, storeError("upsert squad", err)
	}

	s.logger.InfoContext(ctx, "squad built",
		"squad_id", squad.ID,
		"user_id", squad.UserID,
		"league_id", squad.LeagueID,
		"total_spend", squad.TotalSpend(),
		"budget_cap", squad.BudgetCap,
	)

	return squad, nil
}

func (s *SquadService) GetSquad(ctx context.Context, squadID string) (fantasy.Squad, error) {
	squadID = strings.TrimSpace(squadID)
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetSquad", attribute.String("squad_id", squadID))
	defer span.End()

	if squadID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: squad id is required", ErrInvalidInput)
	}
	return s.load(ctx, squadID)
}

func (s *SquadService) GetUserSquad(ctx context.Context, userID, leagueID string) (fantasy.Squad, error) {
	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" || leagueID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: user_id and league_id are required", ErrInvalidInput)
	}

	squad, exists, err := s.squadRepo.GetByUserAndLeague(ctx, userID, leagueID)
	if err != nil {
		return fantasy.Squad{}, storeError("get squad", err)
	}
	if !exists {
		return fantasy.Squad{}, fmt.Errorf("%w: squad not found", ErrNotFound)
	}
	return squad, nil
}

// SaveLineup commits an explicit starting eleven; every other member is benched.
func (s *SquadService) SaveLineup(ctx context.Context, input SaveLineupInput) (fantasy.Squad, error) {
	if len(input.StarterIDs) == 0 {
		return fantasy.Squad{}, fmt.Errorf("%w: starter ids are required", ErrInvalidInput)
	}
	starterIDs := make([]string, 0, len(input.StarterIDs))
	for _, id := range input.StarterIDs {
		starterIDs = append(starterIDs, strings.TrimSpace(id))
	}

	return s.mutate(ctx, "save_lineup", input.SquadID, func(_ context.Context, current fantasy.Squad) (fantasy.Squad, error) {
		lineup, err := fantasy.LineupFromStarterIDs(current, starterIDs)
		if err != nil {
			return fantasy.Squad{}, err
		}
		return fantasy.ApplyLineup(current, lineup, s.rules)
	})
}

// AutoLineup replaces the current split with the derived default lineup.
func (s *SquadService) AutoLineup(ctx context.Context, squadID string) (fantasy.Squad, error) {
	return s.mutate(ctx, "auto_lineup", squadID, func(_ context.Context, current fantasy.Squad) (fantasy.Squad, error) {
		lineup, err := fantasy.DeriveLineup(current, s.rules)
		if err != nil {
			return fantasy.Squad{}, err
		}
		return fantasy.ApplyLineup(current, lineup, s.rules)
	})
}

func (s *SquadService) Substitute(ctx context.Context, input SubstituteInput) (fantasy.Squad, error) {
	out, in := strings.TrimSpace(input.PlayerOutID), strings.TrimSpace(input.PlayerInID)
	if out == "" || in == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: player_out_id and player_in_id are required", ErrInvalidInput)
	}

	return s.mutate(ctx, "substitute", input.SquadID, func(_ context.Context, current fantasy.Squad) (fantasy.Squad, error) {
		return fantasy.SubstituteInSquad(current, out, in, s.rules)
	})
}

func (s *SquadService) AssignRole(ctx context.Context, input AssignRoleInput) (fantasy.Squad, error) {
	memberID := strings.TrimSpace(input.MemberID)
	if memberID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: member id is required", ErrInvalidInput)
	}
	role := fantasy.Role(strings.ToLower(strings.TrimSpace(input.Role)))

	return s.mutate(ctx, "assign_role", input.SquadID, func(_ context.Context, current fantasy.Squad) (fantasy.Squad, error) {
		return fantasy.AssignRole(current, memberID, role)
	})
}

func (s *SquadService) ToggleSpecialist(ctx context.Context, input ToggleSpecialistInput) (fantasy.Squad, error) {
	memberID := strings.TrimSpace(input.MemberID)
	if memberID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: member id is required", ErrInvalidInput)
	}
	kind := fantasy.SpecialistKind(strings.ToLower(strings.TrimSpace(input.Kind)))

	return s.mutate(ctx, "toggle_specialist", input.SquadID, func(_ context.Context, current fantasy.Squad) (fantasy.Squad, error) {
		return fantasy.ToggleSpecialist(current, memberID, kind)
	})
}

// Transfer swaps a squad member for a catalog player of the same league. The
// period quota is counted from the squad's own transfer records.
func (s *SquadService) Transfer(ctx context.Context, input TransferInput) (fantasy.Squad, error) {
	outID, inID := strings.TrimSpace(input.PlayerOutID), strings.TrimSpace(input.PlayerInID)
	periodID := strings.TrimSpace(input.PeriodID)
	if outID == "" || inID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: player_out_id and player_in_id are required", ErrInvalidInput)
	}
	if periodID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: period id is required", ErrInvalidInput)
	}

	return s.mutate(ctx, "transfer", input.SquadID, func(ctx context.Context, current fantasy.Squad) (fantasy.Squad, error) {
		incoming, exists, err := s.playerRepo.GetByID(ctx, current.LeagueID, inID)
		if err != nil {
			return fantasy.Squad{}, fmt.Errorf("get incoming player: %w", err)
		}
		if !exists {
			return fantasy.Squad{}, fmt.Errorf("%w: player=%s league=%s", ErrNotFound, inID, current.LeagueID)
		}

		return fantasy.Transfer(current, fantasy.TransferRequest{
			PlayerOutID:         outID,
			PlayerIn:            incoming,
			PeriodID:            periodID,
			PeriodTransfersUsed: current.TransfersUsed(periodID),
			TransferLimit:       s.rules.TransferLimit,
			BudgetCap:           current.BudgetCap,
			At:                  s.now().UTC(),
		})
	})
}

type squadMutation func(ctx context.Context, current fantasy.Squad) (fantasy.Squad, error)

func (s *SquadService) mutate(ctx context.Context, op, squadID string, apply squadMutation) (fantasy.Squad, error) {
	squadID = strings.TrimSpace(squadID)
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService."+op,
		attribute.String("squad_id", squadID),
	)
	defer span.End()

	if squadID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: squad id is required", ErrInvalidInput)
	}

	unlock, err := s.locks.Lock(ctx, squadID)
	if err != nil {
		return fantasy.Squad{}, fmt.Errorf("wait for squad lock: %w", err)
	}
	defer unlock()

	current, err := s.load(ctx, squadID)
	if err != nil {
		return fantasy.Squad{}, err
	}

	next, err := apply(ctx, current)
	if err != nil {
		return fantasy.Squad{}, s.rejected(ctx, op, squadID, err)
	}
	next.UpdatedAt = s.now().UTC()

	if err := s.squadRepo.Upsert(ctx, next); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upsert squad")
		s.logger.ErrorContext(ctx, "squad change not persisted, keeping stored snapshot",
			"op", op,
			"squad_id", squadID,
			"error", err,
		)
		return fantasy.Squad{}, storeError("upsert squad", err)
	}

	s.logger.InfoContext(ctx, "squad updated",
		"op", op,
		"squad_id", squadID,
		"total_spend", next.TotalSpend(),
	)
	return next, nil
}

func (s *SquadService) load(ctx context.Context, squadID string) (fantasy.Squad, error) {
	squad, exists, err := s.squadRepo.GetByID(ctx, squadID)
	if err != nil {
		return fantasy.Squad{}, storeError("get squad", err)
	}
	if !exists {
		return fantasy.Squad{}, fmt.Errorf("%w: squad=%s", ErrNotFound, squadID)
	}
	return squad, nil
}

// rejected tags engine validation failures as invalid input and logs them.
// Other errors pass through untouched.
func (s *SquadService) rejected(ctx context.Context, op, squadID string, err error) error {
	list, ok := fantasy.AsValidationErrors(err)
	if !ok {
		return err
	}

	s.logger.WarnContext(ctx, "squad change rejected",
		"op", op,
		"squad_id", squadID,
		"kinds", list.Kinds(),
	)
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// resolveCandidates keeps the caller's order and repeats so the engine can
// report duplicates itself.
func (s *SquadService) resolveCandidates(ctx context.Context, leagueID string, playerIDs []string) ([]fantasy.SquadMember, error) {
	ids := make([]string, 0, len(playerIDs))
	for _, id := range playerIDs {
		ids = append(ids, strings.TrimSpace(id))
	}

	players, err := s.playerRepo.GetByIDs(ctx, leagueID, uniqueIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	var missing []string
	candidates := make([]fantasy.SquadMember, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		candidates = append(candidates, fantasy.NewSquadMember(p))
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: players not found in league=%s: %s", ErrInvalidInput, leagueID, strings.Join(missing, ","))
	}
	return candidates, nil
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
