package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
	"github.com/riskibarqy/fantasy-roster/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

// SquadAuditResult is the verdict for one stored squad.
type SquadAuditResult struct {
	SquadID string
	UserID  string
	Valid   bool
	Errors  fantasy.ValidationErrors
}

// AuditService re-checks stored squads against the current rules, typically
// after catalog prices or rule parameters change.
type AuditService struct {
	squadRepo      fantasy.Repository
	rules          fantasy.Rules
	defaultWorkers int
	flight         resilience.SingleFlight[[]SquadAuditResult]
	logger         *logging.Logger
}

func NewAuditService(squadRepo fantasy.Repository, rules fantasy.Rules, defaultWorkers int, logger *logging.Logger) *AuditService {
	if logger == nil {
		logger = logging.Default()
	}
	if defaultWorkers < 1 {
		defaultWorkers = 1
	}

	return &AuditService{
		squadRepo:      squadRepo,
		rules:          rules,
		defaultWorkers: defaultWorkers,
		logger:         logger,
	}
}

// AuditLeague validates every squad of a league on a bounded worker pool.
// Concurrent audits of the same league share one run. Results are sorted by
// squad id.
func (s *AuditService) AuditLeague(ctx context.Context, leagueID string, maxWorkers int) ([]SquadAuditResult, error) {
	leagueID = strings.TrimSpace(leagueID)
	ctx, span := startUsecaseSpan(ctx, "usecase.AuditService.AuditLeague", attribute.String("league_id", leagueID))
	defer span.End()

	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if maxWorkers < 1 {
		maxWorkers = s.defaultWorkers
	}

	// The run is shared, so one caller going away must not cancel it for the rest.
	runCtx := context.WithoutCancel(ctx)
	results, err, shared := s.flight.Do(leagueID, func() ([]SquadAuditResult, error) {
		return s.audit(runCtx, leagueID, maxWorkers)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.DebugContext(ctx, "joined running league audit", "league_id", leagueID)
	}
	return append([]SquadAuditResult(nil), results...), nil
}

func (s *AuditService) audit(ctx context.Context, leagueID string, maxWorkers int) ([]SquadAuditResult, error) {
	squads, err := s.squadRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, storeError("list squads by league", err)
	}
	if len(squads) == 0 {
		return []SquadAuditResult{}, nil
	}

	workerCount := maxWorkers
	if workerCount > len(squads) {
		workerCount = len(squads)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]SquadAuditResult, len(squads))
	var invalidCount atomic.Int32

	var workers sync.WaitGroup
	for i, squad := range squads {
		if err := ctx.Err(); err != nil {
			workers.Wait()
			return nil, err
		}

		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results[i] = s.auditSquad(squad)
			if !results[i].Valid {
				invalidCount.Add(1)
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit squad audit to worker pool: %w", err)
		}
	}
	workers.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SquadID < results[j].SquadID
	})

	s.logger.InfoContext(ctx, "league audit finished",
		"league_id", leagueID,
		"squads", len(results),
		"invalid", invalidCount.Load(),
		"workers", workerCount,
	)
	return results, nil
}

func (s *AuditService) auditSquad(squad fantasy.Squad) SquadAuditResult {
	result := SquadAuditResult{SquadID: squad.ID, UserID: squad.UserID, Valid: true}

	err := fantasy.ValidateSquad(squad, s.rules)
	if err == nil {
		return result
	}

	result.Valid = false
	if list, ok := fantasy.AsValidationErrors(err); ok {
		result.Errors = list
	}
	return result
}
