package guarded

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasy"
	fantasymock "github.com/riskibarqy/fantasy-roster/internal/mocks/domain/fantasy"
	"github.com/riskibarqy/fantasy-roster/internal/platform/resilience"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newBreaker() *resilience.CircuitBreaker {
	return resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})
}

func TestSquadRepository_OpensAfterStoreFailures(t *testing.T) {
	errDown := errors.New("connection refused")
	next := fantasymock.NewRepository(t)
	next.On("GetByID", mock.Anything, "squad-001").Return(fantasy.Squad{}, false, errDown).Twice()

	repo := NewSquadRepository(next, newBreaker())

	for i := 0; i < 2; i++ {
		_, _, err := repo.GetByID(t.Context(), "squad-001")
		require.ErrorIs(t, err, errDown)
	}

	_, _, err := repo.GetByID(t.Context(), "squad-001")
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)

	err = repo.Upsert(t.Context(), fantasy.Squad{ID: "squad-001"})
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
}

func TestSquadRepository_OwnerConflictDoesNotTrip(t *testing.T) {
	squad := fantasy.Squad{ID: "squad-002", UserID: "manager-1", LeagueID: "idn-liga-1-2025"}
	conflict := fmt.Errorf("%w: squad=squad-001", fantasy.ErrOwnerConflict)

	next := fantasymock.NewRepository(t)
	next.On("Upsert", mock.Anything, squad).Return(conflict).Times(3)
	next.On("ListByLeague", mock.Anything, "idn-liga-1-2025").Return([]fantasy.Squad{squad}, nil).Once()

	repo := NewSquadRepository(next, newBreaker())
	for i := 0; i < 3; i++ {
		require.ErrorIs(t, repo.Upsert(t.Context(), squad), fantasy.ErrOwnerConflict)
	}

	squads, err := repo.ListByLeague(t.Context(), "idn-liga-1-2025")
	require.NoError(t, err)
	require.Len(t, squads, 1)
}
