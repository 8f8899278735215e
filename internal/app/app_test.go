package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-roster/internal/config"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "fantasy-roster-api",
		HTTPAddr:           ":0",
		CORSAllowedOrigins: []string{"*"},
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		Storage:            config.StorageMemory,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		SquadBudgetCap:     900,
		SquadTransferLimit: 2,
		AuditMaxWorkers:    2,
	}
}

func TestRulesFromConfig(t *testing.T) {
	rules := rulesFromConfig(memoryConfig())
	require.Equal(t, int64(900), rules.BudgetCap)
	require.Equal(t, 2, rules.TransferLimit)
	require.Equal(t, 15, rules.SquadSize)

	zeroLimit := memoryConfig()
	zeroLimit.SquadTransferLimit = 0
	require.Equal(t, 0, rulesFromConfig(zeroLimit).TransferLimit)
}

func TestNewHTTPServer_MemoryStorage(t *testing.T) {
	srv, cleanup, err := NewHTTPServer(t.Context(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, cleanup()) })

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leagues/idn-liga-1-2025/players", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	_, _, err := NewHTTPServer(t.Context(), cfg, logging.NewNop())
	require.Error(t, err)
}
