package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/fantasy-roster/internal/config"
	"github.com/riskibarqy/fantasy-roster/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-roster/internal/domain/player"
	"github.com/riskibarqy/fantasy-roster/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-roster/internal/infrastructure/repository/guarded"
	"github.com/riskibarqy/fantasy-roster/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-roster/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-roster/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/fantasy-roster/internal/platform/cache"
	idgen "github.com/riskibarqy/fantasy-roster/internal/platform/id"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
	"github.com/riskibarqy/fantasy-roster/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-roster/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type repositories struct {
	players player.Repository
	squads  fantasy.Repository
	close   func() error
}

// NewHTTPServer wires storage, services and the router. The returned cleanup
// releases the database pool and must run after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	rules := rulesFromConfig(cfg)
	playerSvc := usecase.NewPlayerService(repos.players)
	squadSvc := usecase.NewSquadService(
		repos.players,
		repos.squads,
		rules,
		idgen.NewUUIDGenerator(),
		logger.Named("squad"),
	)
	auditSvc := usecase.NewAuditService(repos.squads, rules, cfg.AuditMaxWorkers, logger.Named("audit"))

	handler := httpapi.NewHandler(playerSvc, squadSvc, auditSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, repos.close, nil
}

func rulesFromConfig(cfg config.Config) fantasy.Rules {
	rules := fantasy.DefaultRules()
	if cfg.SquadBudgetCap > 0 {
		rules.BudgetCap = cfg.SquadBudgetCap
	}
	if cfg.SquadTransferLimit >= 0 {
		rules.TransferLimit = cfg.SquadTransferLimit
	}
	return rules
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories

	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		if err := postgres.BootstrapSeed(ctx, db, memory.SeedPlayers()); err != nil {
			_ = db.Close()
			return repositories{}, fmt.Errorf("bootstrap player seed: %w", err)
		}
		repos = repositories{
			players: postgres.NewPlayerRepository(db),
			squads:  postgres.NewSquadRepository(db),
			close:   db.Close,
		}
		if cfg.DBBreakerEnabled {
			repos.squads = guarded.NewSquadRepository(repos.squads, resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
				FailureThreshold: cfg.DBBreakerThreshold,
				OpenTimeout:      cfg.DBBreakerOpenTimeout,
				HalfOpenMaxReq:   2,
			}))
		}
	default:
		repos = repositories{
			players: memory.NewPlayerRepository(memory.SeedPlayers()),
			squads:  memory.NewSquadRepository(),
			close:   func() error { return nil },
		}
	}

	if cfg.CacheEnabled {
		repos.players = cache.NewPlayerRepository(repos.players, basecache.NewStore[[]player.Player](cfg.CacheTTL))
	}

	logger.Info("repositories ready",
		"storage", cfg.Storage,
		"player_cache", cfg.CacheEnabled,
		"cache_ttl", cfg.CacheTTL,
	)
	return repos, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.ServiceName),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}
