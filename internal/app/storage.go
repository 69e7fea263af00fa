package app

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/footy-tracker/internal/config"
	"github.com/riskibarqy/footy-tracker/internal/domain/leaderboard"
	"github.com/riskibarqy/footy-tracker/internal/domain/roster"
	"github.com/riskibarqy/footy-tracker/internal/domain/season"
	cacherepo "github.com/riskibarqy/footy-tracker/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/footy-tracker/internal/infrastructure/repository/jsonfile"
	"github.com/riskibarqy/footy-tracker/internal/infrastructure/repository/memory"
	postgresrepo "github.com/riskibarqy/footy-tracker/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/footy-tracker/internal/platform/cache"
	"github.com/riskibarqy/footy-tracker/internal/platform/logging"
	"github.com/riskibarqy/footy-tracker/internal/platform/resilience"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type repositories struct {
	trackers     season.Repository
	leaderboards leaderboard.Repository
	roster       roster.Repository
	publisher    season.Publisher
	close        func() error
}

func openRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories

	switch cfg.StorageDriver {
	case config.StorageMemory:
		trackers := memory.NewSeasonRepository()
		boards := memory.NewLeaderboardRepository()
		repos = repositories{
			trackers:     trackers,
			leaderboards: boards,
			roster:       memory.NewRosterRepository(memory.SeedProfiles()),
			publisher:    memory.NewPublisher(trackers, boards),
			close:        func() error { return nil },
		}
	case config.StorageFile:
		repos = repositories{
			trackers:     jsonfile.NewSeasonRepository(cfg.DataDir),
			leaderboards: jsonfile.NewLeaderboardRepository(cfg.DataDir),
			roster:       jsonfile.NewRosterRepository(cfg.DataDir),
			publisher:    jsonfile.NewPublisher(cfg.DataDir),
			close:        func() error { return nil },
		}
	case config.StoragePostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return repositories{}, err
		}
		breaker := postgresrepo.NewBreaker(resilience.BreakerConfig{
			FailureThreshold: cfg.DBBreakerThreshold,
			OpenTimeout:      cfg.DBBreakerOpenTimeout,
		})
		repos = repositories{
			trackers:     postgresrepo.NewSeasonRepository(db, breaker),
			leaderboards: postgresrepo.NewLeaderboardRepository(db, breaker),
			roster:       postgresrepo.NewRosterRepository(db, breaker),
			publisher:    postgresrepo.NewPublisher(db, breaker),
			close:        db.Close,
		}
	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.RosterCacheTTL > 0 {
		repos.roster = cacherepo.NewRosterRepository(repos.roster, basecache.NewStore(cfg.RosterCacheTTL))
	}

	logger.Info("storage ready",
		"driver", cfg.StorageDriver,
		"roster_cache_ttl", cfg.RosterCacheTTL.String(),
	)
	return repos, nil
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	dbURL := PostgresURL(cfg)
	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}
