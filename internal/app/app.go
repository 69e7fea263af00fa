package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/footy-tracker/internal/config"
	"github.com/riskibarqy/footy-tracker/internal/interfaces/httpapi"
	"github.com/riskibarqy/footy-tracker/internal/platform/logging"
	"github.com/riskibarqy/footy-tracker/internal/usecase"
)

// Services bundles the use cases built on one storage backend.
type Services struct {
	Season  *usecase.SeasonService
	Rebuild *usecase.RebuildService

	closeStorage func() error
}

func NewServices(cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := openRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	seasonSvc := usecase.NewSeasonService(repos.trackers, repos.leaderboards, repos.roster, repos.publisher, logger)
	rebuildSvc := usecase.NewRebuildService(repos.trackers, seasonSvc, cfg.RebuildWorkers, logger)

	return &Services{
		Season:       seasonSvc,
		Rebuild:      rebuildSvc,
		closeStorage: repos.close,
	}, nil
}

func (s *Services) Close() error {
	if s == nil || s.closeStorage == nil {
		return nil
	}
	return s.closeStorage()
}

func NewHTTPServer(cfg config.Config, services *Services, logger *logging.Logger) (*http.Server, error) {
	if services == nil {
		return nil, fmt.Errorf("services are required")
	}

	handler := httpapi.NewHandler(services.Season, services.Rebuild, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
