package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/peergov/modgate/internal/config"
	"github.com/peergov/modgate/internal/infrastructure/providers"
	"github.com/peergov/modgate/internal/infrastructure/repository"
	"github.com/peergov/modgate/internal/present/rest"
	"github.com/peergov/modgate/internal/present/rest/middleware"
	"github.com/peergov/modgate/internal/service"
	"github.com/peergov/modgate/internal/usecase"
)

func main() {
	configPath := os.Getenv("MODGATE_CONFIG")
	if configPath == "" {
		configPath = "/etc/modgate/config.yaml"
	}

	conf, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if conf.Server.EnableTrace {
		cleanup, err := providers.SetupTraceProvider(context.Background(), conf.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to setup trace provider", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer cleanup()
	}

	db, err := providers.NewDatabase(conf.Server)
	if err != nil {
		panic("failed to connect database")
	}

	err = providers.MigrateDatabase(db)
	if err != nil {
		panic("failed to migrate database")
	}

	rdb := providers.NewRedis(conf.Server)

	var mc *memcache.Client
	if conf.Server.MemcachedAddr != "" {
		mc = providers.NewMemcache(conf.Server.MemcachedAddr)
	}

	domainConf := conf.Domain()

	moderatorRepo := repository.NewModeratorRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	scoreRepo := repository.NewScoreRepository(db, mc)

	clock := service.NewClockService(rdb)
	signal := service.NewSignalService(rdb)
	auth := service.NewAuthService(&domainConf)

	registryUC := usecase.NewRegistryUsecase(moderatorRepo, domainConf.Rules)
	proposalUC := usecase.NewProposalUsecase(proposalRepo, clock)
	scoringUC := usecase.NewScoringUsecase(proposalRepo, moderatorRepo, scoreRepo, clock, signal, domainConf.Rules)
	decisionUC := usecase.NewDecisionUsecase(proposalRepo, clock, signal, domainConf.Rules)

	handler := rest.NewHandler(domainConf, registryUC, proposalUC, scoringUC, decisionUC, signal)
	authMiddleware := middleware.NewAuthMiddleware(auth, domainConf)

	e := echo.New()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware(conf.NodeInfo.FQDN))
	}
	e.Use(authMiddleware.IdentifyIdentity)

	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}
