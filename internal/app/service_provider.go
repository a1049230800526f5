package app

import (
	"context"
	wheelAPI "fortune_wheel/internal/api/wheel"
	"fortune_wheel/internal/client"
	"fortune_wheel/internal/client/stars"
	"fortune_wheel/internal/config"
	"fortune_wheel/internal/config/env"
	"fortune_wheel/internal/middleware"
	"fortune_wheel/internal/repository"
	"fortune_wheel/internal/repository/wheel_repo"
	"fortune_wheel/internal/repository/wheel_state_repo"
	"fortune_wheel/internal/service"
	wheelService "fortune_wheel/internal/service/wheel"
	"fortune_wheel/pkg/logger"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type ServiceProvider struct {
	// Logger
	logCfg config.LogConfig
	log    *zap.Logger

	// TXManager
	txManager wheelService.TxManager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Stars backend
	backendCfg  config.BackendConfig
	starsClient client.StarsClient

	// Auth bits
	jwtCfg config.JWTConfig

	// Wheel bits
	wheelCfg  config.WheelConfig
	wheelRepo repository.WheelRepository
	wheelServ service.WheelService
	wheelHand *wheelAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.log == nil {
		cfg := sp.LogCfg()
		sp.log = logger.New(&logger.Config{
			Level: cfg.Level(),
			Prod:  cfg.Production(),
			App:   cfg.App(),
			Dir:   cfg.Dir(),
			File:  cfg.File(),
		})
	}
	return sp.log
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

// DBClient возвращает nil, если PG_DSN не задан
func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil && sp.PgConfig().DSN() != "" {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) wheelService.TxManager {
	if sp.txManager == nil {
		db := sp.DBClient(ctx)
		if db == nil {
			sp.txManager = wheelService.NoTx{}
			return sp.txManager
		}

		m, err := manager.New(trmpgx.NewDefaultFactory(db))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) BackendCfg() config.BackendConfig {
	if sp.backendCfg == nil {
		cfg, err := env.NewBackendConfig()
		if err != nil {
			panic("failed to get stars backend config: " + err.Error())
		}
		sp.backendCfg = cfg
	}
	return sp.backendCfg
}

func (sp *ServiceProvider) StarsClient() client.StarsClient {
	if sp.starsClient == nil {
		cfg := sp.BackendCfg()
		sp.starsClient = stars.NewClient(stars.NewHTTPClient(cfg.Timeout()), cfg.BaseURL())
	}
	return sp.starsClient
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) WheelCfg() config.WheelConfig {
	if sp.wheelCfg == nil {
		cfg, err := env.NewWheelConfigFromYAML(env.WheelConfigPath())
		if err != nil {
			panic("failed to get wheel config: " + err.Error())
		}
		sp.wheelCfg = cfg
	}
	return sp.wheelCfg
}

func (sp *ServiceProvider) WheelRepository(ctx context.Context) repository.WheelRepository {
	if sp.wheelRepo == nil {
		db := sp.DBClient(ctx)
		if db == nil {
			sp.Logger().Warn("PG_DSN is empty, wheel rotations are kept in memory")
			sp.wheelRepo = wheel_state_repo.NewWheelStateRepository()
		} else {
			sp.wheelRepo = wheel_repo.NewWheelRepository(db, trmpgx.DefaultCtxGetter)
		}
	}
	return sp.wheelRepo
}

func (sp *ServiceProvider) WheelService(ctx context.Context) service.WheelService {
	if sp.wheelServ == nil {
		serv, err := wheelService.NewWheelService(wheelService.Deps{
			Config:    sp.WheelCfg(),
			Repo:      sp.WheelRepository(ctx),
			TxManager: sp.TXManager(ctx),
			Stars:     sp.StarsClient(),
			Log:       sp.Logger(),
		})
		if err != nil {
			panic("failed to create wheel service: " + err.Error())
		}
		sp.wheelServ = serv
	}
	return sp.wheelServ
}

func (sp *ServiceProvider) WheelHandler(ctx context.Context) *wheelAPI.Handler {
	if sp.wheelHand == nil {
		sp.wheelHand = wheelAPI.NewHandler(wheelAPI.HandlerDeps{
			Serv: sp.WheelService(ctx),
			Log:  sp.Logger(),
		})
	}
	return sp.wheelHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(chimw.Recoverer)

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		r.Handle("/metrics", promhttp.Handler())

		// Wheel endpoints
		wheelHandler := sp.WheelHandler(ctx)
		r.Route("/wheel", func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey(), sp.Logger()))
			rr.Post("/spin", wheelHandler.Spin)
			rr.Get("/state", wheelHandler.State)
			rr.Get("/status", wheelHandler.Status)
			rr.Get("/sectors", wheelHandler.Sectors)
		})

		sp.router = r
	}

	return sp.router
}

// Close освобождает ресурсы в обратном порядке
func (sp *ServiceProvider) Close(ctx context.Context) error {
	var err error
	if sp.wheelServ != nil {
		err = sp.wheelServ.Close(ctx)
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
	if sp.log != nil {
		_ = sp.log.Sync()
	}
	return err
}
