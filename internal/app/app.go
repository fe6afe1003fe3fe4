package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/studyhours-backend/internal/data/db"
	"github.com/yungbote/studyhours-backend/internal/data/repos/snapshot"
	httpapi "github.com/yungbote/studyhours-backend/internal/http"
	"github.com/yungbote/studyhours-backend/internal/observability"
	"github.com/yungbote/studyhours-backend/internal/platform/logger"
	"github.com/yungbote/studyhours-backend/internal/platform/shutdown"
	"github.com/yungbote/studyhours-backend/internal/realtime"
	"github.com/yungbote/studyhours-backend/internal/realtime/bus"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	DB       *db.Service
	Hub      *realtime.Hub
	Bus      bus.Bus
	Metrics  *observability.Metrics
	Services Services
	Server   *httpapi.Server

	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var sink *logger.FileSink
	if cfg.Log.File != "" {
		sink = &logger.FileSink{Path: cfg.Log.File}
	}
	log, err := logger.NewWithFile(cfg.Log.Mode, sink)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		Enabled:     cfg.Otel.Enabled,
		SampleRatio: cfg.Otel.SampleRatio,
		ServiceName: cfg.Otel.ServiceName,
		Environment: cfg.Env,
	})

	dbs, err := db.NewService(db.Config{Driver: cfg.DB.Driver, DSN: cfg.DB.DSN}, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init db: %w", err)
	}
	if err := db.AutoMigrateAll(dbs.DB()); err != nil {
		_ = dbs.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	hub := realtime.NewHub(log)
	var emitter realtime.Emitter = realtime.HubEmitter{Hub: hub}
	var b bus.Bus
	if cfg.Redis.Addr != "" {
		b, err = bus.NewRedisBus(log, bus.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Channel:  cfg.Redis.Channel,
		})
		if err != nil {
			_ = dbs.Close()
			log.Sync()
			return nil, fmt.Errorf("init redis bus: %w", err)
		}
		emitter = bus.Emitter{Bus: b, OnError: func(err error) {
			log.Warn("realtime publish failed", "error", err)
		}}
	}

	metrics := observability.NewMetrics(cfg.MetricsEnabled)
	repo := snapshot.NewSnapshotRepo(dbs.DB(), log)
	serviceset := wireServices(log, cfg, repo, realtime.NewNotifier(emitter, log), metrics)

	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	handlerset := wireHandlers(log, serviceset, hub, dbs.Ping)
	server := httpapi.NewServer(httpapi.RouterConfig{
		Log:             log,
		Metrics:         metrics,
		ServiceName:     serviceName,
		CORSOrigins:     cfg.HTTP.CORSOrigins,
		DefaultUserID:   cfg.HTTP.DefaultUserID,
		StudyHandler:    handlerset.Study,
		TimerHandler:    handlerset.Timer,
		RealtimeHandler: handlerset.Realtime,
		HealthHandler:   handlerset.Health,
	})

	return &App{
		Log:          log,
		Cfg:          cfg,
		DB:           dbs,
		Hub:          hub,
		Bus:          b,
		Metrics:      metrics,
		Services:     serviceset,
		Server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP and ticks timers until ctx is cancelled or a component
// fails, then shuts the server down.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)

	if a.Bus != nil {
		if err := a.Bus.StartForwarder(gctx, a.Hub.Broadcast); err != nil {
			return fmt.Errorf("start realtime forwarder: %w", err)
		}
	}

	g.Go(func() error {
		return a.Services.Timers.Run(gctx, a.Cfg.TimerTick.Duration)
	})
	g.Go(func() error {
		a.Log.Info("server listening", "addr", a.Cfg.Addr(), "db_driver", a.Cfg.DB.Driver)
		return a.Server.Run(gctx, a.Cfg.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := shutdown.Grace(a.Cfg.HTTP.ShutdownTimeout.Duration)
		defer cancel()
		return a.Server.Shutdown(sctx)
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Bus != nil {
		_ = a.Bus.Close()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil && a.Log != nil {
			a.Log.Warn("db close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		ctx, cancel := shutdown.Grace(a.Cfg.HTTP.ShutdownTimeout.Duration)
		_ = a.otelShutdown(ctx)
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
