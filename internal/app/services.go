package app

import (
	"context"

	"github.com/yungbote/studyhours-backend/internal/data/repos/snapshot"
	httpH "github.com/yungbote/studyhours-backend/internal/http/handlers"
	"github.com/yungbote/studyhours-backend/internal/observability"
	"github.com/yungbote/studyhours-backend/internal/platform/logger"
	"github.com/yungbote/studyhours-backend/internal/realtime"
	"github.com/yungbote/studyhours-backend/internal/services"
	"github.com/yungbote/studyhours-backend/internal/study/timer"
)

type Services struct {
	Study  services.StudyService
	Timer  services.TimerService
	Timers *timer.Registry
}

func wireServices(log *logger.Logger, cfg Config, repo snapshot.SnapshotRepo, notifier realtime.Notifier, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")
	studySvc := services.NewStudyService(log, repo, notifier, services.StudyServiceConfig{
		Location: cfg.Location,
		Metrics:  metrics,
	})
	registry := timer.NewRegistry(log, nil)
	return Services{
		Study:  studySvc,
		Timer:  services.NewTimerService(log, registry, studySvc, notifier),
		Timers: registry,
	}
}

type Handlers struct {
	Health   *httpH.HealthHandler
	Study    *httpH.StudyHandler
	Timer    *httpH.TimerHandler
	Realtime *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, svcs Services, hub *realtime.Hub, ping func(context.Context) error) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(ping),
		Study:    httpH.NewStudyHandler(svcs.Study),
		Timer:    httpH.NewTimerHandler(svcs.Timer),
		Realtime: httpH.NewRealtimeHandler(log, hub),
	}
}
