package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/platefulapp/plateful-server/internal/logger"
	"github.com/platefulapp/plateful-server/internal/service"
)

// SessionCleanupJob runs periodic session cleanup.
type SessionCleanupJob struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *SessionCleanupJob) Shutdown() error {
	j.cancel()
	return nil
}

// ProvideSessionCleanupJob provides the periodic session cleanup job.
func ProvideSessionCleanupJob(i do.Injector) (*SessionCleanupJob, error) {
	services := do.MustInvoke[*service.Services](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		// Initial cleanup on startup
		if err := services.Auth.PruneSessions(ctx); err != nil {
			log.Warn("Initial session cleanup failed", "error", err)
		}

		for {
			select {
			case <-ticker.C:
				if err := services.Auth.PruneSessions(ctx); err != nil {
					log.Warn("Session cleanup failed", "error", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Session cleanup job started")

	return &SessionCleanupJob{cancel: cancel}, nil
}
