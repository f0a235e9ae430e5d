package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agentconnect/profiles-server-go/internal/repository"
)

// CleanupJob periodically sweeps expired sessions. The auth layer already
// evicts expired sessions lazily on access; the sweep keeps long-lived
// processes from accumulating sessions nobody touches again.
type CleanupJob struct {
	sessionRepo repository.SessionRepository
	interval    time.Duration
	done        chan struct{}
}

func NewCleanupJob(sessionRepo repository.SessionRepository, interval time.Duration) *CleanupJob {
	return &CleanupJob{
		sessionRepo: sessionRepo,
		interval:    interval,
		done:        make(chan struct{}),
	}
}

func (j *CleanupJob) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Msg("cleanup job started")
}

func (j *CleanupJob) Stop() {
	close(j.done)
	log.Info().Msg("cleanup job stopped")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.cleanup()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.cleanup()
		}
	}
}

func (j *CleanupJob) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := j.sessionRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to cleanup sessions")
	} else if count > 0 {
		log.Info().Int("count", count).Msg("cleaned up expired sessions")
	}
}
