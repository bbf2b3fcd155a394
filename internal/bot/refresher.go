package bot

import (
	"context"
	"sync"
	"time"

	"election-tracker-backend/internal/common/logger"
	"election-tracker-backend/internal/features/session"
)

// Refresher periodically re-renders every active session's pinned summary so
// the numbers stay current even when the user is idle. Errors during a tick
// are swallowed; the next tick retries.
type Refresher struct {
	ctx      context.Context
	cancel   context.CancelFunc
	handler  *Handler
	interval time.Duration
	wg       sync.WaitGroup
}

func NewRefresher(handler *Handler, interval time.Duration) *Refresher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Refresher{
		ctx:      ctx,
		cancel:   cancel,
		handler:  handler,
		interval: interval,
	}
}

func (r *Refresher) Start() {
	logger.Info().Dur("interval", r.interval).Msg("starting summary refresher")
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.refreshAll()
			case <-r.ctx.Done():
				return
			}
		}
	}()
}

func (r *Refresher) Stop() {
	r.cancel()
	r.wg.Wait()
	logger.Info().Msg("summary refresher stopped")
}

func (r *Refresher) refreshAll() {
	err := r.handler.sessions.Each(r.ctx, func(sess *session.Session) bool {
		r.handler.refreshPinnedSummary(r.ctx, sess)
		return true
	})
	if err != nil {
		logger.Debug().Err(err).Msg("session sweep failed")
	}
}
