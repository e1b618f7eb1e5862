package market

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultPollInterval = 10 * time.Second

// Poller keeps the store fresh with a periodic dual refetch, the polling
// half of the polling-plus-push update scheme. Push events Kick it for an
// earlier refresh; kicks are coalesced through a rate limiter so a burst
// of pushes cannot stampede the backend.
type Poller struct {
	dispatcher *Dispatcher
	interval   time.Duration
	limiter    *rate.Limiter
	kick       chan struct{}
	log        *zap.Logger
}

func NewPoller(dispatcher *Dispatcher, interval time.Duration, log *zap.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{
		dispatcher: dispatcher,
		interval:   interval,
		// At most one push-triggered refresh per 2s window beyond the burst.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
		kick:    make(chan struct{}, 1),
		log:     log,
	}
}

// Kick requests an out-of-band refresh, typically on a push event. Never
// blocks; a kick during a pending kick is folded into it.
func (p *Poller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Run refreshes immediately and then blocks, polling on the interval and
// serving kicks, until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.dispatcher.RefreshBoth(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.dispatcher.RefreshBoth(ctx)
		case <-p.kick:
			if !p.limiter.Allow() {
				p.log.Debug("push-triggered refresh coalesced")
				continue
			}
			p.dispatcher.RefreshBoth(ctx)
		}
	}
}
