package revokedtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

// Pruner periodically removes entries whose tokens have expired anyway.
type Pruner struct {
	repo     Repository
	interval time.Duration
	logger   logging.Logger
	now      func() time.Time
}

func NewPruner(repo Repository, interval time.Duration, l logging.Logger) *Pruner {
	return &Pruner{
		repo:     repo,
		interval: interval,
		logger:   l.With("module", "blacklist_pruner"),
		now:      time.Now,
	}
}

// Run prunes every interval until ctx is cancelled. A non-positive interval
// returns immediately.
func (p *Pruner) Run(ctx context.Context) {
	if p.interval <= 0 {
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.PruneOnce(ctx)
		}
	}
}

func (p *Pruner) PruneOnce(ctx context.Context) int64 {
	n, err := p.repo.DeleteExpired(ctx, p.now())
	if err != nil {
		p.logger.Warn(ctx, "blacklist prune failed", "error", err)
		return 0
	}
	if n > 0 {
		p.logger.Debug(ctx, "blacklist pruned", "removed", n)
	}
	return n
}
