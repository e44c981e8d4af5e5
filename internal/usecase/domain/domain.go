package domain

import (
	"context"
	"time"

	"senior-hub-api/config"
	"senior-hub-api/internal/notify"
	"senior-hub-api/internal/ratelimit"
	"senior-hub-api/internal/repository"
	"senior-hub-api/internal/token"

	"go.uber.org/zap"
)

// Deps are the collaborators of the usecase layer.
type Deps struct {
	Repo     repository.Repository
	Tokens   token.Generator
	Notifier notify.Notifier
	// Limiter is optional; nil disables throttling.
	Limiter ratelimit.Limiter
	// Clock is optional; nil means time.Now in UTC.
	Clock func() time.Time
}

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	log         *zap.SugaredLogger
	repo        repository.Repository
	tokens      token.Generator
	notifier    notify.Notifier
	limiter     ratelimit.Limiter
	now         func() time.Time
	invitations config.InvitationConfig
	timeout     time.Duration
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	deps Deps,
	cfg config.InvitationConfig,
	timeout time.Duration,
) *Usecase {
	u := &Usecase{
		log:         log.Named("usecase"),
		repo:        deps.Repo,
		tokens:      deps.Tokens,
		notifier:    deps.Notifier,
		limiter:     deps.Limiter,
		now:         deps.Clock,
		invitations: cfg,
		timeout:     timeout,
	}
	if u.limiter == nil {
		u.limiter = ratelimit.Noop{}
	}
	if u.now == nil {
		u.now = func() time.Time { return time.Now().UTC() }
	}
	if u.invitations.MaxTokenAttempts <= 0 {
		u.invitations.MaxTokenAttempts = 1
	}
	return u
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
