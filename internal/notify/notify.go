// Package notify delivers invitation links to invitees.
package notify

import (
	"context"
	"time"

	"senior-hub-api/config"
	"senior-hub-api/internal/entities"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context keys understood by the notifiers.
const (
	KeyLink      = "link"
	KeyTeam      = "team"
	KeyRole      = "role"
	KeyInviter   = "inviter"
	KeyExpiresAt = "expires_at"
)

// Notifier sends an invitation to recipient. data always carries KeyLink.
type Notifier interface {
	Send(ctx context.Context, recipient string, data map[string]string) (*entities.DeliveryReport, error)
}

// New picks SMTP when configured and falls back to logging the link.
func New(log *zap.SugaredLogger, cfg config.SMTPConfig) Notifier {
	if cfg.Enabled() {
		return NewSMTP(log, cfg)
	}
	return NewLog(log)
}

func newReport(channel, recipient string, now time.Time) *entities.DeliveryReport {
	return &entities.DeliveryReport{
		MessageID: uuid.NewString(),
		Channel:   channel,
		Recipient: recipient,
		SentAt:    now,
	}
}
