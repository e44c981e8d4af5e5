package notify

import (
	"context"
	"time"

	"senior-hub-api/internal/entities"

	"go.uber.org/zap"
)

// Log writes the invitation link to the logger instead of sending mail.
type Log struct {
	log *zap.SugaredLogger
}

// NewLog returns a development notifier.
func NewLog(log *zap.SugaredLogger) *Log {
	return &Log{log: log.Named("notify.log")}
}

// Send logs the link.
func (l *Log) Send(_ context.Context, recipient string, data map[string]string) (*entities.DeliveryReport, error) {
	l.log.Infow("invitation link", "recipient", recipient, "link", data[KeyLink], "expires_at", data[KeyExpiresAt])
	return newReport("log", recipient, time.Now().UTC()), nil
}
