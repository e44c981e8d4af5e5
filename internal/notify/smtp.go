package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"

	"senior-hub-api/config"
	"senior-hub-api/internal/entities"

	"go.uber.org/zap"
)

var invitationTemplate = template.Must(template.New("invitation").Parse(`<div style="font-family:Arial,sans-serif;font-size:14px;color:#222">
  <p>Hello,</p>
  <p>{{if .Inviter}}{{.Inviter}} invited you{{else}}You have been invited{{end}} to join {{if .Team}}<b>{{.Team}}</b>{{else}}a team{{end}} on {{.AppName}}{{if .Role}} as {{.Role}}{{end}}.</p>
  <p><a href="{{.Link}}">Accept invitation</a></p>
  <p>Or open this link directly: {{.Link}}</p>
  {{if .ExpiresAt}}<p>This invitation expires at {{.ExpiresAt}}.</p>{{end}}
  <p style="color:#666">If you did not expect this email, you can safely ignore it.</p>
</div>
`))

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTP delivers invitations by mail.
type SMTP struct {
	log  *zap.SugaredLogger
	cfg  config.SMTPConfig
	send sendFunc
}

// NewSMTP returns a mail notifier for the configured server.
func NewSMTP(log *zap.SugaredLogger, cfg config.SMTPConfig) *SMTP {
	return &SMTP{log: log.Named("notify.smtp"), cfg: cfg, send: smtp.SendMail}
}

// Send renders and sends the invitation mail.
func (s *SMTP) Send(ctx context.Context, recipient string, data map[string]string) (*entities.DeliveryReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrDeliveryFailed, err)
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	msg, err := s.message(from, recipient, data)
	if err != nil {
		return nil, fmt.Errorf("%w: render: %v", entities.ErrDeliveryFailed, err)
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := s.send(s.cfg.Addr(), auth, from, []string{recipient}, msg); err != nil {
		s.log.Errorw("failed to send invitation", "error", err, "recipient", recipient)
		return nil, fmt.Errorf("%w: %v", entities.ErrDeliveryFailed, err)
	}

	s.log.Infow("invitation sent", "recipient", recipient)
	return newReport("smtp", recipient, time.Now().UTC()), nil
}

func (s *SMTP) message(from, to string, data map[string]string) ([]byte, error) {
	var body bytes.Buffer
	err := invitationTemplate.Execute(&body, struct {
		AppName, Link, Team, Role, Inviter, ExpiresAt string
	}{
		AppName:   s.cfg.AppName,
		Link:      data[KeyLink],
		Team:      data[KeyTeam],
		Role:      data[KeyRole],
		Inviter:   data[KeyInviter],
		ExpiresAt: data[KeyExpiresAt],
	})
	if err != nil {
		return nil, err
	}

	headers := []string{
		fmt.Sprintf("From: %s <%s>", s.cfg.FromName, from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s invitation", s.cfg.AppName),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + body.String()), nil
}
