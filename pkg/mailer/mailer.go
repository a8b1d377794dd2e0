package mailer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Astemirdum/venue-reservation/pkg/circuit_breaker"
)

type Config struct {
	SMTPHost      string `yaml:"smtpHost" envconfig:"MAIL_SMTP_HOST"`
	SMTPPort      int    `yaml:"smtpPort" envconfig:"MAIL_SMTP_PORT" default:"587"`
	SMTPUser      string `yaml:"smtpUser" envconfig:"MAIL_SMTP_USER"`
	SMTPPass      string `yaml:"smtpPass" envconfig:"MAIL_SMTP_PASS"`
	MailerSendKey string `yaml:"mailersendKey" envconfig:"MAILERSEND_API_KEY"`
	From          string `yaml:"from" envconfig:"MAIL_FROM" default:"no-reply@salones.local"`
	FromName      string `yaml:"fromName" envconfig:"MAIL_FROM_NAME" default:"Reservas de Salones"`

	Breaker circuit_breaker.Config
}

type Message struct {
	To       string
	Subject  string
	Template string
	Data     any
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New picks MailerSend when an API key is set, SMTP when a host is set and a
// logging no-op otherwise. Real transports are guarded by a circuit breaker.
func New(cfg Config, log *zap.Logger) (Mailer, error) {
	log = log.Named("mailer")
	tpl, err := newRenderer()
	if err != nil {
		return nil, err
	}
	switch {
	case cfg.MailerSendKey != "":
		log.Info("using mailersend transport")
		return newGuarded(newMailerSend(cfg, tpl), cfg.Breaker), nil
	case cfg.SMTPHost != "":
		log.Info("using smtp transport", zap.String("host", cfg.SMTPHost))
		return newGuarded(newSMTP(cfg, tpl), cfg.Breaker), nil
	default:
		log.Warn("no mail transport configured, messages are only logged")
		return &nopMailer{tpl: tpl, log: log}, nil
	}
}

type guarded struct {
	next Mailer
	cb   circuit_breaker.CircuitBreaker
}

func newGuarded(next Mailer, cfg circuit_breaker.Config) *guarded {
	return &guarded{next: next, cb: circuit_breaker.New(cfg)}
}

func (g *guarded) Send(ctx context.Context, msg Message) error {
	return g.cb.Call(func() error {
		return g.next.Send(ctx, msg)
	})
}

type nopMailer struct {
	tpl *renderer
	log *zap.Logger
}

func (m *nopMailer) Send(_ context.Context, msg Message) error {
	// render anyway so template errors surface in dev
	if _, err := m.tpl.render(msg.Template, msg.Data); err != nil {
		return err
	}
	m.log.Info("mail skipped",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("template", msg.Template))
	return nil
}

func validateMessage(msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("empty recipient")
	}
	return nil
}
