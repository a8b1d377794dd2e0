package mailer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type mailerSend struct {
	client *mailersend.Mailersend
	from   mailersend.From
	tpl    *renderer
}

func newMailerSend(cfg Config, tpl *renderer) *mailerSend {
	return &mailerSend{
		client: mailersend.NewMailersend(cfg.MailerSendKey),
		from:   mailersend.From{Name: cfg.FromName, Email: cfg.From},
		tpl:    tpl,
	}
}

func (m *mailerSend) Send(ctx context.Context, msg Message) error {
	if err := validateMessage(msg); err != nil {
		return err
	}
	html, err := m.tpl.render(msg.Template, msg.Data)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	email := m.client.Email.NewMessage()
	email.SetFrom(m.from)
	email.SetRecipients([]mailersend.Recipient{{Email: msg.To}})
	email.SetSubject(msg.Subject)
	email.SetHTML(html)

	res, err := m.client.Email.Send(ctx, email)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("mailersend: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
