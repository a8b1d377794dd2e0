package mailer

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
)

type smtpMailer struct {
	addr     string
	host     string
	from     string
	fromName string
	auth     smtp.Auth
	tpl      *renderer
	send     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func newSMTP(cfg Config, tpl *renderer) *smtpMailer {
	m := &smtpMailer{
		addr:     net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort)),
		host:     cfg.SMTPHost,
		from:     cfg.From,
		fromName: cfg.FromName,
		tpl:      tpl,
		send:     smtp.SendMail,
	}
	if cfg.SMTPUser != "" {
		m.auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}
	return m
}

// Send uses smtp.SendMail, which upgrades with STARTTLS when the server
// advertises it. net/smtp has no context support; ctx is only checked upfront.
func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	if err := validateMessage(msg); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	html, err := m.tpl.render(msg.Template, msg.Data)
	if err != nil {
		return err
	}
	body := m.compose(msg.To, msg.Subject, html)
	if err := m.send(m.addr, m.auth, m.from, []string{msg.To}, body); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (m *smtpMailer) compose(to, subject, html string) []byte {
	var buf bytes.Buffer
	from := m.from
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", m.fromName), m.from)
	}
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: text/html; charset=utf-8\r\n\r\n")
	buf.WriteString(html)
	buf.WriteString("\r\n")
	return buf.Bytes()
}
