package mailer

import (
	"fmt"

	"github.com/smartring-shop/order-backend/internal/config"
	"gopkg.in/gomail.v2"
)

type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Sender transmits one message per call over an authenticated relay. There is
// no queuing or batching here; retries are the caller's concern.
type Sender interface {
	Send(m Message) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *SMTPSender) Send(m Message) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", m.HTMLBody)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: failed to send message to %s: %w", m.To, err)
	}

	return nil
}
