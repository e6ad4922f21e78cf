// Package email implementa el puerto Mailer sobre SMTP (gomail).
package email

import (
	"context"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/mercado-api/internal/application/vendors"
	"github.com/jhoicas/mercado-api/pkg/config"
)

var _ vendors.Mailer = (*SMTPMailer)(nil)

// SMTPMailer envía correos transaccionales (aprobación/rechazo de tiendas).
type SMTPMailer struct {
	dialer *gomail.Dialer
	sender string
}

// NewSMTPMailer construye el mailer con la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Sender, cfg.Password),
		sender: cfg.Sender,
	}
}

// Send envía un correo de texto plano. Respeta la cancelación del contexto
// antes de abrir la conexión; gomail no acepta contexto en el dial.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
