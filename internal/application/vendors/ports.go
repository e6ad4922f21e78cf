package vendors

import "context"

// Mailer puerto de notificaciones por correo. La implementación SMTP vive en
// infrastructure/email; en entornos sin SMTP se inyecta NopMailer.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NopMailer descarta los correos (SMTP no configurado).
type NopMailer struct{}

// Send no hace nada.
func (NopMailer) Send(context.Context, string, string, string) error { return nil }
