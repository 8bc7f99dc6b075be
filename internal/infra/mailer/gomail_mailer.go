// Package mailer sends transactional email through an SMTP relay.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"patisserie/config"
	"patisserie/internal/domain/service"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

const confirmationTemplate = `<html><body>
<h2>Bienvenue chez Délices Pâtisserie !</h2>
<p>Merci de confirmer votre adresse email en cliquant sur le lien ci-dessous :</p>
<p><a href="{{.Link}}">Confirmer mon compte</a></p>
</body></html>`

const resetTemplate = `<html><body>
<h2>Réinitialisation de votre mot de passe</h2>
<p>Cliquez sur le lien ci-dessous pour choisir un nouveau mot de passe.
Ce lien expire dans une heure.</p>
<p><a href="{{.Link}}">Réinitialiser mon mot de passe</a></p>
<p>Si vous n'êtes pas à l'origine de cette demande, ignorez cet email.</p>
</body></html>`

const receiptTemplate = `<html><body>
<h2>Merci pour votre commande !</h2>
<p>Votre paiement de <strong>{{printf "%.0f" .Amount}} FCFA</strong> a bien été reçu.</p>
<p>Numéro de reçu : <strong>{{.Receipt}}</strong></p>
<p>Adresse de livraison : {{.Address}}</p>
</body></html>`

const orderTemplate = `<html><body>
<h2>Nouvelle commande {{.Receipt}}</h2>
<p>Adresse de livraison : {{.Address}}</p>
<table border="1" cellpadding="4">
<tr><th>Produit</th><th>Quantité</th><th>Prix</th></tr>
{{range .Items}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{printf "%.0f" .Price}} FCFA</td></tr>
{{end}}</table>
</body></html>`

// gomailMailer implements the Mailer interface over SMTP.
type gomailMailer struct {
	dialer       *gomail.Dialer
	from         string
	frontendURL  string
	confirmation *template.Template
	reset        *template.Template
	receipt      *template.Template
	order        *template.Template
	logger       *slog.Logger
}

// NewGomailMailer is the constructor for gomailMailer.
func NewGomailMailer(cfg *config.Config, logger *slog.Logger) (service.Mailer, error) {
	tmpl := func(name, text string) (*template.Template, error) {
		return template.New(name).Parse(text)
	}

	confirmation, err := tmpl("confirmation", confirmationTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse confirmation template")
	}
	reset, err := tmpl("reset", resetTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse reset template")
	}
	receipt, err := tmpl("receipt", receiptTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse receipt template")
	}
	order, err := tmpl("order", orderTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse order template")
	}

	return &gomailMailer{
		dialer:       gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password),
		from:         cfg.SMTP.From,
		frontendURL:  cfg.Mail.FrontendURL,
		confirmation: confirmation,
		reset:        reset,
		receipt:      receipt,
		order:        order,
		logger:       logger,
	}, nil
}

// Send delivers a plain email.
func (m *gomailMailer) Send(ctx context.Context, to, subject, body string) error {
	return m.send(ctx, to, subject, body)
}

// SendConfirmationEmail sends the account-confirmation link.
func (m *gomailMailer) SendConfirmationEmail(ctx context.Context, to, confirmationToken string) error {
	link := fmt.Sprintf("%s/confirm?token=%s", m.frontendURL, confirmationToken)

	body, err := render(m.confirmation, map[string]any{"Link": link})
	if err != nil {
		return err
	}

	return m.send(ctx, to, "Confirmez votre compte", body)
}

// SendPasswordResetEmail sends the password-reset link.
func (m *gomailMailer) SendPasswordResetEmail(ctx context.Context, to, resetLink string) error {
	body, err := render(m.reset, map[string]any{"Link": resetLink})
	if err != nil {
		return err
	}

	return m.send(ctx, to, "Réinitialisation de votre mot de passe", body)
}

// SendDeliveryReceipt sends the customer their order confirmation.
func (m *gomailMailer) SendDeliveryReceipt(ctx context.Context, to, receiptNumber string, amount float64, deliveryAddress string) error {
	body, err := render(m.receipt, map[string]any{
		"Receipt": receiptNumber,
		"Amount":  amount,
		"Address": deliveryAddress,
	})
	if err != nil {
		return err
	}

	return m.send(ctx, to, "Votre reçu de commande "+receiptNumber, body)
}

// SendOrderNotification alerts the operations mailbox about a new order.
func (m *gomailMailer) SendOrderNotification(ctx context.Context, to, receiptNumber string, items []service.OrderLine, deliveryAddress string) error {
	body, err := render(m.order, map[string]any{
		"Receipt": receiptNumber,
		"Address": deliveryAddress,
		"Items":   items,
	})
	if err != nil {
		return err
	}

	return m.send(ctx, to, "Nouvelle commande "+receiptNumber, body)
}

// send builds and dials one message. gomail has no context support, so
// cancellation is checked before dialing.
func (m *gomailMailer) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "email send cancelled")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	m.logger.Debug("Email sent", slog.String("to", to), slog.String("subject", subject))

	return nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "failed to render email template")
	}

	return buf.String(), nil
}
