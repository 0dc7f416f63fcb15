package notifier

import (
	"context"
	"fmt"
	"html"

	"github.com/jadralna-sola/sailing-school-web/internal/catalog"
	"github.com/jadralna-sola/sailing-school-web/internal/config"
	"github.com/jadralna-sola/sailing-school-web/internal/models"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// EmailNotifier sends the applicant a confirmation email via Resend.
type EmailNotifier struct {
	client *resend.Client
	from   string
	bcc    string
	log    zerolog.Logger
}

func NewEmailNotifier(cfg *config.Config, log zerolog.Logger) (*EmailNotifier, error) {
	if cfg.ResendAPIKey == "" {
		return nil, fmt.Errorf("resend API key is empty")
	}

	return &EmailNotifier{
		client: resend.NewClient(cfg.ResendAPIKey),
		from:   cfg.SignupFromEmail,
		bcc:    cfg.SignupBCCEmail,
		log:    log,
	}, nil
}

func (n *EmailNotifier) NotifySignup(ctx context.Context, signup models.Signup) error {
	courseName := catalog.CourseName(signup.Course)

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{signup.Email},
		Subject: "Potrditev prijave – " + courseName,
		Html: fmt.Sprintf(
			"<h1>Hvala za prijavo!</h1>"+
				"<p>Pozdravljeni, %s.</p>"+
				"<p>Prejeli smo vašo prijavo na tečaj <strong>%s</strong> za %d oseb. "+
				"Kmalu vas bomo kontaktirali z navodili za plačilo.</p>"+
				"<p>Jadralna šola</p>",
			html.EscapeString(signup.FullName),
			html.EscapeString(courseName),
			signup.Participants,
		),
	}
	if n.bcc != "" {
		params.Bcc = []string{n.bcc}
	}

	sent, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		n.log.Error().Err(err).Str("to", signup.Email).Msg("failed to send confirmation email")
		return err
	}

	n.log.Info().Str("to", signup.Email).Str("message_id", sent.Id).Msg("confirmation email sent")
	return nil
}
