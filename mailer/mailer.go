/*
Package mailer sends the site's outbound email over SMTP.

PURPOSE:
  Implements booking.Notifier (submission and decision mail) plus the
  contact-form message. Bodies are plain text; the site's frontend does
  the pretty rendering, email just has to arrive.

BEST-EFFORT CONTRACT:
  The booking workflow logs and ignores Notifier errors. Only the
  contact form surfaces a send failure to the caller, because there the
  email IS the operation.

SEE ALSO:
  - booking/notify.go: The Notifier contract
  - config/config.go: SMTPConfig
*/
package mailer

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/warp/rental-engine/booking"
)

// ErrNotConfigured is returned when no SMTP host is set.
var ErrNotConfigured = errors.New("smtp is not configured")

// Config carries the SMTP settings the mailer needs.
type Config struct {
	Host       string
	Port       int
	User       string
	Password   string
	From       string
	AdminEmail string
}

// Mailer sends email via SMTP. It dials per message; the site sends a
// handful of mails a day, connection pooling would be wasted complexity.
type Mailer struct {
	cfg Config
}

func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled reports whether an SMTP host is configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != ""
}

func (m *Mailer) send(to, subject, body string) error {
	if !m.Enabled() {
		return ErrNotConfigured
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// RequestSubmitted mails the operator about a new rental request.
func (m *Mailer) RequestSubmitted(_ context.Context, req booking.RentalRequest) error {
	subject := fmt.Sprintf("New rental request: %s", req.ProductTitle)
	body := fmt.Sprintf(
		"A new rental request has arrived.\n\n"+
			"Article:  %s\n"+
			"Period:   %s to %s\n"+
			"Customer: %s <%s>\n",
		req.ProductTitle, req.StartDate, req.EndDate, req.CustomerName, req.CustomerEmail)
	if req.CustomerPhone != "" {
		body += fmt.Sprintf("Phone:    %s\n", req.CustomerPhone)
	}
	body += fmt.Sprintf("Total:    %s\n", req.TotalPrice.StringFixed(2))
	if req.Message != "" {
		body += fmt.Sprintf("\nMessage:\n%s\n", req.Message)
	}
	body += fmt.Sprintf("\nRequest ID: %s\nPlease handle the request in the admin panel.\n", req.ID)

	return m.send(m.cfg.AdminEmail, subject, body)
}

// RequestDecided mails the customer about the decision outcome.
func (m *Mailer) RequestDecided(_ context.Context, req booking.RentalRequest) error {
	var statusText string
	switch req.Status {
	case booking.StatusApproved:
		statusText = "approved"
	case booking.StatusRejected:
		statusText = "rejected"
	default:
		statusText = "updated"
	}

	subject := fmt.Sprintf("Your rental request has been %s", statusText)
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"your request for %s (%s to %s) has been %s.\n",
		req.CustomerName, req.ProductTitle, req.StartDate, req.EndDate, statusText)

	switch req.Status {
	case booking.StatusApproved:
		body += "\nYour booking is confirmed. We will contact you shortly to arrange the details.\n"
	case booking.StatusRejected:
		body += "\nUnfortunately we could not approve your request.\n"
		if req.AdminNote != "" {
			body += fmt.Sprintf("Reason: %s\n", req.AdminNote)
		}
	}
	body += "\nKind regards,\nyour rental team\n"

	return m.send(req.CustomerEmail, subject, body)
}

// ContactMessage is a website contact-form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// SendContact forwards a contact-form message to the operator.
func (m *Mailer) SendContact(_ context.Context, msg ContactMessage) error {
	subject := msg.Subject
	if subject == "" {
		subject = "General inquiry"
	}
	body := fmt.Sprintf(
		"New contact message from the website.\n\n"+
			"Name:  %s\n"+
			"Email: %s\n",
		msg.Name, msg.Email)
	if msg.Phone != "" {
		body += fmt.Sprintf("Phone: %s\n", msg.Phone)
	}
	body += fmt.Sprintf("\n%s\n", msg.Message)

	return m.send(m.cfg.AdminEmail, "Contact form: "+subject, body)
}
