package email

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"trackd/internal/domain/ticket"
	"trackd/internal/domain/tracker"
	"trackd/internal/domain/user"
	sharedConfig "trackd/internal/shared/config"
	"trackd/internal/shared/logger"
	"trackd/internal/shared/services/markdown"
)

// EventMailer renders ticket events to email and sends one message per
// recipient over SMTP.
type EventMailer struct {
	cfg      sharedConfig.EmailConfig
	dialer   *gomail.Dialer
	markdown markdown.Service
	logger   logger.Interface
}

func NewEventMailer(cfg sharedConfig.EmailConfig, lg logger.Interface) *EventMailer {
	return &EventMailer{
		cfg:      cfg,
		dialer:   gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		markdown: markdown.NewService(),
		logger:   lg.With("component", "email.event_mailer"),
	}
}

func (m *EventMailer) SendEventNotification(
	ctx context.Context,
	recipients []*user.User,
	tr *tracker.Tracker,
	tk *ticket.Ticket,
	ev *ticket.Event,
	comment *ticket.Comment,
) error {
	if len(recipients) == 0 {
		return nil
	}

	subject := fmt.Sprintf("%s/#%d: %s", tr.Name(), tk.ScopedID(), tk.Title())
	summary := m.eventSummary(ev)
	ticketURL := fmt.Sprintf("%s/trackers/%d/tickets/%d", m.cfg.BaseURL, tr.ID(), tk.ScopedID())

	var body string
	if comment != nil {
		body = comment.Text()
	} else if ev.EventType().Has(ticket.EventCreated) {
		body = tk.Description()
	}

	htmlBody, err := m.renderHTML(summary, body, ticketURL)
	if err != nil {
		return fmt.Errorf("failed to render event email: %w", err)
	}
	plainBody := renderPlain(summary, body, ticketURL)

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.FromAddress, m.cfg.FromName)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plainBody)
	msg.AddAlternative("text/html", htmlBody)

	for _, recipient := range recipients {
		if recipient.Email() == "" {
			continue
		}
		msg.SetHeader("To", recipient.Email())

		if err := m.dialer.DialAndSend(msg); err != nil {
			m.logger.Errorw("failed to send event notification",
				"recipient", recipient.Username(),
				"event_id", ev.ID(),
				"error", err)
			return fmt.Errorf("failed to send email: %w", err)
		}
	}

	return nil
}

// eventSummary produces a one-line human description of what happened.
func (m *EventMailer) eventSummary(ev *ticket.Event) string {
	et := ev.EventType()

	switch {
	case et.Has(ticket.EventCreated):
		return "Ticket created"
	case et.Has(ticket.EventStatusChange):
		if ev.NewStatus() != nil && ev.NewStatus().IsResolved() {
			if ev.NewResolution() != nil {
				return fmt.Sprintf("Ticket resolved: %s", ev.NewResolution().String())
			}
			return "Ticket resolved"
		}
		return "Ticket reopened"
	case et.Has(ticket.EventComment):
		return "New comment"
	case et.Has(ticket.EventLabelAdded):
		return "Label added"
	case et.Has(ticket.EventLabelRemoved):
		return "Label removed"
	case et.Has(ticket.EventAssignedUser):
		return "User assigned"
	case et.Has(ticket.EventUnassignedUser):
		return "User unassigned"
	default:
		return "Ticket updated"
	}
}

func (m *EventMailer) renderHTML(summary, body, ticketURL string) (string, error) {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString(fmt.Sprintf("<p><strong>%s</strong></p>", summary))

	if body != "" {
		rendered, err := m.markdown.ToHTMLSanitized(body)
		if err != nil {
			return "", err
		}
		b.WriteString(rendered)
	}

	b.WriteString(fmt.Sprintf(`<p><a href="%s">View ticket</a></p>`, ticketURL))
	b.WriteString("</body></html>")
	return b.String(), nil
}

func renderPlain(summary, body, ticketURL string) string {
	var b strings.Builder
	b.WriteString(summary)
	b.WriteString("\n")
	if body != "" {
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n")
	}
	b.WriteString("\nView ticket: ")
	b.WriteString(ticketURL)
	b.WriteString("\n")
	return b.String()
}
