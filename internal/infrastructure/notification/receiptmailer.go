// Package notification delivers closing receipts to customers.
package notification

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/garagehq/repairshop/internal/application/ticket/usecases"
	"github.com/garagehq/repairshop/internal/shared/goroutine"
	"github.com/garagehq/repairshop/internal/shared/logger"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// MessageSender abstracts the SMTP dial so tests can capture messages.
type MessageSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// ReceiptMailer emails a closing receipt in the background. Delivery
// failures are logged only; the ticket has already committed.
type ReceiptMailer struct {
	config SMTPConfig
	sender MessageSender
	logger logger.Interface
	// pending is nil in tests so delivery happens on the caller's goroutine.
	pending *goroutine.Group
}

func NewReceiptMailer(config SMTPConfig, log logger.Interface) *ReceiptMailer {
	return &ReceiptMailer{
		config:  config,
		sender:  gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		logger:  log,
		pending: goroutine.NewGroup(log),
	}
}

var _ usecases.ReceiptNotifier = (*ReceiptMailer)(nil)

func (m *ReceiptMailer) NotifyTicketClosed(_ context.Context, receipt usecases.ClosingReceipt) error {
	if receipt.CustomerEmail == "" {
		return fmt.Errorf("receipt for ticket %d has no recipient", receipt.TicketID)
	}
	msg := m.buildMessage(receipt)

	send := func() {
		if err := m.sender.DialAndSend(msg); err != nil {
			m.logger.Warnw("failed to send closing receipt",
				"ticket_id", receipt.TicketID,
				"error", err,
			)
			return
		}
		m.logger.Infow("closing receipt sent", "ticket_id", receipt.TicketID)
	}

	if m.pending == nil {
		send()
		return nil
	}
	m.pending.Go("receipt-mailer", send)
	return nil
}

// Drain waits for receipts still being delivered, up to ctx's deadline.
func (m *ReceiptMailer) Drain(ctx context.Context) error {
	if m.pending == nil {
		return nil
	}
	return m.pending.Wait(ctx)
}

func (m *ReceiptMailer) buildMessage(r usecases.ClosingReceipt) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.config.FromAddress, m.config.FromName)
	msg.SetAddressHeader("To", r.CustomerEmail, r.CustomerName)
	msg.SetHeader("Subject", fmt.Sprintf("Your vehicle %s is ready (ticket #%d)", r.VIN, r.TicketID))
	msg.SetBody("text/plain", plainReceipt(r))
	msg.AddAlternative("text/html", htmlReceipt(r))
	return msg
}

func plainReceipt(r usecases.ClosingReceipt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", r.CustomerName)
	fmt.Fprintf(&b, "Work on your vehicle %s is complete.\n\n", r.VIN)
	writeList(&b, "Services", r.Services)
	writeList(&b, "Parts", r.Parts)
	fmt.Fprintf(&b, "Total (tax included): %s\n", r.Cost)
	fmt.Fprintf(&b, "Closed: %s\n", r.ClosedAt.Format("2006-01-02 15:04"))
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
	b.WriteString("\n")
}

func htmlReceipt(r usecases.ClosingReceipt) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<p>Hello %s,</p>", html.EscapeString(r.CustomerName))
	fmt.Fprintf(&b, "<p>Work on your vehicle <strong>%s</strong> is complete.</p>", html.EscapeString(r.VIN))
	writeHTMLList(&b, "Services", r.Services)
	writeHTMLList(&b, "Parts", r.Parts)
	fmt.Fprintf(&b, "<p>Total (tax included): <strong>%s</strong></p>", html.EscapeString(r.Cost))
	b.WriteString("</body></html>")
	return b.String()
}

func writeHTMLList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "<h3>%s</h3><ul>", title)
	for _, item := range items {
		fmt.Fprintf(b, "<li>%s</li>", html.EscapeString(item))
	}
	b.WriteString("</ul>")
}
