// Package mailer wraps the MailerSend transactional-email API behind a small
// interface so handlers and tests do not depend on the provider SDK.
package mailer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type Message struct {
	ToEmail   string
	ToName    string
	ReplyTo   string // optional reply-to email
	ReplyName string
	Subject   string
	HTML      string
}

type Mailer interface {
	Send(ctx context.Context, m Message) error
}

type MailerSend struct {
	client    *mailersend.Mailersend
	fromEmail string
	fromName  string
}

func NewMailerSend(apiToken, fromEmail, fromName string) *MailerSend {
	return &MailerSend{
		client:    mailersend.NewMailersend(apiToken),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (m *MailerSend) Send(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	email := m.client.Email.NewMessage()
	email.SetFrom(mailersend.From{Email: m.fromEmail, Name: m.fromName})
	email.SetRecipients([]mailersend.Recipient{{Email: msg.ToEmail, Name: msg.ToName}})
	if msg.ReplyTo != "" {
		email.SetReplyTo(mailersend.ReplyTo{Email: msg.ReplyTo, Name: msg.ReplyName})
	}
	email.SetSubject(msg.Subject)
	email.SetHTML(msg.HTML)

	if _, err := m.client.Email.Send(ctx, email); err != nil {
		log.Printf("[mail] send failed to=%s subject=%q err=%v", msg.ToEmail, msg.Subject, err)
		return err
	}
	return nil
}

// OTPEmailHTML renders the password-reset code message.
func OTPEmailHTML(otp string) string {
	return fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; text-align: center; color: #333;">
        <h2>Password Reset Request</h2>
        <p>Your One-Time Password (OTP) for resetting your password is:</p>
        <p style="font-size: 24px; font-weight: bold; letter-spacing: 5px; background: #f0f0f0; padding: 10px 20px; border-radius: 5px; display: inline-block;">
          %s
        </p>
        <p>This code will expire in 10 minutes.</p>
      </div>
    `, otp)
}

// ContactEmailHTML renders the forwarded contact-form message for the shop inbox.
func ContactEmailHTML(name, email, subject, message string) string {
	return fmt.Sprintf(`
        <h3>You have a new message from your website contact form:</h3>
        <ul>
            <li><strong>Name:</strong> %s</li>
            <li><strong>Email:</strong> %s</li>
            <li><strong>Subject:</strong> %s</li>
        </ul>
        <p><strong>Message:</strong></p>
        <p>%s</p>
    `, name, email, subject, strings.ReplaceAll(message, "\n", "<br>"))
}
