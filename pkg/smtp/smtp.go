package smtp

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/clubmsg/backend/pkg/logger"
)

// Client wraps the SMTP dialer used for account emails.
type Client struct {
	dialer *gomail.Dialer
	from   string
	domain string
}

func NewClient(dialer *gomail.Dialer, from, domain string) *Client {
	return &Client{dialer: dialer, from: from, domain: domain}
}

// SendConfirmationEmail mails an email-verification code. Failures are
// logged, not returned: registration must not fail because of the
// mail relay.
func (c *Client) SendConfirmationEmail(to string, code string) {
	msg := gomail.NewMessage()
	msg.SetHeader("Message-ID", generateMessageID(c.domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Email Confirmation")
	msg.SetBody("text/plain", fmt.Sprintf("Use this code to verify your email: %s", code))

	if err := c.dialer.DialAndSend(msg); err != nil {
		logger.Log.Errorf("failed to send confirmation email: %v", err)
		return
	}
	logger.Log.Infof("confirmation email sent to %s", to)
}

func generateMessageID(domain string) string {
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}
