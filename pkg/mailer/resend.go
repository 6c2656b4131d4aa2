package mailer

import (
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/spf13/viper"
)

// SendViaResend delivers one HTML email through the Resend API.
func SendViaResend(from, to, subject, htmlBody string) error {
	client := resend.NewClient(viper.GetString("RESEND_API_KEY"))

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
	}
	if _, err := client.Emails.Send(params); err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}
