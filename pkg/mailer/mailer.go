package mailer

import "github.com/quillstack/be-cms-platform/pkg/logger"

// Send delivers one HTML email, preferring Resend and falling back to
// SES when Resend fails.
func Send(from, to, subject, htmlBody string) error {
	err := SendViaResend(from, to, subject, htmlBody)
	if err == nil {
		return nil
	}
	logger.Get().WithComponent("mailer").Warn("Resend failed, falling back to SES",
		logger.Provider("resend"), logger.Err(err))
	return SendViaSES(from, to, subject, htmlBody)
}
