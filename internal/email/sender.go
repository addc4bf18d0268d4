// Package email delivers transactional mail for the clinic.
package email

import "context"

// Attachment is an inline file to include with a message.
type Attachment struct {
	FileName string
	Content  []byte
}

// Sender delivers transactional email.
type Sender interface {
	SendReferralReceived(ctx context.Context, toEmail, referrerName, patientName, trackingURL string) error
}
