package email

import "context"

type Provider interface {
	Send(ctx context.Context, to []string, subject string, htmlBody string) error
	// SendWithAttachment sends an HTML body plus a single binary
	// attachment as a multipart/mixed message.
	SendWithAttachment(ctx context.Context, to []string, subject string, htmlBody string, filename string, attachment []byte) error
}
