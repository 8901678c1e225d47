package email

import "context"

//go:generate mockgen -source=transport.go -destination=mock.go -package=email

// Transport sends one email. Implementations return an error when the
// provider did not confirm the send; callers must not record a
// notification for a failed send.
type Transport interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
