package contact

import "errors"

var (
	// ErrInsertFailed means the message could not be stored.
	ErrInsertFailed = errors.New("database insert failed")

	// ErrEmailFailed means the notification email could not be sent.
	ErrEmailFailed = errors.New("email send failed")
)

// Texts shown to the visitor after a submission.
const (
	TextInsertFailed = "Database insert failed"
	TextEmailFailed  = "Email send failed"
	TextInternal     = "Internal Server Error"
	TextGeneric      = "Something went wrong. Please try again later."
	TextSent         = "Message sent successfully!"
)

// UserMessage maps a submission error to the text shown to the visitor.
func UserMessage(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return TextSent
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, ErrInsertFailed):
		return TextInsertFailed
	case errors.Is(err, ErrEmailFailed):
		return TextEmailFailed
	default:
		return TextGeneric
	}
}
