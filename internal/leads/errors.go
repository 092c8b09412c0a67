package leads

import "errors"

var (
	// ErrMethodNotAllowed is returned for any method other than POST.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrMissingFields is returned when a required field is empty.
	ErrMissingFields = errors.New("missing required fields")

	// ErrInvalidEmail is returned when the email fails the address pattern.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPhone is returned when the phone number has disallowed characters.
	ErrInvalidPhone = errors.New("invalid phone number format")

	// ErrTooManySubmissions is returned when the velocity guard rejects a client.
	ErrTooManySubmissions = errors.New("too many submissions")
)

// Reason names the validation check that failed.
type Reason string

const (
	ReasonMissingFields  Reason = "missing_fields"
	ReasonBadEmailFormat Reason = "bad_email_format"
	ReasonBadPhoneFormat Reason = "bad_phone_format"
)

// ValidationError reports a rejected submission.
type ValidationError struct {
	Reason Reason
	// Missing holds the empty required keys for ReasonMissingFields.
	Missing []string
}

func (e *ValidationError) Error() string {
	return e.sentinel().Error()
}

// Unwrap lets errors.Is match the sentinel for the reason.
func (e *ValidationError) Unwrap() error {
	return e.sentinel()
}

func (e *ValidationError) sentinel() error {
	switch e.Reason {
	case ReasonBadEmailFormat:
		return ErrInvalidEmail
	case ReasonBadPhoneFormat:
		return ErrInvalidPhone
	default:
		return ErrMissingFields
	}
}

// DispatchError wraps a failure while rendering or sending the lead email.
type DispatchError struct {
	Stage Stage
	Err   error
}

func (e *DispatchError) Error() string {
	return "leads: " + string(e.Stage) + ": " + e.Err.Error()
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
