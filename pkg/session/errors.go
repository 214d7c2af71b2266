package session

import "errors"

// Kind classifies a session operation failure.
type Kind string

const (
	// KindInvalidCredentials means the remote API rejected the login or
	// registration attempt.
	KindInvalidCredentials Kind = "invalid_credentials"
	// KindValidation means required fields were missing locally; no network
	// call was made.
	KindValidation Kind = "validation"
	// KindServer means the remote API returned an unparseable or malformed
	// body, or a non-2xx status without a usable message.
	KindServer Kind = "server"
	// KindNetwork means the request could not be completed at all.
	KindNetwork Kind = "network"
)

// Error is a structured session failure. Message is suitable for user-visible
// presentation; when the remote API supplied a message it is preserved as-is.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// IsInvalidCredentials reports whether err is a rejected-credentials failure.
func IsInvalidCredentials(err error) bool { return hasKind(err, KindInvalidCredentials) }

// IsValidation reports whether err is a local pre-flight validation failure.
func IsValidation(err error) bool { return hasKind(err, KindValidation) }

// IsServer reports whether err is a malformed-response failure.
func IsServer(err error) bool { return hasKind(err, KindServer) }

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool { return hasKind(err, KindNetwork) }

func hasKind(err error, kind Kind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == kind
}
