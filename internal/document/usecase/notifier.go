package usecase

import (
	"errors"

	"mindmaker-backend/internal/document/domain"

	"github.com/rs/zerolog"
)

// Notifier surfaces a failed mutation to the user.
type Notifier interface {
	Notify(action string, err error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(action string, err error)

func (f NotifierFunc) Notify(action string, err error) { f(action, err) }

// LogNotifier records failures on the logger: expected user errors at warn,
// everything else at error.
func LogNotifier(l zerolog.Logger) Notifier {
	return NotifierFunc(func(action string, err error) {
		evt := l.Error()
		if isUserError(err) {
			evt = l.Warn()
		}
		evt.Err(err).Str("action", action).Msg("document mutation failed")
	})
}

// reportedError marks an error the view has already handed to its notifier.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported reports whether err already went through a view's notifier, so the
// caller does not need to log it again.
func Reported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

func isUserError(err error) bool {
	for _, target := range []error{
		domain.ErrUnauthenticated,
		domain.ErrForbidden,
		domain.ErrDocumentNotFound,
		domain.ErrDocumentPrivate,
		domain.ErrCardNotFound,
		domain.ErrUnknownColumn,
		domain.ErrEmptyContent,
		domain.ErrEmptyTitle,
		domain.ErrInvalidStatus,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
