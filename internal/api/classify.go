package api

import "errors"

// ErrorKind is the user-visible failure taxonomy.
type ErrorKind string

const (
	KindNetwork    ErrorKind = "network"
	KindValidation ErrorKind = "validation"
	KindServer     ErrorKind = "server"
	KindUnknown    ErrorKind = "unknown"
)

// Classified is the single error record the UI renders. Exactly one is held
// at a time; last write wins.
type Classified struct {
	Kind      ErrorKind
	Message   string
	Retryable bool
}

// Classify maps any failure to one of the four kinds. Every call site that
// surfaces an error to the UI goes through here; gateways themselves raise
// the raw failure.
//
//	status 0 (unreachable)  -> network, retryable
//	HTTP 400-499            -> validation, not retryable
//	HTTP 500-599            -> server, retryable
//	anything else           -> unknown, retryable
func Classify(err error) Classified {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == 0:
			return Classified{
				Kind:      KindNetwork,
				Message:   "Connection lost. Check your network and try again.",
				Retryable: true,
			}
		case apiErr.Status >= 400 && apiErr.Status <= 499:
			return Classified{
				Kind:      KindValidation,
				Message:   apiErr.Message,
				Retryable: false,
			}
		case apiErr.Status >= 500 && apiErr.Status <= 599:
			return Classified{
				Kind:      KindServer,
				Message:   "The server had a problem. Please try again.",
				Retryable: true,
			}
		}
	}
	return Classified{
		Kind:      KindUnknown,
		Message:   "Something went wrong. Please try again.",
		Retryable: true,
	}
}
