package orchestrator

import "net/http"

// ErrorKind classifies a failed fetch. The kinds are transport-agnostic
// even though the mapping below is HTTP-shaped.
type ErrorKind string

const (
	KindInvalidRequest ErrorKind = "invalid-request"
	KindAuthRequired   ErrorKind = "authentication-required"
	KindAccessDenied   ErrorKind = "access-denied"
	KindNotFound       ErrorKind = "not-found"
	KindRateLimited    ErrorKind = "rate-limited"
	KindServerError    ErrorKind = "server-error"
	KindNetworkError   ErrorKind = "network-error"
)

// KindFromStatus maps an HTTP status code to an error kind. Anything
// unrecognized is a network-class failure.
func KindFromStatus(status int) ErrorKind {
	switch status {
	case http.StatusBadRequest:
		return KindInvalidRequest
	case http.StatusUnauthorized:
		return KindAuthRequired
	case http.StatusForbidden:
		return KindAccessDenied
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusInternalServerError:
		return KindServerError
	}
	return KindNetworkError
}

var kindMessages = map[ErrorKind]string{
	KindInvalidRequest: "Invalid request. Please adjust the filters and try again.",
	KindAuthRequired:   "Authentication required. Please sign in.",
	KindAccessDenied:   "You do not have access to this data.",
	KindNotFound:       "The requested data could not be found.",
	KindRateLimited:    "Too many requests. Please wait a moment and retry.",
	KindServerError:    "Server error. Please try again later.",
	KindNetworkError:   "Network error. Showing local data instead.",
}

// Message returns the user-facing text for the kind.
func (k ErrorKind) Message() string {
	if m, ok := kindMessages[k]; ok {
		return m
	}
	return kindMessages[KindNetworkError]
}
