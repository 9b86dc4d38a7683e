package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorKind is the closed set of failures every API call resolves to.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidURL
	KindNoData
	KindDecodingError
	KindEncodingError
	KindNetworkError
	KindServerError
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindTimeout
)

var kindNames = map[ErrorKind]string{
	KindUnknown:       "unknown",
	KindInvalidURL:    "invalidURL",
	KindNoData:        "noData",
	KindDecodingError: "decodingError",
	KindEncodingError: "encodingError",
	KindNetworkError:  "networkError",
	KindServerError:   "serverError",
	KindUnauthorized:  "unauthorized",
	KindForbidden:     "forbidden",
	KindNotFound:      "notFound",
	KindTimeout:       "timeout",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Code is the fixed numeric code shown to users and written to logs.
func (k ErrorKind) Code() int {
	switch k {
	case KindInvalidURL:
		return -1001
	case KindNoData:
		return -1002
	case KindDecodingError:
		return -1003
	case KindEncodingError:
		return -1004
	case KindNetworkError:
		return -1005
	case KindServerError:
		return 500
	case KindUnauthorized:
		return 401
	case KindForbidden:
		return 403
	case KindNotFound:
		return 404
	case KindTimeout:
		return -1006
	default:
		return -1000
	}
}

// Error is returned by every Client call. Message carries the server message
// or the encoding failure; Err holds the underlying cause when there is one.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Sentinels for errors.Is. Matching compares kinds only.
var (
	ErrInvalidURL   = &Error{Kind: KindInvalidURL}
	ErrNoData       = &Error{Kind: KindNoData}
	ErrDecoding     = &Error{Kind: KindDecodingError}
	ErrEncoding     = &Error{Kind: KindEncodingError}
	ErrNetwork      = &Error{Kind: KindNetworkError}
	ErrServer       = &Error{Kind: KindServerError}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrForbidden    = &Error{Kind: KindForbidden}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrTimeout      = &Error{Kind: KindTimeout}
	ErrUnknown      = &Error{Kind: KindUnknown}
)

// Error returns the canonical fallback text for the kind.
func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidURL:
		return "invalid URL"
	case KindNoData:
		return "no data"
	case KindDecodingError:
		return "failed to decode response"
	case KindEncodingError:
		if e.Message != "" {
			return "failed to encode request: " + e.Message
		}
		return "failed to encode request"
	case KindNetworkError:
		if e.Err != nil {
			return "network error: " + e.Err.Error()
		}
		return "network error"
	case KindServerError:
		msg := e.Message
		if msg == "" {
			msg = "unknown error"
		}
		return "server error: " + msg
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "resource not found"
	case KindTimeout:
		return "request timed out"
	default:
		return "unknown error"
	}
}

func (e *Error) Code() int { return e.Kind.Code() }

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// ServerError builds a KindServerError carrying the envelope message.
func ServerError(message string) *Error {
	return &Error{Kind: KindServerError, Message: message}
}

// NetworkError wraps a transport failure.
func NetworkError(cause error) *Error {
	return &Error{Kind: KindNetworkError, Err: cause}
}

// EncodingError reports a request that could not be turned into a payload.
func EncodingError(cause error) *Error {
	e := &Error{Kind: KindEncodingError, Err: cause}
	if cause != nil {
		e.Message = cause.Error()
	}
	return e
}

func newError(kind ErrorKind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

// KindOf extracts the kind of err, KindUnknown when err is not an *Error.
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// classifyTransport maps a failed round trip onto the taxonomy.
func classifyTransport(err error) *Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return newError(KindTimeout, err)
	case errors.Is(err, context.Canceled):
		return newError(KindUnknown, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return newError(KindTimeout, err)
		}
		return NetworkError(err)
	}
	return newError(KindUnknown, err)
}

// statusError classifies HTTP statuses that carry their own meaning.
func statusError(status int) *Error {
	switch status {
	case http.StatusUnauthorized:
		return newError(KindUnauthorized, nil)
	case http.StatusForbidden:
		return newError(KindForbidden, nil)
	case http.StatusNotFound:
		return newError(KindNotFound, nil)
	default:
		return nil
	}
}
