package httpclient

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBaseURL = errors.New("httpclient: invalid base URL")
	ErrEncodeBody     = errors.New("httpclient: failed to encode request body")
	ErrBuildRequest   = errors.New("httpclient: failed to build request")
	ErrBodyTooLarge   = errors.New("httpclient: response body too large")

	// Sentinels matched by ResponseError.Unwrap.
	ErrHTTP           = errors.New("http error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrTimeout        = errors.New("request timed out")
	ErrCanceled       = errors.New("request canceled")
	ErrNetwork        = errors.New("network error")
	ErrInvalidRequest = errors.New("invalid request")
)

// ResponseError exposes a failed envelope as an error.
type ResponseError struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *ResponseError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ResponseError) Unwrap() error {
	switch e.Kind {
	case KindUnauthorized:
		return ErrUnauthorized
	case KindForbidden:
		return ErrForbidden
	case KindTimeout:
		return ErrTimeout
	case KindCanceled:
		return ErrCanceled
	case KindNetwork:
		return ErrNetwork
	case KindInvalidRequest:
		return ErrInvalidRequest
	default:
		return ErrHTTP
	}
}
