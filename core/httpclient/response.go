package httpclient

import (
	"net/http"
)

// Kind classifies how a request ended.
type Kind string

const (
	KindNone           Kind = ""
	KindHTTP           Kind = "http"
	KindUnauthorized   Kind = "unauthorized"
	KindForbidden      Kind = "forbidden"
	KindTimeout        Kind = "timeout"
	KindCanceled       Kind = "canceled"
	KindNetwork        Kind = "network"
	KindInvalidRequest Kind = "invalid_request"
)

// Transport reports whether the kind means no usable HTTP response was received.
func (k Kind) Transport() bool {
	return k == KindTimeout || k == KindCanceled || k == KindNetwork || k == KindInvalidRequest
}

// Response is the envelope every call resolves to. Success responses carry Data;
// failures carry Error and Kind. Status is 0 when no HTTP response was received.
type Response[T any] struct {
	Success   bool   `json:"success"`
	Data      T      `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Status    int    `json:"status,omitempty"`
	Kind      Kind   `json:"kind,omitempty"`
	RequestID string `json:"request_id,omitempty"`

	Header http.Header `json:"-"`
	Raw    []byte      `json:"-"`
}

// HasStatus reports whether an HTTP response was received.
func (r Response[T]) HasStatus() bool {
	return r.Status != 0
}

// Err returns nil for successful responses and a *ResponseError otherwise.
func (r Response[T]) Err() error {
	if r.Success {
		return nil
	}
	return &ResponseError{Kind: r.Kind, Status: r.Status, Message: r.Error}
}

// Convert re-types a response, replacing its data.
func Convert[T, U any](r Response[T], data U) Response[U] {
	return Response[U]{
		Success:   r.Success,
		Data:      data,
		Message:   r.Message,
		Error:     r.Error,
		Status:    r.Status,
		Kind:      r.Kind,
		RequestID: r.RequestID,
		Header:    r.Header,
		Raw:       r.Raw,
	}
}

// Failure builds a failed envelope that never reached the network.
func Failure[T any](kind Kind, errText, message string) Response[T] {
	return Response[T]{Kind: kind, Error: errText, Message: message}
}
