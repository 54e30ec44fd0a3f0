package httpclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/municipio-ibarra/adminclient/core/i18n"
	"github.com/municipio-ibarra/adminclient/core/logger"
)

// maxTextMessage bounds how much of a non-JSON body becomes the envelope message.
const maxTextMessage = 200

// Do performs req and resolves to an envelope. It never panics and never returns
// an error value: transport and HTTP failures are reported in the envelope, and
// every 2xx is a success even when its body cannot be decoded into T. A 401 to a
// request that carried a bearer token invalidates it.
func Do[T any](ctx context.Context, c *Client, req Request) Response[T] {
	ex := c.send(ctx, req)
	r := Response[T]{
		Status:    ex.status,
		RequestID: ex.requestID,
		Header:    ex.header,
		Raw:       ex.body,
	}

	if ex.kind != KindNone {
		r.Kind, r.Error, r.Message = ex.kind, ex.errMsg, ex.msg
		c.finish(ctx, ex, r.Kind, r.Error)
		return r
	}

	p := classifyBody(ex.header.Get("Content-Type"), ex.body)
	if p.malformed {
		c.log.WarnContext(ctx, "malformed JSON body treated as text",
			logger.Path(ex.path),
			logger.RequestID(ex.requestID),
		)
	}

	if !ex.ok() {
		r.Kind, r.Error, r.Message = c.statusFailure(ctx, ex, p, false)
		c.finish(ctx, ex, r.Kind, r.Error)
		return r
	}

	// The server accepted the call; a body that does not fit T leaves Data
	// partly filled and Raw intact.
	if err := decodeInto(&r.Data, p); err != nil {
		c.log.WarnContext(ctx, "response body does not match target type",
			logger.Path(ex.path),
			logger.RequestID(ex.requestID),
			logger.Error(err),
		)
	}

	r.Success = true
	r.Message = p.successMessage()
	if r.Message == "" {
		r.Message = c.tr.T(i18n.MsgSuccess)
	}
	c.finish(ctx, ex, KindNone, "")
	return r
}

// Get performs a GET request.
func Get[T any](ctx context.Context, c *Client, endpoint string, query url.Values) Response[T] {
	return Do[T](ctx, c, Request{Method: http.MethodGet, Endpoint: endpoint, Query: query})
}

// Post performs a POST request with a JSON body.
func Post[T any](ctx context.Context, c *Client, endpoint string, body any) Response[T] {
	return Do[T](ctx, c, Request{Method: http.MethodPost, Endpoint: endpoint, Body: body})
}

// Put performs a PUT request with a JSON body.
func Put[T any](ctx context.Context, c *Client, endpoint string, body any) Response[T] {
	return Do[T](ctx, c, Request{Method: http.MethodPut, Endpoint: endpoint, Body: body})
}

// Patch performs a PATCH request with a JSON body.
func Patch[T any](ctx context.Context, c *Client, endpoint string, body any) Response[T] {
	return Do[T](ctx, c, Request{Method: http.MethodPatch, Endpoint: endpoint, Body: body})
}

// Delete performs a DELETE request.
func Delete[T any](ctx context.Context, c *Client, endpoint string, query url.Values) Response[T] {
	return Do[T](ctx, c, Request{Method: http.MethodDelete, Endpoint: endpoint, Query: query})
}

// FetchBase64 performs req expecting raw bytes (an image or PDF) and returns them
// base64 encoded in Data.
func FetchBase64(ctx context.Context, c *Client, req Request) Response[string] {
	if req.Header == nil {
		req.Header = http.Header{}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "*/*")
	}

	ex := c.send(ctx, req)
	r := Response[string]{
		Status:    ex.status,
		RequestID: ex.requestID,
		Header:    ex.header,
	}

	if ex.kind != KindNone {
		r.Kind, r.Error, r.Message = ex.kind, ex.errMsg, ex.msg
		c.finish(ctx, ex, r.Kind, r.Error)
		return r
	}

	if !ex.ok() {
		r.Raw = ex.body
		p := classifyBody(ex.header.Get("Content-Type"), ex.body)
		r.Kind, r.Error, r.Message = c.statusFailure(ctx, ex, p, true)
		c.finish(ctx, ex, r.Kind, r.Error)
		return r
	}

	r.Success = true
	r.Data = base64.StdEncoding.EncodeToString(ex.body)
	r.Message = c.tr.T(i18n.MsgDocumentFetched)
	c.finish(ctx, ex, KindNone, "")
	return r
}

// statusFailure maps a non-2xx response to kind, error and message.
// prefixStatus formats generic failures as "HTTP <status>: <text>".
func (c *Client) statusFailure(ctx context.Context, ex *exchange, p payload, prefixStatus bool) (Kind, string, string) {
	switch ex.status {
	case http.StatusUnauthorized:
		if c.auth != nil && ex.authorized {
			c.auth.Invalidate(ctx)
		}
		return KindUnauthorized, c.tr.T(i18n.MsgUnauthorizedError), c.tr.T(i18n.MsgUnauthorized)
	case http.StatusForbidden:
		return KindForbidden, c.tr.T(i18n.MsgForbiddenError), c.tr.T(i18n.MsgForbidden)
	}

	httpLine := c.tr.T(i18n.MsgHTTPStatus, i18n.M{
		"status":      ex.status,
		"status_text": ex.statusText,
	})
	msg := p.errorMessage()
	switch {
	case msg == "":
		msg = httpLine
	case prefixStatus:
		msg = "HTTP " + strconv.Itoa(ex.status) + ": " + msg
	}
	return KindHTTP, msg, c.tr.T(i18n.MsgRequestFailed)
}

// payload is a classified response body.
type payload struct {
	raw       []byte
	json      bool
	malformed bool
	text      string
}

// classifyBody treats the body as JSON when the content type says so or the
// trimmed text starts with '{' or '['. Invalid JSON degrades to text.
func classifyBody(contentType string, body []byte) payload {
	p := payload{raw: body}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return p
	}

	looksJSON := strings.Contains(strings.ToLower(contentType), "application/json") ||
		trimmed[0] == '{' || trimmed[0] == '['
	if looksJSON && gjson.ValidBytes(trimmed) {
		p.json = true
		return p
	}
	p.malformed = looksJSON
	p.text = truncate(string(trimmed), maxTextMessage)
	return p
}

func (p payload) successMessage() string {
	if p.json {
		if m := gjson.GetBytes(p.raw, "message"); m.Type == gjson.String {
			return m.String()
		}
		return ""
	}
	return p.text
}

func (p payload) errorMessage() string {
	if p.json {
		for _, field := range []string{"message", "error", "detail"} {
			if m := gjson.GetBytes(p.raw, field); m.Type == gjson.String && m.String() != "" {
				return m.String()
			}
		}
		return ""
	}
	return p.text
}

// decodeInto fills dst from the body. String targets receive text bodies verbatim;
// struct{} targets ignore the body; other targets are decoded from JSON only.
func decodeInto[T any](dst *T, p payload) error {
	switch d := any(dst).(type) {
	case *struct{}:
		return nil
	case *string:
		if p.json {
			if err := json.Unmarshal(p.raw, d); err == nil {
				return nil
			}
			*d = string(bytes.TrimSpace(p.raw))
			return nil
		}
		*d = string(bytes.TrimSpace(p.raw))
		return nil
	}
	if !p.json {
		return nil
	}
	return json.Unmarshal(p.raw, dst)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// ProbeResult reports server reachability.
type ProbeResult struct {
	Available bool          `json:"available"`
	Status    int           `json:"status,omitempty"`
	Latency   time.Duration `json:"latency"`
}

// Probe sends HEAD to the base URL with a short deadline. Any HTTP answer,
// whatever its status, counts as available.
func (c *Client) Probe(ctx context.Context, timeout time.Duration) Response[ProbeResult] {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ex := c.send(ctx, Request{Method: http.MethodHead, SkipAuth: true, Timeout: timeout})
	r := Response[ProbeResult]{
		Status:    ex.status,
		RequestID: ex.requestID,
		Header:    ex.header,
		Data:      ProbeResult{Status: ex.status, Latency: time.Since(ex.start)},
	}

	if ex.kind != KindNone {
		r.Kind, r.Error = ex.kind, ex.errMsg
		r.Message = c.tr.T(i18n.MsgServerUnavailable)
		c.finish(ctx, ex, r.Kind, r.Error)
		return r
	}

	r.Success = true
	r.Data.Available = true
	r.Message = c.tr.T(i18n.MsgServerAvailable)
	c.finish(ctx, ex, KindNone, "")
	return r
}
