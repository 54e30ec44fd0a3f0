package httpclient

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/municipio-ibarra/adminclient/core/i18n"
	"github.com/municipio-ibarra/adminclient/core/logger"
)

// exchange is the raw outcome of one round trip. The body is fully read and the
// connection released before it is returned.
type exchange struct {
	method    string
	path      string
	requestID string
	start     time.Time

	// authorized is set when a bearer token was attached.
	authorized bool

	status     int
	statusText string
	header     http.Header
	body       []byte

	// kind is set when no usable response was obtained.
	kind   Kind
	errMsg string
	msg    string
	err    error
}

func (e *exchange) ok() bool {
	return e.kind == KindNone && e.status >= 200 && e.status < 300
}

// send builds and executes the request under its own deadline.
func (c *Client) send(ctx context.Context, req Request) *exchange {
	ex := &exchange{
		method:    req.Method,
		path:      req.Endpoint,
		requestID: c.newID(),
		start:     time.Now(),
	}
	if ex.method == "" {
		ex.method = http.MethodGet
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := c.build(ctx, ex, req)
	if err != nil {
		ex.kind = KindInvalidRequest
		ex.err = err
		ex.errMsg = c.tr.T(i18n.MsgInvalidRequestError, i18n.M{"details": err.Error()})
		ex.msg = c.tr.T(i18n.MsgInvalidRequest)
		return ex
	}

	ex.authorized = httpReq.Header.Get("Authorization") != ""
	c.log.DebugContext(ctx, "request started",
		logger.Method(ex.method),
		logger.Path(ex.path),
		logger.RequestID(ex.requestID),
		slog.Bool("authorized", ex.authorized),
	)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctx.Err() == nil {
				// Wait refuses up front when the reservation would pass the deadline.
				err = errors.Join(context.DeadlineExceeded, err)
			}
			c.transportFailure(ctx, ex, err)
			return ex
		}
	}

	c.metrics.inflight.Inc()
	defer c.metrics.inflight.Dec()

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.transportFailure(ctx, ex, err)
		return ex
	}
	defer resp.Body.Close()

	ex.status = resp.StatusCode
	ex.statusText = http.StatusText(resp.StatusCode)
	ex.header = resp.Header

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err == nil && int64(len(body)) > c.maxBody {
		err = ErrBodyTooLarge
	}
	if err != nil {
		// A body that never arrived whole is not a usable response.
		ex.status, ex.statusText = 0, ""
		ex.err = err
		ex.errMsg = c.tr.T(i18n.MsgReadError)
		ex.msg = ex.errMsg
		ex.kind = classifyTransport(ctx, err)
		if ex.kind == KindNetwork {
			ex.msg = c.tr.T(i18n.MsgNetwork)
		}
		return ex
	}
	ex.body = body
	return ex
}

func (c *Client) build(ctx context.Context, ex *exchange, req Request) (*http.Request, error) {
	u, err := c.resolve(req.Endpoint, req.Query)
	if err != nil {
		return nil, errors.Join(ErrBuildRequest, err)
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, errors.Join(ErrEncodeBody, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, ex.method, u.String(), body)
	if err != nil {
		return nil, errors.Join(ErrBuildRequest, err)
	}

	for k, vs := range c.headers {
		httpReq.Header[k] = append([]string(nil), vs...)
	}
	for k, vs := range req.Header {
		httpReq.Header.Del(k)
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if !req.SkipAuth && c.auth != nil {
		if tok, ok := c.auth.GetToken(ctx); ok {
			httpReq.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	httpReq.Header.Set(RequestIDHeader, ex.requestID)
	return httpReq, nil
}

func (c *Client) transportFailure(ctx context.Context, ex *exchange, err error) {
	ex.err = err
	ex.kind = classifyTransport(ctx, err)
	switch ex.kind {
	case KindTimeout:
		ex.errMsg = c.tr.T(i18n.MsgTimeoutError)
		ex.msg = c.tr.T(i18n.MsgTimeout)
	case KindCanceled:
		ex.errMsg = c.tr.T(i18n.MsgCanceledError)
		ex.msg = c.tr.T(i18n.MsgCanceled)
	default:
		ex.errMsg = c.tr.T(i18n.MsgNetworkError)
		ex.msg = c.tr.T(i18n.MsgNetwork)
	}
}

// classifyTransport maps a round-trip error to a Kind.
func classifyTransport(ctx context.Context, err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}

func (c *Client) finish(ctx context.Context, ex *exchange, kind Kind, errText string) {
	elapsed := time.Since(ex.start)
	c.metrics.observe(ex.method, kind, elapsed)

	attrs := []slog.Attr{
		logger.Method(ex.method),
		logger.Path(ex.path),
		logger.RequestID(ex.requestID),
		logger.StatusCode(ex.status),
		logger.Latency(elapsed),
	}
	if kind == KindNone {
		c.log.LogAttrs(ctx, slog.LevelDebug, "request completed", attrs...)
		return
	}
	attrs = append(attrs,
		logger.Key("kind", string(kind)),
		logger.Key("message", errText),
		logger.Error(ex.err),
	)
	c.log.LogAttrs(ctx, slog.LevelWarn, "request failed", attrs...)
}
