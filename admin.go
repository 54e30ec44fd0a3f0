package adminclient

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/municipio-ibarra/adminclient/core/httpclient"
	"github.com/municipio-ibarra/adminclient/core/i18n"
	"github.com/municipio-ibarra/adminclient/core/logger"
)

// RejectUser rejects a user registration with a reason. Data holds the server's
// confirmation text. A session is required before any request is sent.
func (c *Client) RejectUser(ctx context.Context, id ID, reason string) httpclient.Response[string] {
	if _, ok := c.session.GetToken(ctx); !ok {
		msg := c.http.T(i18n.MsgNotAuthenticated)
		return httpclient.Failure[string](httpclient.KindUnauthorized, msg, msg)
	}

	r := httpclient.Do[struct{}](ctx, c.http, httpclient.Request{
		Method:   http.MethodDelete,
		Endpoint: "/admin/reject/" + escapeID(id),
		Query:    url.Values{"reason": {reason}},
	})
	out := httpclient.Convert(r, "")
	msg := responseText(r.Raw, "message")

	if r.Success {
		rejected := c.http.T(i18n.MsgUserRejected)
		out.Data = firstNonEmpty(responseText(r.Raw, "data"), msg, rejected)
		out.Message = firstNonEmpty(msg, rejected)
		c.log.InfoContext(ctx, "user rejected",
			logger.Action("reject_user"),
			logger.Key("user_id", id.String()),
		)
		return out
	}

	switch {
	case !r.HasStatus():
	case r.Status == http.StatusBadRequest:
		out.Error = firstNonEmpty(msg, c.http.T(i18n.MsgUserEnabled))
	case r.Status == http.StatusNotFound:
		out.Error = firstNonEmpty(msg, c.http.T(i18n.MsgUserNotFound))
	case r.Kind == httpclient.KindHTTP:
		out.Error = firstNonEmpty(msg, responseText(r.Raw, "error"), c.http.T(i18n.MsgRejectUserFailed))
	}
	c.log.WarnContext(ctx, "user rejection failed",
		logger.Action("reject_user"),
		logger.Key("user_id", id.String()),
		logger.StatusCode(r.Status),
	)
	return out
}

// responseText reads field from a JSON object body, or returns a non-JSON body
// as is.
func responseText(body []byte, field string) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	if !gjson.ValidBytes(trimmed) {
		return string(trimmed)
	}
	if v := gjson.GetBytes(trimmed, field); v.Type == gjson.String {
		return v.Str
	}
	return ""
}
