package adminclient

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/municipio-ibarra/adminclient/core/httpclient"
	"github.com/municipio-ibarra/adminclient/core/i18n"
	"github.com/municipio-ibarra/adminclient/core/logger"
	"github.com/municipio-ibarra/adminclient/core/session"
)

// LoginRequest carries the admin credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User is an account as returned by the API.
type User struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// LoginResult is the data of a successful login. Token is empty when the server
// authenticated without returning a bearer token.
type LoginResult struct {
	Token       string         `json:"token,omitempty"`
	TokenSource TokenSource    `json:"token_source,omitempty"`
	User        User           `json:"user"`
	Storage     session.Report `json:"-"`
}

// Login authenticates against /auth/login and stores the returned token.
func (c *Client) Login(ctx context.Context, req LoginRequest) httpclient.Response[LoginResult] {
	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		msg := c.http.T(i18n.MsgCredentialsRequired)
		return httpclient.Failure[LoginResult](httpclient.KindInvalidRequest, msg, msg)
	}

	r := httpclient.Do[struct{}](ctx, c.http, httpclient.Request{
		Method:   http.MethodPost,
		Endpoint: "/auth/login",
		Body:     LoginRequest{Username: username, Password: password},
		Timeout:  c.cfg.LoginTimeout,
		SkipAuth: true,
	})

	if !r.Success {
		out := httpclient.Convert(r, LoginResult{})
		switch {
		case r.Kind == httpclient.KindUnauthorized || r.Kind == httpclient.KindForbidden:
			out.Error = c.http.T(i18n.MsgCredentialsInvalid)
			out.Message = out.Error
		case r.Kind == httpclient.KindTimeout:
			out.Message = c.http.T(i18n.MsgLoginTimeout)
		case r.HasStatus():
			out.Message = bodyMessage(r.Raw, "message", "error")
			if out.Message == "" {
				out.Message = c.http.T(i18n.MsgLoginFailed, i18n.M{"status": r.Status})
			}
		}
		c.log.WarnContext(ctx, "login failed",
			logger.Action("login"),
			logger.StatusCode(r.Status),
			logger.Key("kind", string(r.Kind)),
			logger.RequestID(r.RequestID),
		)
		return out
	}

	found := findToken(r.Raw, r.Header, c.cfg.TokenPrimaryField)
	res := LoginResult{
		User: extractUser(r.Raw, username, c.cfg.EmailDomain, time.Now()),
	}
	switch {
	case found.value == "":
		c.log.WarnContext(ctx, "login succeeded without a bearer token",
			logger.Action("login"),
			logger.RequestID(r.RequestID),
		)
	case found.source == SourceScan:
		c.log.WarnContext(ctx, "login token found by fallback scan",
			logger.Action("login"),
			logger.Result("degraded"),
			logger.Path(found.where),
		)
	default:
		c.log.DebugContext(ctx, "login token found",
			logger.Action("login"),
			logger.Key("source", string(found.source)),
			logger.Path(found.where),
		)
	}
	if found.value != "" {
		res.Token = found.value
		res.TokenSource = found.source
		res.Storage = c.session.SetToken(ctx, found.value)
	}

	out := httpclient.Convert(r, res)
	out.Message = bodyMessage(r.Raw, "message")
	if out.Message == "" {
		out.Message = c.http.T(i18n.MsgLoginSuccess)
	}
	c.log.InfoContext(ctx, "login succeeded",
		logger.Action("login"),
		logger.Key("user", res.User.Username),
		logger.TokenPreview(res.Token),
	)
	return out
}

// Logout notifies the server on a best-effort basis and always clears the local
// token. The envelope is successful even when the server call fails.
func (c *Client) Logout(ctx context.Context) httpclient.Response[session.Report] {
	var r httpclient.Response[struct{}]
	if _, ok := c.session.GetToken(ctx); ok {
		r = httpclient.Post[struct{}](ctx, c.http, "/auth/logout", nil)
		if !r.Success {
			c.log.DebugContext(ctx, "server logout failed",
				logger.Action("logout"),
				logger.StatusCode(r.Status),
				logger.Key("kind", string(r.Kind)),
			)
		}
	}

	rep := c.session.ClearToken(ctx)
	out := httpclient.Response[session.Report]{
		Success:   true,
		Data:      rep,
		Status:    r.Status,
		RequestID: r.RequestID,
		Message:   c.http.T(i18n.MsgLogoutSuccess),
	}
	if !r.Success {
		out.Message = c.http.T(i18n.MsgLogoutLocal)
	}
	return out
}

// SetToken stores token in memory and every storage tier. An empty token clears.
func (c *Client) SetToken(ctx context.Context, token string) session.Report {
	return c.session.SetToken(ctx, token)
}

// ClearToken removes the token from memory and every storage tier.
func (c *Client) ClearToken(ctx context.Context) session.Report {
	return c.session.ClearToken(ctx)
}

// CurrentToken returns the stored token, loading it from storage if needed.
func (c *Client) CurrentToken(ctx context.Context) (string, bool) {
	return c.session.CurrentToken(ctx)
}

// IsAuthenticated reports whether a non-expired token is held. An expired token
// is cleared as a side effect.
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	return c.session.IsAuthenticated(ctx)
}

// IsTokenExpired reports whether the token is absent, unreadable or past exp.
func (c *Client) IsTokenExpired(ctx context.Context) bool {
	return c.session.IsTokenExpired(ctx)
}

// DebugInfo describes the session state without exposing the token.
func (c *Client) DebugInfo(ctx context.Context) session.Info {
	return c.session.Snapshot(ctx)
}

// CurrentUser fetches the signed-in account.
func (c *Client) CurrentUser(ctx context.Context) httpclient.Response[User] {
	return httpclient.Get[User](ctx, c.http, "/users/me", nil)
}
