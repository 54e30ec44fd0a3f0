// Package httpclient turns calls to the admin REST API into uniform envelopes.
//
// Every call resolves to a Response: it never panics and never returns an error
// value. Transport problems (timeouts, cancellation, connection failures) produce
// a failure with Status 0; HTTP errors carry the status and the best message
// found in the body (message, error or detail fields, the plain text body, or
// "HTTP <status>: <text>"). A 401 tells the Authenticator to drop its token. 401
// and 403 carry fixed texts from the i18n catalog.
//
//	c, err := httpclient.New("http://34.10.172.54:8080",
//		httpclient.WithAuthenticator(sessions),
//		httpclient.WithLogger(log),
//	)
//
//	res := httpclient.Get[Stats](ctx, c, "/admin/get-dashboard-stats", nil)
//	if !res.Success {
//		return res.Err()
//	}
//
// Bodies are read as text first and treated as JSON when the content type says so
// or the text starts with '{' or '['. Malformed JSON degrades to a text message.
// FetchBase64 returns binary bodies base64 encoded, and Probe checks reachability
// with a HEAD request.
//
// Each call runs under its own deadline; there are no retries.
package httpclient
