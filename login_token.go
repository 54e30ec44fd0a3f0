package adminclient

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// minTokenLength rejects values too short to be a credential.
const minTokenLength = 11

// maxScanDepth bounds the last-resort recursive token scan.
const maxScanDepth = 3

var (
	alternateTokenFields = []string{
		"token", "accessToken", "access_token", "authToken",
		"bearerToken", "sessionToken", "apiToken", "authenticationToken",
	}
	tokenHeaders = []string{
		"Authorization", "X-Auth-Token", "Access-Token",
		"X-Access-Token", "Bearer", "X-JWT-Token",
	}

	bearerPrefix = regexp.MustCompile(`(?i)^Bearer\s+`)
)

// TokenSource tells where a login token was found.
type TokenSource string

const (
	SourceNone   TokenSource = ""
	SourceField  TokenSource = "field"
	SourceHeader TokenSource = "header"
	SourceScan   TokenSource = "scan"
)

type foundToken struct {
	value  string
	source TokenSource
	// JSON path or header name.
	where string
}

// findToken locates the bearer token in a login response. Root fields win over
// response headers, headers over fields nested under "data", and the recursive
// scan runs only when all of them miss.
func findToken(body []byte, header http.Header, primary string) foundToken {
	fields := make([]string, 0, len(alternateTokenFields)+1)
	if primary != "" {
		fields = append(fields, primary)
	}
	for _, f := range alternateTokenFields {
		if f != primary {
			fields = append(fields, f)
		}
	}

	valid := gjson.ValidBytes(body)
	if valid {
		if t, ok := fieldToken(body, "", fields); ok {
			return t
		}
	}

	for _, name := range tokenHeaders {
		if v := header.Get(name); v != "" {
			return checked(foundToken{
				value:  strings.TrimSpace(bearerPrefix.ReplaceAllString(v, "")),
				source: SourceHeader,
				where:  name,
			})
		}
	}

	if valid {
		if t, ok := fieldToken(body, "data.", fields); ok {
			return t
		}
		if root := gjson.ParseBytes(body); root.IsObject() {
			if path, v, ok := scanForToken(root, "", 0); ok {
				return checked(foundToken{value: v, source: SourceScan, where: path})
			}
		}
	}
	return foundToken{}
}

// fieldToken returns the first non-empty string among fields under prefix.
func fieldToken(body []byte, prefix string, fields []string) (foundToken, bool) {
	for _, f := range fields {
		if v := gjson.GetBytes(body, prefix+gjson.Escape(f)); v.Type == gjson.String && v.Str != "" {
			return checked(foundToken{value: v.Str, source: SourceField, where: prefix + f}), true
		}
	}
	return foundToken{}, false
}

func checked(t foundToken) foundToken {
	if len(t.value) < minTokenLength {
		return foundToken{}
	}
	return t
}

// scanForToken walks obj depth-first for a string field whose key mentions a
// token. Arrays are not descended into.
func scanForToken(obj gjson.Result, prefix string, depth int) (path, value string, ok bool) {
	if depth > maxScanDepth {
		return "", "", false
	}
	obj.ForEach(func(k, v gjson.Result) bool {
		key := strings.ToLower(k.Str)
		switch {
		case v.Type == gjson.String && (strings.Contains(key, "token") || strings.Contains(key, "jwt")):
			path, value, ok = prefix+k.Str, v.Str, true
		case v.IsObject():
			path, value, ok = scanForToken(v, prefix+k.Str+".", depth+1)
		}
		return !ok
	})
	return path, value, ok
}

// extractUser builds the signed-in user from "user", "userData" or the root
// object, filling gaps from the credentials.
func extractUser(body []byte, username, emailDomain string, now time.Time) User {
	src := gjson.Result{}
	if gjson.ValidBytes(body) {
		root := gjson.ParseBytes(body)
		switch {
		case root.Get("user").IsObject():
			src = root.Get("user")
		case root.Get("userData").IsObject():
			src = root.Get("userData")
		case root.IsObject():
			src = root
		}
	}

	u := User{
		ID:       ID(firstString(src, "id", "userId")),
		Username: firstString(src, "username"),
		Email:    firstString(src, "email"),
		Role:     firstString(src, "role"),
	}
	if u.ID == "" {
		u.ID = ID(strconv.FormatInt(now.UnixMilli(), 10))
	}
	if u.Username == "" {
		u.Username = username
	}
	if u.Email == "" {
		u.Email = username + "@" + emailDomain
	}
	if u.Role == "" {
		u.Role = "user"
	}
	return u
}

// firstString returns the first non-empty string or number under keys.
func firstString(obj gjson.Result, keys ...string) string {
	if !obj.Exists() {
		return ""
	}
	for _, k := range keys {
		v := obj.Get(gjson.Escape(k))
		if (v.Type == gjson.String || v.Type == gjson.Number) && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

// bodyMessage reads a string "message" (or "error") field from a JSON body.
func bodyMessage(body []byte, fields ...string) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, f := range fields {
		if v := gjson.GetBytes(body, f); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}
