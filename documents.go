package adminclient

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/municipio-ibarra/adminclient/core/httpclient"
	"github.com/municipio-ibarra/adminclient/core/i18n"
	"github.com/municipio-ibarra/adminclient/core/logger"
	"github.com/municipio-ibarra/adminclient/pkg/async"
)

// UserDocuments holds the base64 documents of a user. Errors lists one
// "<label>: <reason>" entry per document that could not be loaded.
type UserDocuments struct {
	Certificate      string   `json:"certificate,omitempty"`
	IdentityDocument string   `json:"identityDocument,omitempty"`
	SignedDocument   string   `json:"signedDocument,omitempty"`
	Errors           []string `json:"errors"`
}

// BusinessDocuments holds the base64 documents of a business.
type BusinessDocuments struct {
	Cedula string   `json:"cedula,omitempty"`
	Logo   string   `json:"logo,omitempty"`
	Errors []string `json:"errors"`
}

// UserCertificate downloads a user's certificate.
func (c *Client) UserCertificate(ctx context.Context, userID ID) httpclient.Response[string] {
	return c.fetchDocument(ctx, "/admin/get-user-certificate", url.Values{"userId": {userID.String()}})
}

// UserIdentityDocument downloads a user's identity document.
func (c *Client) UserIdentityDocument(ctx context.Context, userID ID) httpclient.Response[string] {
	return c.fetchDocument(ctx, "/admin/get-user-identity-document", url.Values{"userId": {userID.String()}})
}

// CurrentUserCertificate downloads the signed certificate of the session user.
func (c *Client) CurrentUserCertificate(ctx context.Context) httpclient.Response[string] {
	return c.fetchDocument(ctx, "/users/get-certificate", nil)
}

// BusinessDocument downloads the cedula or RUC scan of a business.
func (c *Client) BusinessDocument(ctx context.Context, id int64) httpclient.Response[string] {
	return c.fetchDocument(ctx, businessPath(id)+"/cedula-document", nil)
}

// BusinessLogo downloads the logo of a business.
func (c *Client) BusinessLogo(ctx context.Context, id int64) httpclient.Response[string] {
	return c.fetchDocument(ctx, businessPath(id)+"/logo", nil)
}

func (c *Client) fetchDocument(ctx context.Context, endpoint string, query url.Values) httpclient.Response[string] {
	return httpclient.FetchBase64(ctx, c.http, httpclient.Request{
		Method:   http.MethodGet,
		Endpoint: endpoint,
		Query:    query,
	})
}

type documentFetch struct {
	label string
	fetch func(context.Context) httpclient.Response[string]
	dst   *string
}

// AllUserDocuments loads the certificate, identity document and signed document
// concurrently. A failed download does not stop the others.
func (c *Client) AllUserDocuments(ctx context.Context, userID ID) httpclient.Response[UserDocuments] {
	var docs UserDocuments
	r := c.fetchAll(ctx, []documentFetch{
		{"Certificado", func(ctx context.Context) httpclient.Response[string] { return c.UserCertificate(ctx, userID) }, &docs.Certificate},
		{"Documento de identidad", func(ctx context.Context) httpclient.Response[string] { return c.UserIdentityDocument(ctx, userID) }, &docs.IdentityDocument},
		{"Documento firmado", c.CurrentUserCertificate, &docs.SignedDocument},
	})
	docs.Errors = r.Data
	return httpclient.Convert(r, docs)
}

// AllBusinessDocuments loads the cedula scan and logo concurrently.
func (c *Client) AllBusinessDocuments(ctx context.Context, id int64) httpclient.Response[BusinessDocuments] {
	var docs BusinessDocuments
	r := c.fetchAll(ctx, []documentFetch{
		{"Cédula/RUC", func(ctx context.Context) httpclient.Response[string] { return c.BusinessDocument(ctx, id) }, &docs.Cedula},
		{"Logo", func(ctx context.Context) httpclient.Response[string] { return c.BusinessLogo(ctx, id) }, &docs.Logo},
	})
	docs.Errors = r.Data
	return httpclient.Convert(r, docs)
}

// fetchAll runs every fetch, stores successes through dst and returns the error
// lines as Data. The envelope fails only when nothing could be loaded.
func (c *Client) fetchAll(ctx context.Context, fetches []documentFetch) httpclient.Response[[]string] {
	futures := make([]*async.Future[httpclient.Response[string]], len(fetches))
	for i, f := range fetches {
		futures[i] = async.Async(ctx, f.fetch, func(ctx context.Context, fn func(context.Context) httpclient.Response[string]) (httpclient.Response[string], error) {
			return fn(ctx), nil
		})
	}

	errs := []string{}
	loaded := 0
	var (
		failed       bool
		firstFailure httpclient.Response[string]
	)
	for i, res := range async.Settle(futures...) {
		r := res.Value
		if res.Err == nil && r.Success && r.Data != "" {
			*fetches[i].dst = r.Data
			loaded++
			continue
		}

		reason := r.Error
		if res.Err != nil {
			reason = res.Err.Error()
		}
		if reason == "" {
			reason = c.http.T(i18n.MsgUnknownError)
		}
		errs = append(errs, fetches[i].label+": "+reason)
		if !failed {
			failed, firstFailure = true, r
			switch {
			case res.Err != nil:
				firstFailure.Kind = httpclient.KindCanceled
			case firstFailure.Kind == httpclient.KindNone:
				firstFailure.Kind = httpclient.KindHTTP
			}
		}
	}

	c.log.DebugContext(ctx, "documents loaded",
		logger.Action("fetch_documents"),
		logger.Key("loaded", loaded),
		logger.Key("failed", len(errs)),
	)

	switch {
	case len(errs) == 0:
		return httpclient.Response[[]string]{Success: true, Data: errs, Message: c.http.T(i18n.MsgDocumentsLoaded)}
	case loaded > 0:
		return httpclient.Response[[]string]{Success: true, Data: errs, Message: c.http.T(i18n.MsgDocumentsPartial)}
	default:
		return httpclient.Response[[]string]{
			Data:    errs,
			Kind:    firstFailure.Kind,
			Status:  firstFailure.Status,
			Error:   strings.Join(errs, "; "),
			Message: c.http.T(i18n.MsgDocumentsPartial),
		}
	}
}

var base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

// IsValidBase64 reports whether s looks like padded standard base64.
func IsValidBase64(s string) bool {
	return s != "" && len(s)%4 == 0 && base64Pattern.MatchString(s)
}
