package adminclient_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/municipio-ibarra/adminclient"
	"github.com/municipio-ibarra/adminclient/core/httpclient"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// echoDocuments answers every document request with its own path and query.
func echoDocuments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/pdf")
	_, _ = w.Write([]byte(r.URL.Path + "?" + r.URL.RawQuery))
}

func TestDocumentFetches(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "*/*", r.Header.Get("Accept"))
		echoDocuments(w, r)
	})

	tests := []struct {
		name string
		call func() httpclient.Response[string]
		want string
	}{
		{"user certificate", func() httpclient.Response[string] { return c.UserCertificate(ctx, "21") },
			"/admin/get-user-certificate?userId=21"},
		{"identity document", func() httpclient.Response[string] { return c.UserIdentityDocument(ctx, "21") },
			"/admin/get-user-identity-document?userId=21"},
		{"current certificate", func() httpclient.Response[string] { return c.CurrentUserCertificate(ctx) },
			"/users/get-certificate?"},
		{"business document", func() httpclient.Response[string] { return c.BusinessDocument(ctx, 9) },
			"/business/9/cedula-document?"},
		{"business logo", func() httpclient.Response[string] { return c.BusinessLogo(ctx, 9) },
			"/business/9/logo?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.call()
			require.True(t, res.Success)
			assert.Equal(t, b64(tt.want), res.Data)
			assert.Equal(t, "Documento obtenido exitosamente", res.Message)
			assert.True(t, adminclient.IsValidBase64(res.Data))
		})
	}
}

func TestAllUserDocuments(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("all loaded", func(t *testing.T) {
		t.Parallel()
		c := newClient(t, echoDocuments)

		res := c.AllUserDocuments(ctx, "21")
		require.True(t, res.Success)
		assert.Equal(t, "Documentos cargados", res.Message)
		assert.Equal(t, b64("/admin/get-user-certificate?userId=21"), res.Data.Certificate)
		assert.Equal(t, b64("/admin/get-user-identity-document?userId=21"), res.Data.IdentityDocument)
		assert.Equal(t, b64("/users/get-certificate?"), res.Data.SignedDocument)
		assert.Empty(t, res.Data.Errors)
	})

	t.Run("partial failure", func(t *testing.T) {
		t.Parallel()
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/admin/get-user-identity-document":
				writeJSON(w, http.StatusNotFound, `{"message":"Documento no encontrado"}`)
			case "/users/get-certificate":
				w.WriteHeader(http.StatusOK)
			default:
				echoDocuments(w, r)
			}
		})

		res := c.AllUserDocuments(ctx, "21")
		require.True(t, res.Success)
		assert.Equal(t, "Algunos documentos no pudieron cargarse", res.Message)
		assert.NotEmpty(t, res.Data.Certificate)
		assert.Empty(t, res.Data.IdentityDocument)
		assert.Empty(t, res.Data.SignedDocument)
		assert.Equal(t, []string{
			"Documento de identidad: HTTP 404: Documento no encontrado",
			"Documento firmado: Error desconocido",
		}, res.Data.Errors)
	})

	t.Run("nothing loaded", func(t *testing.T) {
		t.Parallel()
		c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		res := c.AllUserDocuments(ctx, "21")
		require.False(t, res.Success)
		assert.Equal(t, httpclient.KindHTTP, res.Kind)
		assert.Equal(t, http.StatusInternalServerError, res.Status)
		require.Len(t, res.Data.Errors, 3)
		assert.Equal(t, "Certificado: HTTP 500: Internal Server Error", res.Data.Errors[0])
		assert.Contains(t, res.Error, "Documento firmado: ")
	})
}

func TestAllBusinessDocuments(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/business/9/logo" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		echoDocuments(w, r)
	})

	res := c.AllBusinessDocuments(ctx, 9)
	require.True(t, res.Success)
	assert.Equal(t, b64("/business/9/cedula-document?"), res.Data.Cedula)
	assert.Empty(t, res.Data.Logo)
	assert.Equal(t, []string{"Logo: HTTP 404: Not Found"}, res.Data.Errors)
}

func TestAllDocumentsCanceled(t *testing.T) {
	t.Parallel()
	c := newClient(t, echoDocuments)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.AllBusinessDocuments(ctx, 9)
	require.False(t, res.Success)
	assert.Equal(t, httpclient.KindCanceled, res.Kind)
	assert.Len(t, res.Data.Errors, 2)
}

func TestIsValidBase64(t *testing.T) {
	t.Parallel()
	tests := map[string]bool{
		"":             false,
		"QUJD":         true,
		"QUI=":         true,
		"QQ==":         true,
		"QQ=":          false,
		"Q===":         false,
		"QU JD":        false,
		"QUJD\n":       false,
		"SGVsbG8/Kw==": true,
		"SGVsbG8_LQ==": false,
	}
	for in, want := range tests {
		assert.Equal(t, want, adminclient.IsValidBase64(in), "%q", in)
	}
}
