package adminclient_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/municipio-ibarra/adminclient"
	"github.com/municipio-ibarra/adminclient/core/httpclient"
)

func TestRejectUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("requires a session", func(t *testing.T) {
		t.Parallel()
		called := false
		c := newClient(t, func(http.ResponseWriter, *http.Request) { called = true })

		res := c.RejectUser(ctx, "15", "documentos ilegibles")
		require.False(t, res.Success)
		assert.Equal(t, httpclient.KindUnauthorized, res.Kind)
		assert.Equal(t, "No hay sesión activa", res.Error)
		assert.False(t, called)
	})

	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		success     bool
		wantData    string
		wantMessage string
		wantError   string
	}{
		{"json confirmation", 200, "application/json", `{"message":"Usuario eliminado","data":"15"}`, true,
			"15", "Usuario eliminado", ""},
		{"text confirmation", 200, "text/plain", "Rechazado", true,
			"Rechazado", "Rechazado", ""},
		{"empty confirmation", 200, "", "", true,
			"Usuario rechazado exitosamente", "Usuario rechazado exitosamente", ""},
		{"already enabled", 400, "application/json", `{}`, false,
			"", "Error en la operación", "El usuario ya está habilitado"},
		{"bad request with message", 400, "application/json", `{"message":"Motivo requerido"}`, false,
			"", "Error en la operación", "Motivo requerido"},
		{"not found", 404, "", "", false,
			"", "Error en la operación", "Usuario no encontrado"},
		{"forbidden", 403, "application/json", `{}`, false,
			"", "Acceso denegado", "No tiene permisos para realizar esta operación."},
		{"server error", 500, "application/json", `{"code":1}`, false,
			"", "Error en la operación", "Error al rechazar usuario"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/admin/reject/15", r.URL.Path)
				assert.Equal(t, "documentos ilegibles", r.URL.Query().Get("reason"))
				assert.NotEmpty(t, r.Header.Get("Authorization"))
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			signIn(t, c)

			res := c.RejectUser(ctx, adminclient.ID("15"), "documentos ilegibles")
			require.Equal(t, tt.success, res.Success)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.wantData, res.Data)
			assert.Equal(t, tt.wantMessage, res.Message)
			assert.Equal(t, tt.wantError, res.Error)
		})
	}
}
