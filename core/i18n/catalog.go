package i18n

import "sync"

// ClientNamespace holds the fixed user-facing texts of the API client.
const ClientNamespace = "client"

// Message keys in ClientNamespace.
const (
	MsgSuccess             = "success"
	MsgUnauthorizedError   = "unauthorized.error"
	MsgUnauthorized        = "unauthorized.message"
	MsgForbiddenError      = "forbidden.error"
	MsgForbidden           = "forbidden.message"
	MsgTimeoutError        = "timeout.error"
	MsgTimeout             = "timeout.message"
	MsgCanceledError       = "canceled.error"
	MsgCanceled            = "canceled.message"
	MsgNetworkError        = "network.error"
	MsgNetwork             = "network.message"
	MsgInvalidRequestError = "invalid_request.error"
	MsgInvalidRequest      = "invalid_request.message"
	MsgRequestFailed       = "request_failed"
	MsgReadError           = "body.read_error"
	MsgHTTPStatus          = "http_status"

	MsgCredentialsRequired = "login.credentials_required"
	MsgCredentialsInvalid  = "login.credentials_invalid"
	MsgLoginSuccess        = "login.success"
	MsgLoginTimeout        = "login.timeout"
	MsgLoginFailed         = "login.failed"
	MsgLogoutSuccess       = "logout.success"
	MsgLogoutLocal         = "logout.local"
	MsgNotAuthenticated    = "session.not_authenticated"

	MsgServerAvailable   = "server.available"
	MsgServerUnavailable = "server.unavailable"
	MsgDocumentFetched   = "document.fetched"
	MsgDocumentsLoaded   = "document.all_loaded"
	MsgDocumentsPartial  = "document.partial"
	MsgInvalidDocType    = "document.invalid_type"
	MsgUserEnabled       = "user.already_enabled"
	MsgUserNotFound      = "user.not_found"
	MsgUserRejected      = "user.rejected"
	MsgRejectUserFailed  = "user.reject_failed"
	MsgUploadSuccess     = "document.uploaded"
	MsgUploadFailed      = "document.upload_failed"
	MsgUnknownError      = "unknown_error"
)

var spanish = map[string]any{
	"success": "Operación exitosa",
	"unauthorized": map[string]any{
		"error":   "Sesión expirada. Inicie sesión nuevamente.",
		"message": "No autorizado",
	},
	"forbidden": map[string]any{
		"error":   "No tiene permisos para realizar esta operación.",
		"message": "Acceso denegado",
	},
	"timeout": map[string]any{
		"error":   "La petición tardó demasiado tiempo. Verifique su conexión.",
		"message": "Timeout de conexión",
	},
	"canceled": map[string]any{
		"error":   "La petición fue cancelada.",
		"message": "Petición cancelada",
	},
	"network": map[string]any{
		"error":   "Error de red. Verifique su conexión a internet.",
		"message": "Error de conexión",
	},
	"invalid_request": map[string]any{
		"error":   "No se pudo construir la petición: %{details}",
		"message": "Petición inválida",
	},
	"request_failed": "Error en la operación",
	"body": map[string]any{
		"read_error": "Error al leer la respuesta del servidor",
	},
	"http_status": "HTTP %{status}: %{status_text}",
	"login": map[string]any{
		"credentials_required": "Usuario y contraseña son requeridos",
		"credentials_invalid":  "Credenciales incorrectas. Verifique su usuario y contraseña.",
		"success":              "Autenticación exitosa",
		"timeout":              "Timeout de conexión. Intente nuevamente.",
		"failed":               "Error HTTP %{status}",
	},
	"logout": map[string]any{
		"success": "Sesión cerrada exitosamente",
		"local":   "Sesión cerrada localmente",
	},
	"session": map[string]any{
		"not_authenticated": "No hay sesión activa",
	},
	"server": map[string]any{
		"available":   "Servidor disponible",
		"unavailable": "Servidor no disponible",
	},
	"document": map[string]any{
		"fetched":       "Documento obtenido exitosamente",
		"all_loaded":    "Documentos cargados",
		"partial":       "Algunos documentos no pudieron cargarse",
		"invalid_type":  "Tipo de documento inválido: %{type}",
		"uploaded":      "Documento subido exitosamente",
		"upload_failed": "Error subiendo documento",
	},
	"user": map[string]any{
		"already_enabled": "El usuario ya está habilitado",
		"not_found":       "Usuario no encontrado",
		"rejected":        "Usuario rechazado exitosamente",
		"reject_failed":   "Error al rechazar usuario",
	},
	"unknown_error": "Error desconocido",
}

var english = map[string]any{
	"success": "Operation completed",
	"unauthorized": map[string]any{
		"error":   "Session expired. Please sign in again.",
		"message": "Unauthorized",
	},
	"forbidden": map[string]any{
		"error":   "You do not have permission to perform this operation.",
		"message": "Access denied",
	},
	"timeout": map[string]any{
		"error":   "The request took too long. Check your connection.",
		"message": "Connection timeout",
	},
	"canceled": map[string]any{
		"error":   "The request was canceled.",
		"message": "Request canceled",
	},
	"network": map[string]any{
		"error":   "Network error. Check your internet connection.",
		"message": "Connection error",
	},
	"invalid_request": map[string]any{
		"error":   "The request could not be built: %{details}",
		"message": "Invalid request",
	},
	"request_failed": "Operation failed",
	"body": map[string]any{
		"read_error": "Failed to read the server response",
	},
	"http_status": "HTTP %{status}: %{status_text}",
	"login": map[string]any{
		"credentials_required": "Username and password are required",
		"credentials_invalid":  "Invalid credentials. Check your username and password.",
		"success":              "Signed in",
		"timeout":              "Connection timeout. Try again.",
		"failed":               "HTTP error %{status}",
	},
	"logout": map[string]any{
		"success": "Signed out",
		"local":   "Signed out locally",
	},
	"session": map[string]any{
		"not_authenticated": "No active session",
	},
	"server": map[string]any{
		"available":   "Server available",
		"unavailable": "Server unavailable",
	},
	"document": map[string]any{
		"fetched":       "Document retrieved",
		"all_loaded":    "Documents loaded",
		"partial":       "Some documents could not be loaded",
		"invalid_type":  "Invalid document type: %{type}",
		"uploaded":      "Document uploaded",
		"upload_failed": "Document upload failed",
	},
	"user": map[string]any{
		"already_enabled": "The user is already enabled",
		"not_found":       "User not found",
		"rejected":        "User rejected",
		"reject_failed":   "Failed to reject user",
	},
	"unknown_error": "Unknown error",
}

var (
	catalogOnce sync.Once
	catalog     *I18n
)

// Catalog returns the bundled client texts (Spanish default, English).
func Catalog() *I18n {
	catalogOnce.Do(func() {
		c, err := New(
			WithDefaultLanguage("es"),
			WithTranslations("es", ClientNamespace, spanish),
			WithTranslations("en", ClientNamespace, english),
		)
		if err != nil {
			panic(err)
		}
		catalog = c
	})
	return catalog
}

// ClientTranslator returns a translator over the bundled catalog for lang.
func ClientTranslator(lang string) *Translator {
	return NewTranslator(Catalog(), lang, ClientNamespace)
}
