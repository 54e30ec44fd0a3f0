// Package i18n holds the user-facing texts produced by the API client.
//
// Translations are registered at construction time and flattened into
// "lang:namespace:key" entries, so an I18n value is immutable and safe for
// concurrent use. Lookups fall back to the default language and finally to the
// key itself.
//
//	tr := i18n.ClientTranslator("es-EC")
//	tr.T(i18n.MsgHTTPStatus, i18n.M{"status": 502, "status_text": "Bad Gateway"})
//	// "HTTP 502: Bad Gateway"
//
// Catalog bundles the Spanish texts shown by the municipal dashboard together with
// an English rendition. Requested languages are matched with
// golang.org/x/text/language, so regional tags resolve to the closest bundle.
package i18n
