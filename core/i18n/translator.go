package i18n

// Translator binds an I18n instance to a language and namespace.
type Translator struct {
	i18n      *I18n
	language  string
	namespace string
}

// NewTranslator creates a Translator. The requested language is matched against the
// configured languages, so regional tags like "es-EC" resolve to "es".
func NewTranslator(i18n *I18n, language, namespace string) *Translator {
	if i18n == nil {
		panic("i18n: translations are not provided")
	}
	return &Translator{
		i18n:      i18n,
		language:  i18n.Match(language),
		namespace: namespace,
	}
}

// T translates key within the translator's language and namespace.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.i18n.T(t.language, t.namespace, key, placeholders...)
}

// Language returns the resolved language.
func (t *Translator) Language() string {
	return t.language
}

// Namespace returns the bound namespace.
func (t *Translator) Namespace() string {
	return t.namespace
}
