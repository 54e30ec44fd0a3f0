package i18n

import (
	"errors"
	"fmt"
	"maps"

	"golang.org/x/text/language"
)

// DefaultLang is the fallback language when none is configured.
const DefaultLang = "es"

var (
	// ErrEmptyLanguage is returned when an option receives an empty language code.
	ErrEmptyLanguage = errors.New("i18n: language cannot be empty")
	// ErrEmptyNamespace is returned when translations are registered without a namespace.
	ErrEmptyNamespace = errors.New("i18n: namespace cannot be empty")
	// ErrInvalidLanguage is returned when a language code is not a valid BCP 47 tag.
	ErrInvalidLanguage = errors.New("i18n: invalid language tag")
)

// I18n is an immutable translation table. Safe for concurrent use.
type I18n struct {
	// Key format: "lang:namespace:key.path"
	translations map[string]string

	defaultLang string
	languages   []string
	matcher     language.Matcher

	missingKeyHandler func(lang, namespace, key string)
}

// Option configures the I18n instance during construction.
type Option func(*I18n) error

// New creates an I18n instance. All configuration happens here.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		translations: make(map[string]string),
		defaultLang:  DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	i.languages = i.buildLanguagesList()

	tags := make([]language.Tag, 0, len(i.languages))
	for _, l := range i.languages {
		tag, err := language.Parse(l)
		if err != nil {
			return nil, errors.Join(ErrInvalidLanguage, err)
		}
		tags = append(tags, tag)
	}
	i.matcher = language.NewMatcher(tags)

	return i, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		i.defaultLang = lang
		return nil
	}
}

// WithMissingKeyHandler registers a callback for keys missing in every language.
func WithMissingKeyHandler(handler func(lang, namespace, key string)) Option {
	return func(i *I18n) error {
		i.missingKeyHandler = handler
		return nil
	}
}

// WithTranslations loads a (possibly nested) translation map for one language and
// namespace. Nested keys are flattened with dots.
func WithTranslations(lang, namespace string, translations map[string]any) Option {
	return func(i *I18n) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if namespace == "" {
			return ErrEmptyNamespace
		}
		for key, value := range flattenTranslations(translations, "") {
			i.translations[buildKey(lang, namespace, key)] = value
		}
		if !contains(i.languages, lang) {
			i.languages = append(i.languages, lang)
		}
		return nil
	}
}

// T returns the translation for key, falling back to the default language and
// finally to the key itself.
func (i *I18n) T(lang, namespace, key string, placeholders ...M) string {
	if translation, ok := i.translations[buildKey(lang, namespace, key)]; ok {
		return replacePlaceholdersWithMerge(translation, placeholders...)
	}

	if lang != i.defaultLang {
		if translation, ok := i.translations[buildKey(i.defaultLang, namespace, key)]; ok {
			return replacePlaceholdersWithMerge(translation, placeholders...)
		}
	}

	if i.missingKeyHandler != nil {
		i.missingKeyHandler(lang, namespace, key)
	}
	return key
}

// Match resolves a requested language (e.g. "es-EC", "en-US") to the closest
// configured one. Unknown or empty input resolves to the default language.
func (i *I18n) Match(requested string) string {
	if requested == "" {
		return i.defaultLang
	}
	tag, err := language.Parse(requested)
	if err != nil {
		return i.defaultLang
	}
	_, idx, conf := i.matcher.Match(tag)
	if conf == language.No {
		return i.defaultLang
	}
	return i.languages[idx]
}

// Languages returns the configured languages, default first.
func (i *I18n) Languages() []string {
	return i.languages
}

// DefaultLanguage returns the fallback language.
func (i *I18n) DefaultLanguage() string {
	return i.defaultLang
}

func (i *I18n) buildLanguagesList() []string {
	out := []string{i.defaultLang}
	for _, l := range i.languages {
		if l != i.defaultLang {
			out = append(out, l)
		}
	}
	return out
}

func buildKey(lang, namespace, key string) string {
	return lang + ":" + namespace + ":" + key
}

func flattenTranslations(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenTranslations(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		default:
			result[fullKey] = fmt.Sprintf("%v", v)
		}
	}
	return result
}

func replacePlaceholdersWithMerge(template string, placeholders ...M) string {
	if len(placeholders) == 0 {
		return template
	}
	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}
	return ReplacePlaceholders(template, merged)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
