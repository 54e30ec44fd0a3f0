package i18n

// M maps placeholder names to their values.
type M map[string]any
