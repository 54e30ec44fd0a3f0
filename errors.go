package adminclient

import "errors"

var (
	// ErrBaseURLRequired is returned when Config.BaseURL is empty.
	ErrBaseURLRequired = errors.New("adminclient: base URL is required")
	// ErrOpenTokenStore is returned when a configured token tier cannot be opened.
	ErrOpenTokenStore = errors.New("adminclient: failed to open token store")
)
