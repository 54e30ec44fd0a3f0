package session

import (
	"errors"
	"fmt"
)

// TierResult is the outcome of one persistence call on one tier.
type TierResult struct {
	Tier string
	Err  error
}

// Report collects per-tier outcomes of SetToken or ClearToken. The in-memory token
// is always updated regardless of what the report says.
type Report struct {
	Results []TierResult
}

// Degraded reports whether any tier failed.
func (r Report) Degraded() bool {
	for _, res := range r.Results {
		if res.Err != nil {
			return true
		}
	}
	return false
}

// Persisted reports whether at least one tier succeeded.
func (r Report) Persisted() bool {
	for _, res := range r.Results {
		if res.Err == nil {
			return true
		}
	}
	return false
}

// Err joins the failures, each prefixed with its tier name. Nil when nothing failed.
func (r Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Tier, res.Err))
		}
	}
	return errors.Join(errs...)
}
