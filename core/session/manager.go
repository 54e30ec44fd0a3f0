package session

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/municipio-ibarra/adminclient/core/logger"
)

// Manager owns the client's bearer token. The in-memory value is authoritative;
// storage tiers only let the token survive restarts.
type Manager struct {
	mu    sync.RWMutex
	token string
	// gen changes on every Set/Clear so a storage probe that raced with either
	// does not overwrite the newer state.
	gen uint64

	keys       Keys
	tiers      []Tier
	persistTTL time.Duration
	leeway     time.Duration
	log        *slog.Logger
	now        func() time.Time
}

// NewManager creates a token manager. Without tiers the token lives only in memory.
func NewManager(opts ...Option) (*Manager, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Keys.Canonical == "" {
		return nil, ErrEmptyKey
	}
	for _, t := range cfg.Tiers {
		if t.Store == nil {
			return nil, errors.Join(ErrNilStore, errors.New(t.Name))
		}
	}

	tiers := slices.Clone(cfg.Tiers)
	slices.SortStableFunc(tiers, func(a, b Tier) int {
		return int(a.Lifetime) - int(b.Lifetime)
	})

	return &Manager{
		keys:       cfg.Keys,
		tiers:      tiers,
		persistTTL: cfg.PersistTTL,
		leeway:     cfg.ExpiryLeeway,
		log:        cfg.Logger.With(logger.Component("session")),
		now:        cfg.Now,
	}, nil
}

// GetToken returns the current token. When memory is empty the tiers are probed,
// short-lived first, each under the canonical key and then the legacy aliases.
// The first hit is cached in memory. A hit under a legacy alias is migrated to the
// canonical key in every tier.
func (m *Manager) GetToken(ctx context.Context) (string, bool) {
	m.mu.RLock()
	tok, gen := m.token, m.gen
	m.mu.RUnlock()
	if tok != "" {
		return tok, true
	}

	tok, key, tier, ok := m.probe(ctx)
	if !ok {
		return "", false
	}

	m.mu.Lock()
	if m.gen != gen {
		// Set or Clear happened meanwhile; their outcome wins.
		tok = m.token
		m.mu.Unlock()
		return tok, tok != ""
	}
	m.token = tok
	m.mu.Unlock()

	m.log.DebugContext(ctx, "token restored from storage",
		logger.Tier(tier),
		logger.Key("key", key),
		logger.TokenPreview(tok),
	)

	if key != m.keys.Canonical {
		m.migrateLegacy(ctx, tok)
	}
	return tok, true
}

// CurrentToken is an alias of GetToken kept for call sites that only inspect state.
func (m *Manager) CurrentToken(ctx context.Context) (string, bool) {
	return m.GetToken(ctx)
}

// SetToken makes token current and writes it under the canonical key into every
// tier. The in-memory value is updated first, so GetToken reflects it even when
// every tier fails. An empty token clears the session.
func (m *Manager) SetToken(ctx context.Context, token string) Report {
	if token == "" {
		return m.ClearToken(ctx)
	}

	m.mu.Lock()
	m.token = token
	m.gen++
	m.mu.Unlock()

	rep := m.persist(ctx, token)
	m.logReport(ctx, "token saved", rep, logger.TokenPreview(token))
	return rep
}

// ClearToken forgets the token in memory and deletes the canonical key and every
// legacy alias from every tier.
func (m *Manager) ClearToken(ctx context.Context) Report {
	m.mu.Lock()
	m.token = ""
	m.gen++
	m.mu.Unlock()

	rep := Report{Results: make([]TierResult, 0, len(m.tiers))}
	for _, t := range m.tiers {
		var errs []error
		for _, key := range m.keys.all() {
			if err := t.Store.Delete(ctx, key); err != nil {
				errs = append(errs, err)
			}
		}
		var err error
		if len(errs) > 0 {
			err = errors.Join(append([]error{ErrClearToken}, errs...)...)
		}
		rep.Results = append(rep.Results, TierResult{Tier: t.Name, Err: err})
	}

	m.logReport(ctx, "token cleared", rep)
	return rep
}

// Invalidate clears the token after the server rejected it.
func (m *Manager) Invalidate(ctx context.Context) {
	m.log.InfoContext(ctx, "token invalidated by server")
	m.ClearToken(ctx)
}

// IsAuthenticated reports whether a non-expired token is present. An expired token
// is cleared as a side effect.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	tok, ok := m.GetToken(ctx)
	if !ok {
		return false
	}
	if TokenExpired(tok, m.now(), m.leeway) {
		m.log.InfoContext(ctx, "expired token discarded", logger.TokenPreview(tok))
		m.ClearToken(ctx)
		return false
	}
	return true
}

// IsTokenExpired reports whether the current token is expired. An absent token
// counts as expired. Unlike IsAuthenticated it never clears anything.
func (m *Manager) IsTokenExpired(ctx context.Context) bool {
	tok, ok := m.GetToken(ctx)
	if !ok {
		return true
	}
	return TokenExpired(tok, m.now(), m.leeway)
}

// Info describes the session for diagnostics. It never carries the full token.
type Info struct {
	HasToken  bool      `json:"has_token"`
	Preview   string    `json:"token_preview,omitempty"`
	Expired   bool      `json:"expired"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
	Tiers     []string  `json:"tiers"`
}

// Snapshot returns diagnostic information about the current session.
func (m *Manager) Snapshot(ctx context.Context) Info {
	info := Info{Tiers: make([]string, 0, len(m.tiers))}
	for _, t := range m.tiers {
		info.Tiers = append(info.Tiers, t.Name+" ("+t.Lifetime.String()+")")
	}

	tok, ok := m.GetToken(ctx)
	if !ok {
		info.Expired = true
		return info
	}
	info.HasToken = true
	info.Preview = logger.Preview(tok)
	if exp, err := ParseExpiry(tok); err == nil {
		info.ExpiresAt = exp
	}
	info.Expired = TokenExpired(tok, m.now(), m.leeway)
	return info
}

func (m *Manager) probe(ctx context.Context) (tok, key, tier string, ok bool) {
	for _, t := range m.tiers {
		for _, k := range m.keys.all() {
			v, found, err := t.Store.Get(ctx, k)
			if err != nil {
				m.log.WarnContext(ctx, "token tier unavailable",
					logger.Tier(t.Name),
					logger.Error(err),
				)
				break
			}
			if found && v != "" {
				return v, k, t.Name, true
			}
		}
	}
	return "", "", "", false
}

func (m *Manager) persist(ctx context.Context, token string) Report {
	expiresAt := m.now().Add(m.persistTTL)
	if exp, err := ParseExpiry(token); err == nil && exp.After(m.now()) {
		expiresAt = exp
	}

	rep := Report{Results: make([]TierResult, 0, len(m.tiers))}
	for _, t := range m.tiers {
		var err error
		if serr := t.Store.Set(ctx, m.keys.Canonical, token, expiresAt); serr != nil {
			err = errors.Join(ErrPersistToken, serr)
		}
		rep.Results = append(rep.Results, TierResult{Tier: t.Name, Err: err})
	}
	return rep
}

func (m *Manager) migrateLegacy(ctx context.Context, token string) {
	rep := m.persist(ctx, token)
	for _, t := range m.tiers {
		for _, k := range m.keys.Legacy {
			if err := t.Store.Delete(ctx, k); err != nil {
				m.log.WarnContext(ctx, "legacy token key not removed",
					logger.Tier(t.Name),
					logger.Key("key", k),
					logger.Error(err),
				)
			}
		}
	}
	m.logReport(ctx, "legacy token migrated", rep)
}

func (m *Manager) logReport(ctx context.Context, msg string, rep Report, attrs ...slog.Attr) {
	if rep.Degraded() {
		attrs = append(attrs, logger.Result("degraded"), logger.Error(rep.Err()))
		m.log.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
		return
	}
	attrs = append(attrs, logger.Result("success"))
	m.log.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}
