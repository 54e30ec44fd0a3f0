// Package session keeps the bearer token of the admin API client.
//
// A Manager holds the token in memory and mirrors it into an ordered list of
// storage tiers so it survives restarts. Short-lived tiers are always consulted
// before long-lived ones. Every tier can fail on its own: failures are logged,
// returned as a per-tier Report and never prevent the in-memory token from being
// updated.
//
//	mgr, err := session.NewManager(
//		session.WithTiers(
//			session.Tier{Name: "memory", Lifetime: session.ShortLived, Store: memory.New()},
//			session.Tier{Name: "sqlite", Lifetime: session.LongLived, Store: sqliteStore},
//		),
//		session.WithLogger(log),
//	)
//
//	rep := mgr.SetToken(ctx, token)
//	if rep.Degraded() {
//		log.Warn("token kept in memory only", logger.Error(rep.Err()))
//	}
//
// The token is written under a single canonical key ("auth_token"). Values found
// under the legacy aliases ("authToken", "token") are read once and migrated.
//
// Expiry comes from the exp claim of the token payload. The signature is not
// verified. A token without a decodable exp is treated as expired.
package session
