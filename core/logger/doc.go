// Package logger builds slog loggers and provides attribute helpers used across the
// client packages.
//
//	log := logger.New(
//		logger.WithDevelopment("adminctl"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("request completed",
//		logger.Component("httpclient"),
//		logger.Method(http.MethodGet),
//		logger.Path("/admin/pending"),
//		logger.StatusCode(200),
//		logger.Latency(time.Since(start)),
//	)
//
// Helpers such as Error, RequestID and StatusCode return an empty slog.Attr for zero
// inputs, which slog drops from the output. TokenPreview never logs more than the
// first 20 characters of a credential.
//
// Library code defaults to Nop so that nothing is written unless the application
// passes its own logger.
package logger
