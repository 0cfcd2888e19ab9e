// Package logger provides slog construction and attribute helpers shared by
// the client packages.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithJSONFormatter(),
//		logger.WithAttr(logger.Component("pusher")),
//	)
//
//	log.Debug("trigger",
//		logger.Channels(channels),
//		logger.EventName("order.created"),
//		logger.Status("success"),
//	)
//
// Libraries default to Discard() so nothing is written unless the caller
// passes a logger.
//
// # Attribute Helpers
//
// Helpers return the empty slog.Attr for nil errors and empty strings, which
// slog omits from output:
//
//	log.Warn("call failed", logger.Error(err), logger.StatusCode(code))
//
// Secrets, master keys and shared secrets have no helper and must never be logged.
package logger
