// Package logger provides a structured logging facility based on Zap.
//
// New builds a development logger for the debug level and a production logger
// otherwise. The console format uses colored capital levels, which is what
// operators see when running the tool by hand.
//
// # Context
//
// Every invocation gets a run ID (WithRunID) so that log lines and recorded
// history can be correlated. Per-file work adds the file path (WithFile).
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: console or json
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log = logger.WithRunID(log, logger.NewRunID())
//	logger.WithFile(log, "J1713+0747.nb.yaml").Warn("toa-type mismatch")
package logger
