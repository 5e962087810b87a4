// Package database opens the GORM connection used for rewrite history.
//
// Two drivers are supported: sqlite, where Name is a file path (or ":memory:"),
// and mysql, where the DSN is built from host, port, credentials and a timeout
// that bounds connection setup, reads and writes.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("history disabled", zap.Error(err))
//	}
package database
