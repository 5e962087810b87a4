// Package config provides configuration management for timingcfg.
//
// Settings come from environment variables, optionally seeded from a .env
// file. Every key has a default taken from the `default` struct tag of the
// section it belongs to, so an empty environment is a valid configuration.
//
// # Configuration Structure
//
//   - Release: location of the current TOA release and the TOA file extension
//   - Document: output suffixes and write indentation
//   - Log: level and format
//   - Storage: S3/MinIO endpoint and credentials for s3:// releases
//   - Database: optional rewrite history (sqlite or mysql)
//
// Nested keys map to upper-case variables with underscores, e.g.
// RELEASE_LOCATION, LOG_LEVEL or DATABASE_ENABLED.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Release.Location)
package config
