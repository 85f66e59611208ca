// Package config provides configuration management for blitz-stats.
//
// It utilizes Viper for loading configuration from environment variables,
// with an optional .env file loaded first through godotenv.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit)
//   - Database: MySQL or SQLite connection details for stat records
//   - Storage: S3/MinIO credentials and the bucket holding catalog snapshots
//   - Log: Logging level and format
//   - Ingest: snapshot object keys, cache TTL, clock skew tolerance
//
// Defaults come from `default:"..."` struct tags on each section.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Ingest.TankopediaObject)
package config
