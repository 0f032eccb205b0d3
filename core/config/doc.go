// Package config provides configuration management for the Country Exchange service.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults live next to each setting as `default` struct tags
// and are registered by reflecting over the nested Config structs.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, base path, timeouts)
//   - Database: MySQL connection details and upsert batch size
//   - Storage: S3/MinIO credentials and the bucket holding the summary image
//   - Sources: upstream country and exchange-rate endpoints
//   - Summary: summary image object name, top-N size, render timeout
//   - Lock / Redis: refresh serialization
//   - Log: Logging level and format
//
// Environment variables map onto nested keys by replacing dots with underscores,
// so `SOURCES_TIMEOUT_SECONDS=10` overrides `sources.timeout_seconds`.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
