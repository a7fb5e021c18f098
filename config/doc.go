// Package config provides configuration loading and validation for pgmeta.
//
// The package handles YAML configuration files, environment variables, and
// CLI flags with automatic merging and validation using
// go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (PGMETA_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with PGMETA_ prefix:
//   - database.url → PGMETA_DATABASE_URL
//   - schema.file → PGMETA_SCHEMA_FILE
//   - log.level → PGMETA_LOG_LEVEL
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Database URL is required and must be a URL
//   - Log level must be debug, info, warn, or error
package config
