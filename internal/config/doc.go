// Package config manages application configuration for the resort API.
//
// The config package loads and validates configuration from environment
// variables. All configuration is centralized here to provide a single
// source of truth.
//
// # Configuration Loading
//
// Configuration is loaded from environment variables, with a .env file
// applied first when one exists in the working directory:
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
// Configuration is organized into logical groups:
//
//   - ServerConfig: runtime settings (environment, log level, shutdown)
//   - DatabaseConfig: SurrealDB connection settings
//   - EventsConfig: activity event publishing settings
//
// # Environment Variables
//
// Key environment variables:
//
//	SERVER_ENV        - development, production, or test (default: development)
//	LOG_LEVEL         - debug, info, warn, or error (default: info)
//	DB_HOST           - SurrealDB host (default: localhost)
//	DB_PORT           - SurrealDB port (default: 8000)
//	DB_NAMESPACE      - Database namespace (default: palmbay)
//	DB_DATABASE       - Database name (default: resort)
//	EVENTS_ENABLED    - Publish activity events over AMQP (default: false)
//	EVENTS_AMQP_URL   - AMQP broker URL
//	EVENTS_QUEUE      - Queue name for activity events
package config
