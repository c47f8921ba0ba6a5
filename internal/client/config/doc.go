// Package config loads runtime configuration for the catalog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally loaded from a dotenv file selected
//     with -e/-env (default ".env" when present).
//  3. Optional JSON file selected with -c/-config.
//  4. Command-line flags, which override everything else.
//
// Environment variables
//
//	CATALOG_API_URL      REST API root
//	CATALOG_DB_DSN       SQLite session database
//	CATALOG_REDIS_ADDR   catalog cache address
//	CATALOG_CACHE_TTL    catalog cache TTL ("5m")
//	CATALOG_RPS          request pacing, requests per second
//	CATALOG_LOG_LEVEL    debug | info | warn | error
//	CATALOG_LOG_FORMAT   text | json
//
// Supported flags
//
//	-a string   REST API root URL
//	-d string   SQLite DSN
//	-r string   Redis address
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080",
//	  "database_dsn": "catalog.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "catalog_cache_ttl": "5m",
//	  "requests_per_second": 5,
//	  "log_level": "info",
//	  "log_format": "json"
//	}
//
// Only fields present in the JSON document override earlier values.
package config
