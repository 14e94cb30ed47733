// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the storefront API
//	-o string   order id the cart is kept under
//	-d string   path of the local SQLite store
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-f string   log format (text, json)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Intervals accept strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8080/api",
//	  "order_id": "1",
//	  "storage_path": "storefront.db",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s",
//	  "log_format": "text",
//	  "log_level": "info"
//	}
//
// This package does not read environment variables.
package config
