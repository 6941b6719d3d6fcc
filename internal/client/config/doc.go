// Package config loads runtime configuration for the admin client and the
// membership form.
//
// Sources, in increasing precedence:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Flags:
//
//	-a string   backend base URL, e.g. http://127.0.0.1:8000/api
//	-t int      request timeout in seconds
//	-d string   session database file
//	-l string   log level
//
// JSON file:
//
//	{
//	  "server_base_url": "https://example.org/api",
//	  "request_timeout": "20s",
//	  "session_db": "session.db",
//	  "log_level": "info",
//	  "headers": {"X-Client": "admin"},
//	  "resources": {"banners": "/banner/banners/"}
//	}
//
// Headers and resource path overrides can only be set in the JSON file.
package config
