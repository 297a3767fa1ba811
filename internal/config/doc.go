// Package config loads the server configuration from the `server:` section
// of config.yaml.
//
// Config fields:
//   - HTTPPort      — port for the HTTP API (default 8080)
//   - Auth.Mode     — "apikey" or "none"
//   - Auth.KeyEnv   — environment variable holding the expected API key
//   - Auth.Header   — HTTP header name carrying the key (default "x-api-key")
//   - Dataset.Path  — delimited dataset file (default "TRIALDB.csv")
//   - Dataset.Watch — reload the dataset on file change (default false)
//
// Load(path) applies defaults before unmarshalling, then validates.
package config
