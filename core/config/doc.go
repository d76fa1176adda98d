// Package config loads application configuration from environment variables
// and an optional .env file. Defaults come from struct tags on the partial
// config types owned by each core package.
package config
