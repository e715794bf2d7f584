// Package config defines the fleet updater settings and provides helpers
// to load and validate them in YAML format.
//
// The Config type holds per-product download endpoints, SSH access
// settings for reaching fleet hosts, concurrency and timeout limits, and
// the staging locations for installer artifacts.
package config
