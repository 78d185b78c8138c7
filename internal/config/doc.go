// Package config loads server settings through viper. Defaults are layered
// under an optional config.yaml and VOCABDECK_* environment variables, and
// the result is checked with validator struct tags before use.
package config
