// Package config loads and validates latch's declarative
// configuration. It layers embedded defaults, an optional latch.toml
// or latch.yaml, and LATCH_* environment overrides, and resolves the
// declared links into absolute mappings.
package config
