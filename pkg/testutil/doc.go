// Package testutil provides utilities for testing latch components.
//
// Key components:
//   - TestEnvironment: test orchestrator with isolation and cleanup
//   - Assertion helpers built on testing.T
//   - File and symlink helpers for both the real filesystem and types.FS
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly for speed and isolation
//   - Use EnvIsolated when real symlink semantics matter
//   - Define test data inline, not in external files
//   - Each test should be completely isolated with no shared state
package testutil
