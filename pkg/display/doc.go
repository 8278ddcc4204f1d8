// Package display renders run results and status reports for people
// and machines. Terminal output gets adaptive colors when stdout is a
// capable TTY, falls back to plain text when piped, and switches to
// JSON on request. Nothing here mutates anything; rendering errors
// are only ever write failures.
package display
