// Package core orchestrates a full convergence run: fatal
// precondition checks, sequential reconciliation of every declared
// mapping, and the post-run verification probe that decides the exit
// code. A failed mapping never stops its siblings; only a broken
// source side or a held run lock aborts the run.
package core
