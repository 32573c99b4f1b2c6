// Package acquire runs the credential acquisition chain.
//
// A Chain checks the capability context, then tries its sources in a
// fixed order and adopts the first non-empty result:
//
//	permission gate -> version branch -> reflective -> config file -> demo
//
// Results are never merged. The demo source always yields five synthetic
// records, so a run that passes the gate always has something to show.
//
// Runner executes a chain off the caller's goroutine and delivers one
// Outcome per run on a channel; starting a new run cancels the previous
// one. Service is the synchronous entry point used by the share server and
// coalesces overlapping requests.
package acquire
