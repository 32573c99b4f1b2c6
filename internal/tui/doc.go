// Package tui implements the interactive credential viewer.
//
// The viewer is a single Bubble Tea model with four screens: loading,
// list, permission denied and failed. Every acquisition is started through
// an Acquirer, which returns a request ID; an outcome whose ID is not the
// latest is dropped, so a reload always wins over a slow earlier run.
//
// Keys on the list screen:
//
//	↑/↓      move
//	enter/c  copy password
//	n        copy network name
//	/        filter by name
//	r        reload
//	q        quit
//
// On the permission screen g grants all permissions (persisted through
// Options.Grant) and starts a new run.
package tui
