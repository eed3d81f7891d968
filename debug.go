package vignette

import "fmt"

// SetDebugMode turns [vignette] log lines for mounts, stage changes, scene
// requests, and confirmations on or off.
func (d *Director) SetDebugMode(enabled bool) {
	d.logMu.Lock()
	d.debug = enabled
	d.logMu.Unlock()
}

// DebugMode reports whether debug logging is on.
func (d *Director) DebugMode() bool {
	d.logMu.Lock()
	defer d.logMu.Unlock()
	return d.debug
}

// logf writes one debug line. It is a no-op unless debug mode is on.
// Safe to call from any goroutine.
func (d *Director) logf(format string, args ...any) {
	d.logMu.Lock()
	defer d.logMu.Unlock()
	if !d.debug || d.logOut == nil {
		return
	}
	_, _ = fmt.Fprintf(d.logOut, "[vignette] "+format+"\n", args...)
}

// warnf writes a line regardless of debug mode. Used for failures that
// have no caller to return an error to.
func (d *Director) warnf(format string, args ...any) {
	d.logMu.Lock()
	defer d.logMu.Unlock()
	if d.logOut == nil {
		return
	}
	_, _ = fmt.Fprintf(d.logOut, "[vignette] warning: "+format+"\n", args...)
}
