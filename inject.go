package vignette

// InjectKey queues a synthetic key-down event. Injected keys are consumed one
// per Tick, before the scene store is read, so a scripted key behaves like a
// key pressed just before that frame.
func (d *Director) InjectKey(key string) {
	d.injectQueue = append(d.injectQueue, key)
}

// InjectKeys queues several keys, one per frame, in order.
func (d *Director) InjectKeys(keys ...string) {
	d.injectQueue = append(d.injectQueue, keys...)
}

// PendingInjections returns the number of queued keys not yet delivered.
func (d *Director) PendingInjections() int {
	return len(d.injectQueue)
}

// processInjectedKey pops one key from the inject queue and dispatches it.
// Returns true if a key was consumed.
func (d *Director) processInjectedKey() bool {
	if len(d.injectQueue) == 0 {
		return false
	}
	key := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]

	d.logf("inject %q", key)
	d.keys.Dispatch(KeyEvent{Key: key, Injected: true})
	return true
}
