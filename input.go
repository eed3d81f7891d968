package vignette

import "unicode/utf8"

// KeyEvent is a key-down event keyed by the character it produces: "w",
// "b", " ".
type KeyEvent struct {
	Key string
	// Injected is true for events queued with Director.InjectKey.
	Injected bool
}

// --- Handler registry ---

type handler[F any] struct {
	id       uint32
	priority int
	fn       F
}

// registry keeps handlers sorted by ascending priority; equal priorities
// keep registration order.
type registry[F any] struct {
	handlers []handler[F]
	nextID   uint32
}

func (r *registry[F]) add(priority int, fn F) uint32 {
	r.nextID++
	h := handler[F]{id: r.nextID, priority: priority, fn: fn}
	i := len(r.handlers)
	for i > 0 && r.handlers[i-1].priority > priority {
		i--
	}
	r.handlers = append(r.handlers, handler[F]{})
	copy(r.handlers[i+1:], r.handlers[i:])
	r.handlers[i] = h
	return h.id
}

func (r *registry[F]) remove(id uint32) {
	for i := range r.handlers {
		if r.handlers[i].id == id {
			copy(r.handlers[i:], r.handlers[i+1:])
			r.handlers[len(r.handlers)-1] = handler[F]{}
			r.handlers = r.handlers[:len(r.handlers)-1]
			return
		}
	}
}

// snapshot copies the handler functions into buf so callbacks may add or
// remove handlers while the caller iterates.
func (r *registry[F]) snapshot(buf []F) []F {
	buf = buf[:0]
	for _, h := range r.handlers {
		buf = append(buf, h.fn)
	}
	return buf
}

func (r *registry[F]) len() int { return len(r.handlers) }

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id     uint32
	remove func(id uint32)
}

// Remove unregisters the callback so it no longer fires. Removing twice, or
// removing the zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.remove == nil {
		return
	}
	h.remove(h.id)
}

// --- Keyboard ---

// Keyboard fans key-down events out to subscribers. Scenes attach their
// bindings when mounted and remove them when unmounted.
type Keyboard struct {
	handlers registry[func(KeyEvent)]
	scratch  []func(KeyEvent)
}

// NewKeyboard creates a keyboard with no subscribers.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// OnKeyDown registers fn for every key-down event.
func (k *Keyboard) OnKeyDown(fn func(KeyEvent)) CallbackHandle {
	id := k.handlers.add(0, fn)
	return CallbackHandle{id: id, remove: k.handlers.remove}
}

// OnKey registers fn for key-down events of a single key.
func (k *Keyboard) OnKey(key string, fn func()) CallbackHandle {
	return k.OnKeyDown(func(ev KeyEvent) {
		if ev.Key == key {
			fn()
		}
	})
}

// Dispatch delivers ev to every subscriber in registration order.
func (k *Keyboard) Dispatch(ev KeyEvent) {
	k.scratch = k.handlers.snapshot(k.scratch)
	for _, fn := range k.scratch {
		fn(ev)
	}
}

// Subscribers returns the number of registered handlers.
func (k *Keyboard) Subscribers() int {
	return k.handlers.len()
}

// keyFromRune converts a typed character to its key name.
func keyFromRune(r rune) string {
	if r == utf8.RuneError {
		return ""
	}
	return string(r)
}
