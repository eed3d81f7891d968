package vignette

import "fmt"

// Animator is the type-independent view of a channel that a ChannelSet
// drives. *Channel[T] implements it for every T.
type Animator interface {
	Key() string
	Tick()
	Start()
	Stop()
	Reset()
	Running() bool
	Finished() bool
}

// ChannelSet holds a fixed group of named channels and advances them in
// declaration order. Channels in a set progress independently; none reads
// another's value during a tick.
type ChannelSet struct {
	order []Animator
	byKey map[string]Animator
}

// NewChannelSet creates an empty set.
func NewChannelSet() *ChannelSet {
	return &ChannelSet{byKey: make(map[string]Animator)}
}

// Add declares a channel in the set and returns it with its concrete type.
// Declaring the same key twice is a programming error and panics.
func Add[T any](s *ChannelSet, key string, kind ValueKind[T], cfg ChannelConfig[T]) *Channel[T] {
	if _, dup := s.byKey[key]; dup {
		panic(fmt.Sprintf("vignette: duplicate channel %q", key))
	}
	c := NewChannel(key, kind, cfg)
	s.order = append(s.order, c)
	s.byKey[key] = c
	return c
}

// Tick advances every running channel once, in declaration order.
func (s *ChannelSet) Tick() {
	for _, c := range s.order {
		c.Tick()
	}
}

// Get looks up a channel by key.
func (s *ChannelSet) Get(key string) (Animator, bool) {
	c, ok := s.byKey[key]
	return c, ok
}

// Keys returns the channel keys in declaration order.
func (s *ChannelSet) Keys() []string {
	keys := make([]string, len(s.order))
	for i, c := range s.order {
		keys[i] = c.Key()
	}
	return keys
}

// Len returns the number of channels.
func (s *ChannelSet) Len() int { return len(s.order) }

// AllFinished reports whether every named channel has finished. Unknown
// keys count as not finished.
func (s *ChannelSet) AllFinished(keys ...string) bool {
	for _, k := range keys {
		c, ok := s.byKey[k]
		if !ok || !c.Finished() {
			return false
		}
	}
	return true
}

// StopAll halts every channel without resetting it.
func (s *ChannelSet) StopAll() {
	for _, c := range s.order {
		c.Stop()
	}
}
