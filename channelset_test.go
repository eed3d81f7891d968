package vignette

import (
	"reflect"
	"testing"
)

func TestChannelSetTicksInDeclarationOrder(t *testing.T) {
	s := NewChannelSet()
	var order []string
	for _, key := range []string{"jumpIn", "fadeIn", "orientOut"} {
		Add(s, key, Number, ChannelConfig[float64]{
			Start:    0,
			End:      1,
			Delta:    0.5,
			OnUpdate: func(float64, float64) { order = append(order, key) },
		}).Start()
	}
	s.Tick()
	want := []string{"jumpIn", "fadeIn", "orientOut"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if !reflect.DeepEqual(s.Keys(), want) {
		t.Errorf("Keys = %v, want %v", s.Keys(), want)
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
}

func TestChannelSetIndependentProgress(t *testing.T) {
	s := NewChannelSet()
	fast := Add(s, "fast", Number, ChannelConfig[float64]{Start: 0, End: 1, Delta: 0.5})
	slow := Add(s, "slow", Number, ChannelConfig[float64]{Start: 0, End: 1, Delta: 0.25})
	idle := Add(s, "idle", Number, ChannelConfig[float64]{Start: 0, End: 1, Delta: 0.5})
	fast.Start()
	slow.Start()

	s.Tick()
	s.Tick()
	if !fast.Finished() || slow.Finished() {
		t.Errorf("after 2 ticks: fast=%t slow=%t", fast.Finished(), slow.Finished())
	}
	if idle.Timer() != 0 {
		t.Errorf("idle channel advanced to %v", idle.Timer())
	}
	if s.AllFinished("fast", "slow") {
		t.Error("AllFinished true before slow finished")
	}
	s.Tick()
	s.Tick()
	if !s.AllFinished("fast", "slow") {
		t.Error("AllFinished false after both finished")
	}
}

func TestChannelSetAllFinishedUnknownKey(t *testing.T) {
	s := NewChannelSet()
	if s.AllFinished("missing") {
		t.Error("unknown key counted as finished")
	}
	if !s.AllFinished() {
		t.Error("empty key list should be vacuously finished")
	}
}

func TestChannelSetDuplicateKeyPanics(t *testing.T) {
	s := NewChannelSet()
	Add(s, "jump", Number, ChannelConfig[float64]{})
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate key")
		}
	}()
	Add(s, "jump", Number, ChannelConfig[float64]{})
}

func TestChannelSetGetAndStopAll(t *testing.T) {
	s := NewChannelSet()
	c := Add(s, "jump", Number, ChannelConfig[float64]{Start: 0, End: 1, Delta: 0.1})
	c.Start()

	got, ok := s.Get("jump")
	if !ok || got != Animator(c) {
		t.Fatalf("Get(jump) = %v, %t", got, ok)
	}
	if _, ok := s.Get("nope"); ok {
		t.Error("Get(nope) reported ok")
	}

	s.StopAll()
	if c.Running() {
		t.Error("channel still running after StopAll")
	}
}
