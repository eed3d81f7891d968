package vignette

import (
	"image/color"
	"testing"
)

func TestFadeColor(t *testing.T) {
	tests := []struct {
		name string
		fade Fade
		want color.NRGBA
		ok   bool
	}{
		{"transparent", Fade{Color: "#fff", Opacity: 0}, color.NRGBA{}, false},
		{"opaque white", Fade{Color: "#fff", Opacity: 1}, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, true},
		{"half black", Fade{Color: "#000000", Opacity: 0.5}, color.NRGBA{A: 128}, true},
		{"overdriven", Fade{Color: "#f00", Opacity: 3}, color.NRGBA{R: 255, A: 255}, true},
		{"bad color", Fade{Color: "white", Opacity: 1}, color.NRGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fadeColor(tt.fade)
			if ok != tt.ok || got != tt.want {
				t.Errorf("fadeColor(%+v) = %v, %t; want %v, %t", tt.fade, got, ok, tt.want, tt.ok)
			}
		})
	}
}
