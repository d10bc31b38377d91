package planet

import (
	"bytes"
	"testing"

	"github.com/soycan-sim/space-game/internal/engine/noise"
)

func TestBakeSurfaceTexture(t *testing.T) {
	def := testDefinition("painted", 10)
	def.Color = noise.Params{
		Frequency:       3,
		OctaveScale:     2,
		Amplitude:       1,
		OctaveAmplitude: 0.5,
	}
	def.LowColor = RGB{0, 0, 0}
	def.HighColor = RGB{1, 1, 1}
	p, err := New(def)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	img := p.BakeSurfaceTexture(64)
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("BakeSurfaceTexture() bounds = %v, want 64x64", img.Bounds())
	}

	varied := false
	first := img.RGBAAt(0, 0)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			c := img.RGBAAt(x, y)
			if c.A != 255 {
				t.Fatalf("pixel (%d,%d) alpha = %d, want 255", x, y, c.A)
			}
			// Black-to-white blend stays gray.
			if c.R != c.G || c.G != c.B {
				t.Fatalf("pixel (%d,%d) = %v, want grayscale", x, y, c)
			}
			if c != first {
				varied = true
			}
		}
	}
	if !varied {
		t.Error("BakeSurfaceTexture() produced a flat image, want noise variation")
	}
}

func TestBakeSurfaceTextureDeterministic(t *testing.T) {
	p, err := New(testDefinition("painted", 10))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	a := p.BakeSurfaceTexture(32)
	b := p.BakeSurfaceTexture(32)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("BakeSurfaceTexture() is not deterministic")
	}
}

func TestBakeSurfaceTextureTinySizes(t *testing.T) {
	p, err := New(testDefinition("dot", 10))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for _, size := range []int{-3, 0, 1} {
		img := p.BakeSurfaceTexture(size)
		if img.Bounds().Dx() != 1 || img.Bounds().Dy() != 1 {
			t.Errorf("BakeSurfaceTexture(%d) bounds = %v, want 1x1", size, img.Bounds())
		}
	}
}
