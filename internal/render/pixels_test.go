package render

import (
	"image"
	"image/color"
	"testing"
)

func TestFrameFillAndSet(t *testing.T) {
	f := NewFrame(3, 2)
	if len(f.Pixels()) != 3*2*4 {
		t.Fatalf("frame holds %d bytes", len(f.Pixels()))
	}

	bg := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	f.Fill(bg)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got := f.At(image.Pt(x, y)); got != bg {
				t.Fatalf("pixel (%d,%d) = %v after fill", x, y, got)
			}
		}
	}

	fg := color.RGBA{R: 255, G: 136, A: 255}
	f.Set(image.Pt(2, 1), fg)
	if got := f.At(image.Pt(2, 1)); got != fg {
		t.Fatalf("pixel = %v, expected %v", got, fg)
	}
	if got := f.Pixels()[4*(1*3+2)]; got != 255 {
		t.Fatalf("row-major red byte %d", got)
	}

	f.Set(image.Pt(3, 0), fg)
	f.Set(image.Pt(-1, 0), fg)
	if got := f.At(image.Pt(5, 5)); got != (color.RGBA{}) {
		t.Fatal("out of range reads return transparent black")
	}
}
