package render

import (
	"image"
	"image/color"
)

// Frame is an RGBA pixel buffer with one pixel per grid cell.
type Frame struct {
	W, H int
	buf  []byte
}

// NewFrame allocates a frame for a w*h grid.
func NewFrame(w, h int) *Frame {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Frame{W: w, H: h, buf: make([]byte, 4*w*h)}
}

// Pixels exposes the RGBA bytes in row-major order.
func (f *Frame) Pixels() []byte { return f.buf }

// Fill paints every pixel with c.
func (f *Frame) Fill(c color.Color) {
	r, g, b, a := rgba8(c)
	for base := 0; base+3 < len(f.buf); base += 4 {
		f.buf[base+0] = r
		f.buf[base+1] = g
		f.buf[base+2] = b
		f.buf[base+3] = a
	}
}

// Set paints the pixel at p. Points outside the frame are ignored.
func (f *Frame) Set(p image.Point, c color.Color) {
	if p.X < 0 || p.Y < 0 || p.X >= f.W || p.Y >= f.H {
		return
	}
	base := 4 * (p.Y*f.W + p.X)
	f.buf[base+0], f.buf[base+1], f.buf[base+2], f.buf[base+3] = rgba8(c)
}

// At returns the pixel at p, or transparent black outside the frame.
func (f *Frame) At(p image.Point) color.RGBA {
	if p.X < 0 || p.Y < 0 || p.X >= f.W || p.Y >= f.H {
		return color.RGBA{}
	}
	base := 4 * (p.Y*f.W + p.X)
	return color.RGBA{R: f.buf[base], G: f.buf[base+1], B: f.buf[base+2], A: f.buf[base+3]}
}

func rgba8(c color.Color) (uint8, uint8, uint8, uint8) {
	r, g, b, a := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)
}
