//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"lifeforms/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var (
	zoneTint      = color.RGBA{R: 64, G: 200, B: 120, A: 255}
	inspectShade  = color.RGBA{R: 0, G: 0, B: 0, A: 180}
	inspectColour = color.RGBA{R: 230, G: 230, B: 240, A: 255}
)

// Overlay draws the survival zone and the inspector on top of the grid.
// Key 1 toggles the zone; a left click selects the cell to inspect and a
// right click clears it.
type Overlay struct {
	sim   core.Sim
	scale int

	showZone bool
	maskImg  *ebiten.Image
	maskBuf  []byte

	selected    image.Point
	hasSelected bool
	pixel       *ebiten.Image
}

// NewOverlay constructs an overlay for a view drawn at scale.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: max(scale, 1)}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the overlay's keys and clicks.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showZone = !o.showZone
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		o.hasSelected = false
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		p := image.Pt(mx/o.scale, my/o.scale)
		size := o.sim.Size()
		if p.In(image.Rect(0, 0, size.W, size.H)) {
			o.selected, o.hasSelected = p, true
		}
	}
}

// Draw renders the overlay onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showZone {
		if provider, ok := o.sim.(maskProvider); ok {
			o.drawMask(screen, provider.SurvivalMask())
		}
	}
	if o.hasSelected {
		if d, ok := o.sim.(describer); ok {
			if lines, ok := d.Describe(o.selected); ok {
				o.drawInspector(screen, lines)
			}
		}
	}
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32) {
	size := o.sim.Size()
	if len(mask) != size.W*size.H || len(mask) == 0 {
		return
	}
	if o.maskImg == nil {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*len(mask))
	}
	tintMask(o.maskBuf, mask, zoneTint)
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.maskImg, op)
}

func (o *Overlay) drawInspector(screen *ebiten.Image, lines []string) {
	face := basicfont.Face7x13
	width := 0
	for _, line := range lines {
		width = max(width, text.BoundString(face, line).Dx())
	}
	height := len(lines)*statusSpacing + 6

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width+12), float64(height))
	op.GeoM.Translate(4, 4)
	op.ColorScale.ScaleWithColor(inspectShade)
	screen.DrawImage(o.pixel, op)
	for i, line := range lines {
		text.Draw(screen, line, face, 10, 4+statusSpacing*(i+1), inspectColour)
	}

	op = &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	op.GeoM.Translate(float64(o.selected.X*o.scale), float64(o.selected.Y*o.scale))
	op.ColorScale.ScaleWithColor(color.RGBA{R: 255, G: 255, B: 255, A: 200})
	screen.DrawImage(o.pixel, op)
}
