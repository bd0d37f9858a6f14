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
	panelBackground = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	headerColour    = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColour     = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColour       = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

// HUD renders the status and parameter panel to the right of the simulation
// view.
type HUD struct {
	sim    core.Sim
	width  int
	panel  *ebiten.Image
	pixel  *ebiten.Image
	title  string
	status []string

	controls    []controlState
	floatSetter core.FloatParameterSetter
	offsetX     int
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), title: title(sim)}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			h.controls = append(h.controls, controlState{control: ctrl})
		}
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		h.floatSetter = setter
	}
	return h
}

// Update refreshes the cached values and handles clicks on the panel, which
// is drawn at panelOffsetX.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.offsetX = panelOffsetX
	h.status = statusLines(h.sim)
	layoutControls(h.controls, h.width, h.controlsTop())
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		refreshValues(h.controls, provider.Parameters())
	}
	h.handleInput()
}

func (h *HUD) controlsTop() int {
	return panelPadding + headerBaseline + statusSpacing*len(h.status) + 14
}

func (h *HUD) handleInput() {
	if h.floatSetter == nil || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	px := mx - h.offsetX
	for i := range h.controls {
		state := &h.controls[i]
		direction := 0
		switch {
		case pointInRect(px, my, state.minusRect):
			direction = -1
		case pointInRect(px, my, state.plusRect):
			direction = 1
		default:
			continue
		}
		if target, ok := stepped(*state, direction); ok && h.floatSetter.SetFloatParameter(state.control.Key, target) {
			state.value = target
		}
		return
	}
}

// Draw paints the panel at offsetX, as tall as the scaled simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelBackground)

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, headerColour)
	for _, line := range h.status {
		y += statusSpacing
		text.Draw(h.panel, line, face, panelPadding, y, dimColour)
	}
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, y+statusSpacing*2, dimColour)
	}
	for _, state := range h.controls {
		baseline := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, baseline, labelColour)
		value := formatValue(state)
		valueColour := labelColour
		if !state.hasValue {
			valueColour = dimColour
		}
		valueX := state.minusRect.Min.X - buttonGap - text.BoundString(face, value).Dx()
		text.Draw(h.panel, value, face, valueX, baseline, valueColour)

		_, canLower := stepped(state, -1)
		_, canRaise := stepped(state, 1)
		h.drawButton(state.minusRect, "-", canLower && h.floatSetter != nil)
		h.drawButton(state.plusRect, "+", canRaise && h.floatSetter != nil)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}
