package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"lifeforms/internal/core"
)

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	statusSpacing  = 16
)

// describer is implemented by sims that can report the occupant of a cell.
type describer interface {
	Describe(p image.Point) ([]string, bool)
}

// maskProvider is implemented by sims exposing a per-cell highlight in [0,1].
type maskProvider interface {
	SurvivalMask() []float32
}

type controlState struct {
	control  core.ParameterControl
	value    float64
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

func title(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := sim.Name()
	return strings.ToUpper(name[:1]) + name[1:]
}

// statusLines formats the progress counters of sims implementing core.Status.
func statusLines(sim core.Sim) []string {
	st, ok := sim.(core.Status)
	if !ok {
		return nil
	}
	return []string{
		fmt.Sprintf("Generation %d", st.Generation()),
		fmt.Sprintf("Tick %d", st.Tick()),
		fmt.Sprintf("Population %d", st.Population()),
	}
}

// layoutControls stacks the controls below top inside a panel of the given
// width, placing the minus and plus buttons against the right edge.
func layoutControls(states []controlState, width, top int) {
	for i := range states {
		rowTop := top + i*lineHeight
		buttonY := rowTop + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		states[i].top = rowTop
		states[i].minusRect = minus
		states[i].plusRect = plus
	}
}

// refreshValues copies the snapshot values of every control.
func refreshValues(states []controlState, snapshot core.ParameterSnapshot) {
	values := map[string]string{}
	for _, group := range snapshot.Groups {
		for _, param := range group.Params {
			values[param.Key] = param.Value
		}
	}
	for i := range states {
		raw, ok := values[states[i].control.Key]
		if !ok {
			states[i].hasValue = false
			continue
		}
		parsed, err := strconv.ParseFloat(raw, 64)
		states[i].hasValue = err == nil
		states[i].value = parsed
	}
}

// stepped returns the value one step in direction, clamped to the control's
// range, and whether that differs from the current value.
func stepped(state controlState, direction int) (float64, bool) {
	if !state.hasValue || direction == 0 {
		return state.value, false
	}
	step := state.control.Step
	if step <= 0 {
		step = 0.05
	}
	target := state.control.Clamp(state.value + float64(direction)*step)
	return target, math.Abs(target-state.value) >= 1e-9
}

func formatValue(state controlState) string {
	if !state.hasValue {
		return "--"
	}
	precision := 1
	switch step := state.control.Step; {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(state.value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

// tintMask writes mask into buf as RGBA pixels of the tint colour, with alpha
// rising with the mask intensity. Zero cells are fully transparent.
func tintMask(buf []byte, mask []float32, tint color.RGBA) {
	const maxAlpha = 96.0
	for i := range mask {
		base := 4 * i
		if base+3 >= len(buf) {
			return
		}
		intensity := math.Max(0, math.Min(1, float64(mask[i])))
		if intensity == 0 {
			buf[base+0], buf[base+1], buf[base+2], buf[base+3] = 0, 0, 0, 0
			continue
		}
		alpha := maxAlpha * intensity
		// premultiplied, as ebiten expects
		buf[base+0] = uint8(float64(tint.R) * alpha / 255)
		buf[base+1] = uint8(float64(tint.G) * alpha / 255)
		buf[base+2] = uint8(float64(tint.B) * alpha / 255)
		buf[base+3] = uint8(math.Round(alpha))
	}
}

// cubeIndex maps a colour onto the 6x6x6 cube of the 256-colour terminal
// palette.
func cubeIndex(c color.RGBA) uint8 {
	level := func(v uint8) uint8 { return uint8((int(v)*5 + 127) / 255) }
	return 16 + 36*level(c.R) + 6*level(c.G) + level(c.B)
}
