package ui

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"lifeforms/internal/core"
)

const (
	viewField   = "field"
	viewStatus  = "status"
	viewInspect = "inspect"
	viewHelp    = "help"

	leftColumnWidth = 34
	minTermHeight   = 12
)

type keyBinding struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

// Terminal is an interactive console view of a simulation. Steps run on a
// ticker goroutine while the gocui main loop owns the screen.
type Terminal struct {
	g        *gocui.Gui
	keys     []keyBinding
	interval time.Duration
	quit     chan struct{}
	running  atomic.Bool

	mu          sync.Mutex
	sim         core.Sim
	selected    image.Point
	hasSelected bool
}

// NewTerminal prepares a terminal view stepping sim at tps ticks per second.
func NewTerminal(sim core.Sim, tps int) (*Terminal, error) {
	g, err := gocui.NewGui(gocui.Output256)
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	g.Mouse = true
	t := &Terminal{
		g:        g,
		sim:      sim,
		interval: core.NewFixedStep(tps).Interval(),
		quit:     make(chan struct{}),
	}
	t.keys = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'q', "Q", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next tick", t.cmdStep, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'x', "X", "Reseed", t.cmdReseed, ""},
		{gocui.MouseLeft, "MOUSE", "Inspect", t.cmdInspect, viewField},
	}
	g.SetManagerFunc(t.layout)
	for _, kb := range t.keys {
		h := kb.handler
		if err := g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return h(v) }); err != nil {
			g.Close()
			return nil, fmt.Errorf("bind %s: %w", kb.name, err)
		}
	}
	return t, nil
}

// Run blocks in the terminal main loop until the user quits.
func (t *Terminal) Run() error {
	defer t.g.Close()
	go t.tick()
	err := t.g.MainLoop()
	close(t.quit)
	if err != nil && !errors.Is(err, gocui.ErrQuit) {
		return err
	}
	return nil
}

func (t *Terminal) tick() {
	ticker := time.NewTicker(max(t.interval, time.Millisecond))
	defer ticker.Stop()
	for {
		select {
		case <-t.quit:
			return
		case <-ticker.C:
			if t.running.Load() {
				t.step()
			}
		}
	}
}

func (t *Terminal) step() {
	t.mu.Lock()
	t.sim.Step()
	t.mu.Unlock()
	t.refresh()
}

func (t *Terminal) refresh() {
	t.g.Update(func(g *gocui.Gui) error {
		t.render(g)
		return nil
	})
}

func (t *Terminal) render(g *gocui.Gui) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, err := g.View(viewField); err == nil {
		v.Clear()
		w, h := v.Size()
		fmt.Fprint(v, fieldText(t.sim.Frame(), t.sim.Size(), w, h))
	}
	if v, err := g.View(viewStatus); err == nil {
		v.Clear()
		size := t.sim.Size()
		fmt.Fprintln(v, prop("Simulation", "%s", t.sim.Name()))
		fmt.Fprintln(v, prop("Dimension", "%d x %d", size.W, size.H))
		for _, line := range statusLines(t.sim) {
			fmt.Fprintln(v, " "+line)
		}
		mode := aurora.Colorize("paused", aurora.BlueFg).String()
		if t.running.Load() {
			mode = aurora.Colorize("running", aurora.CyanFg).String()
		}
		fmt.Fprintln(v, prop("Mode", "%s", mode))
		if provider, ok := t.sim.(core.ParameterControlsProvider); ok {
			snapshot := core.ParameterSnapshot{}
			if p, ok := t.sim.(core.ParameterProvider); ok {
				snapshot = p.Parameters()
			}
			states := make([]controlState, 0)
			for _, ctrl := range provider.ParameterControls() {
				states = append(states, controlState{control: ctrl})
			}
			refreshValues(states, snapshot)
			for _, s := range states {
				fmt.Fprintln(v, prop(s.control.Label, "%s", formatValue(s)))
			}
		}
	}
	if v, err := g.View(viewInspect); err == nil {
		v.Clear()
		d, ok := t.sim.(describer)
		if !ok || !t.hasSelected {
			fmt.Fprintln(v, " click a cell to inspect it")
			return
		}
		lines, ok := d.Describe(t.selected)
		if !ok {
			fmt.Fprintf(v, " (%d,%d) empty\n", t.selected.X, t.selected.Y)
			return
		}
		for _, line := range lines {
			fmt.Fprintln(v, " "+line)
		}
	}
}

func (t *Terminal) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	if maxY < minTermHeight || maxX <= leftColumnWidth+2 {
		for _, name := range []string{viewField, viewStatus, viewInspect, viewHelp} {
			_ = g.DeleteView(name)
		}
		return nil
	}
	bottom := maxY - 3
	mid := bottom / 2

	views := []struct {
		name, title    string
		x0, y0, x1, y1 int
	}{
		{viewStatus, "Status", 0, 0, leftColumnWidth, mid},
		{viewInspect, "Lifeform", 0, mid + 1, leftColumnWidth, bottom},
		{viewField, "World", leftColumnWidth + 1, 0, maxX - 1, bottom},
	}
	created := false
	for _, pane := range views {
		v, err := g.SetView(pane.name, pane.x0, pane.y0, pane.x1, pane.y1)
		if err != nil {
			if !errors.Is(err, gocui.ErrUnknownView) || v == nil {
				return err
			}
			v.Title = pane.title
			v.Frame = true
			created = true
		}
	}
	if v, err := g.SetView(viewHelp, -1, bottom, maxX, maxY-1); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) || v == nil {
			return err
		}
		v.Frame = false
		fmt.Fprintln(v, t.helpText())
	}
	if created {
		t.render(g)
	}
	return nil
}

func (t *Terminal) helpText() string {
	var b bytes.Buffer
	b.WriteString("KEYS: ")
	for i, k := range t.keys {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(aurora.Green(k.name).String())
		b.WriteString(": ")
		b.WriteString(k.descr)
	}
	return b.String()
}

func (t *Terminal) cmdQuit(*gocui.View) error { return gocui.ErrQuit }

func (t *Terminal) cmdStep(*gocui.View) error {
	t.running.Store(false)
	t.mu.Lock()
	t.sim.Step()
	t.mu.Unlock()
	t.render(t.g)
	return nil
}

func (t *Terminal) cmdRun(*gocui.View) error {
	t.running.Store(true)
	return nil
}

func (t *Terminal) cmdStop(*gocui.View) error {
	t.running.Store(false)
	t.render(t.g)
	return nil
}

func (t *Terminal) cmdReseed(*gocui.View) error {
	t.mu.Lock()
	t.sim.Reset(time.Now().UnixNano())
	t.hasSelected = false
	t.mu.Unlock()
	t.render(t.g)
	return nil
}

func (t *Terminal) cmdInspect(v *gocui.View) error {
	cx, cy := v.Cursor()
	t.mu.Lock()
	t.selected, t.hasSelected = image.Pt(cx, cy), true
	t.mu.Unlock()
	t.render(t.g)
	return nil
}

func prop(name, format string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+format, values...)
}

// fieldText renders an RGBA frame as one coloured block per cell, cropped to
// maxW x maxH characters. Runs of equal colour share one escape sequence.
func fieldText(frame []byte, size core.Size, maxW, maxH int) string {
	if len(frame) < 4*size.W*size.H {
		return ""
	}
	var b bytes.Buffer
	var run bytes.Buffer
	for y := range min(size.H, maxH) {
		if y != 0 {
			b.WriteByte('\n')
		}
		var runIndex uint8
		for x := range min(size.W, maxW) {
			base := 4 * (y*size.W + x)
			idx := cubeIndex(color.RGBA{R: frame[base], G: frame[base+1], B: frame[base+2], A: frame[base+3]})
			if run.Len() > 0 && idx != runIndex {
				b.WriteString(aurora.Index(runIndex, run.String()).String())
				run.Reset()
			}
			runIndex = idx
			run.WriteString("█")
		}
		if run.Len() > 0 {
			b.WriteString(aurora.Index(runIndex, run.String()).String())
			run.Reset()
		}
	}
	return b.String()
}
