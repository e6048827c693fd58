// Package tui is the interactive terminal frontend: a preset picker and a
// live view that steps the integrator in real time.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tyl-create/elec-n/internal/charge"
	"github.com/tyl-create/elec-n/internal/dynamics"
	"github.com/tyl-create/elec-n/internal/field"
	"github.com/tyl-create/elec-n/internal/metrics"
	"github.com/tyl-create/elec-n/internal/scene"
	"github.com/tyl-create/elec-n/internal/viz"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
	historyCap   = 600
	trailCap     = 240
	tickRate     = time.Second / 60

	velocityTickScale = 0.3
)

// liveTraceOptions trades line fidelity for frame rate; the lines command
// renders the full default trace.
var liveTraceOptions = viz.TraceOptions{
	SeedsPerSource: 8,
	SeedRadius:     0.15,
	Step:           0.08,
	MaxSteps:       120,
	Bounds:         8,
}

var paramNames = []string{"damping", "dt", "k"}

type TickMsg time.Time

// snapshot stores one stepped state for replay scrubbing.
type snapshot struct {
	sources []charge.Source
	t       float64
	energy  float64
}

// Model is the live simulation view. It owns a mutable copy of the scene
// and advances it on every tick while running.
type Model struct {
	name    string
	initial []charge.Source
	sources []charge.Source

	eval   field.Evaluator
	integ  dynamics.Integrator
	energy *metrics.Energy
	dt     float64
	t      float64

	initialK, initialDt, initialDamping float64

	canvas *viz.Canvas
	camera *viz.Camera
	trails [][]r3.Vec

	spring     harmonica.Spring
	zoomVel    float64
	zoomTarget float64

	running   bool
	showHelp  bool
	showLines bool
	showAxes  bool

	paramSel int

	energyHistory []float64
	history       []snapshot
	playHead      int
}

// NewLive builds the live view for a scene config.
func NewLive(cfg *scene.Config) (Model, error) {
	sources, err := cfg.Build()
	if err != nil {
		return Model{}, err
	}
	eval := cfg.Evaluator()
	integ := cfg.Integrator()

	return Model{
		name:           cfg.Name,
		initial:        charge.Clone(sources),
		sources:        sources,
		eval:           eval,
		integ:          integ,
		energy:         metrics.NewEnergy(eval),
		dt:             cfg.Dt,
		initialK:       cfg.K,
		initialDt:      cfg.Dt,
		initialDamping: integ.Damping,
		canvas:         viz.NewCanvas(canvasWidth, canvasHeight),
		camera:         viz.NewCamera(),
		trails:         make([][]r3.Vec, len(sources)),
		spring:         harmonica.NewSpring(harmonica.FPS(60), 6.0, 0.9),
		zoomTarget:     1.0,
		running:        true,
		playHead:       -1,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "tab":
			m.paramSel = (m.paramSel + 1) % len(paramNames)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(1 / 1.05)
		case "f":
			m.showLines = !m.showLines
		case "a":
			m.showAxes = !m.showAxes
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.zoomTarget = math.Min(10, m.zoomTarget*1.2)
		case "-", "_":
			m.zoomTarget = math.Max(0.1, m.zoomTarget/1.2)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.step()
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		// Zoom glides toward its target on a spring instead of snapping.
		m.camera.Zoom, m.zoomVel = m.spring.Update(m.camera.Zoom, m.zoomVel, m.zoomTarget)
		return m, tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances the scene one integrator step and records history.
func (m *Model) step() {
	m.sources = m.integ.Step(m.sources, m.dt)
	m.t += m.dt

	m.energy.Observe(m.sources, m.t)
	e := m.energy.Value()

	m.energyHistory = append(m.energyHistory, e)
	if len(m.energyHistory) > historyCap {
		m.energyHistory = m.energyHistory[1:]
	}

	m.history = append(m.history, snapshot{sources: charge.Clone(m.sources), t: m.t, energy: e})
	if len(m.history) > historyCap {
		m.history = m.history[1:]
	}

	for i := range m.sources {
		if m.sources[i].Fixed {
			continue
		}
		m.trails[i] = append(m.trails[i], m.sources[i].Position)
		if len(m.trails[i]) > trailCap {
			m.trails[i] = m.trails[i][1:]
		}
	}
}

// scrub moves the replay head through recorded history.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

// reset restores the initial scene and tuning.
func (m *Model) reset() {
	m.t = 0
	m.sources = charge.Clone(m.initial)
	m.trails = make([][]r3.Vec, len(m.initial))
	m.energyHistory = m.energyHistory[:0]
	m.history = m.history[:0]
	m.playHead = -1
	m.dt = m.initialDt
	m.integ.Damping = m.initialDamping
	m.setK(m.initialK)
}

// setK rebuilds the evaluator; the integrator and the energy metric hold
// their own copies and must follow.
func (m *Model) setK(k float64) {
	m.eval = field.New(k, m.eval.Samples)
	m.integ.Eval = m.eval
	m.energy = metrics.NewEnergy(m.eval)
}

func (m *Model) adjustParam(factor float64) {
	switch paramNames[m.paramSel] {
	case "damping":
		m.integ.Damping = math.Min(1.0, m.integ.Damping*factor)
	case "dt":
		m.dt *= factor
	case "k":
		m.setK(m.eval.K * factor)
	}
}

func (m *Model) paramValue(name string) float64 {
	switch name {
	case "damping":
		return m.integ.Damping
	case "dt":
		return m.dt
	case "k":
		return m.eval.K
	}
	return 0
}

func (m *Model) initialParam(name string) float64 {
	var v float64
	switch name {
	case "damping":
		v = m.initialDamping
	case "dt":
		v = m.initialDt
	case "k":
		v = m.initialK
	}
	if v == 0 {
		v = 1e-6
	}
	return v
}

// draw renders one state onto the canvas.
func (m *Model) draw(sources []charge.Source) {
	m.canvas.Clear()

	wf := viz.BuildSceneWireframe(sources, velocityTickScale)
	for _, trail := range m.trails {
		wf.AddPolyline(trail, false)
	}
	if m.showLines {
		for _, line := range viz.TraceFieldLines(m.eval, sources, liveTraceOptions) {
			wf.AddPolyline(line, false)
		}
	}
	if m.showAxes {
		axes := viz.AxesWireframe(2)
		wf.Edges = append(wf.Edges, axes.Edges...)
	}

	viz.Render(m.canvas, wf, m.camera)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (m Model) View() string {
	sources, t := m.sources, m.t
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	if m.playHead >= 0 && m.playHead < len(m.history) {
		snap := m.history[m.playHead]
		sources, t = snap.sources, snap.t
		status = fmt.Sprintf("REPLAY %.2fs", t)
	}

	m.draw(sources)
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", t)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3f", energy)) + "\n")
	s.WriteString(labelStyle.Render("Sources") + valueStyle.Render(fmt.Sprintf("%d", len(sources))) + "\n")
	s.WriteString(labelStyle.Render("Zoom") + valueStyle.Render(fmt.Sprintf("%.2fx", m.camera.Zoom)) + "\n")
	s.WriteString(labelStyle.Render("Field lines") + valueStyle.Render(onOff(m.showLines)) + "\n")
	s.WriteString(labelStyle.Render("Axes") + valueStyle.Render(onOff(m.showAxes)) + "\n")

	s.WriteString("\nPARAMETERS\n")
	for i, name := range paramNames {
		val, initial := m.paramValue(name), m.initialParam(name)
		barWidth := 10
		ratio := val / (2 * initial)
		if ratio > 1 {
			ratio = 1
		} else if ratio < 0 {
			ratio = 0
		}
		filled := int(ratio * float64(barWidth))
		bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
		line := fmt.Sprintf("%-10s %s %.4g", name, bar, val)
		if i == m.paramSel {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nF:Lines A:Axes ?:Help\nX/Y/Z:Rotate +/-:Zoom\n[ ]:Replay Tab ↑↓:Tune"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset scene              ║
║  Q        - Quit                     ║
║  F        - Toggle field lines       ║
║  A        - Toggle axes              ║
║  X/Y/Z    - Rotate camera (shift -)  ║
║  +/-      - Zoom in/out              ║
║  Tab      - Cycle parameters         ║
║  Up/Down  - Tune parameter (±5%)     ║
║  [ ]      - Replay scrub             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
