package ui

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/effects"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/sim"
	"github.com/litescript/ls-orrery/internal/state"
)

const (
	// Terminal cells are about twice as tall as they are wide.
	cellAspect = 2.0

	starDistance  = 500.0
	orbitSegments = 240
	ringSegments  = 96

	// Longer gaps (suspend, slow terminal) are not replayed.
	maxFrameDelta = 250 * time.Millisecond

	speedStep = 0.1
	scaleStep = 0.1

	// HUD lines below the canvas.
	hudHeight = 3

	// Star glyphs by weight
	glyphStarBright = '✶'
	glyphStarMedium = '✸'
	glyphStarDim    = '·'

	glyphOrbit  = '·'
	glyphRing   = '∙'
	glyphSpot   = '•'
	glyphMeteor = '✦'
	glyphTrail  = '╱'
)

// LabelMode controls how body labels are displayed.
type LabelMode int

const (
	LabelNone    LabelMode = iota // No labels
	LabelFocused                  // Focused, hovered and selected bodies
	LabelAll                      // Every body
)

func (l LabelMode) String() string {
	switch l {
	case LabelNone:
		return "off"
	case LabelFocused:
		return "focus"
	default:
		return "all"
	}
}

type (
	// frameTickMsg advances the engine by the wall time since the last one.
	frameTickMsg time.Time

	// meteorRollMsg is the periodic shooting star spawn roll.
	meteorRollMsg time.Time

	// flashExpireMsg clears a feedback flash if it is still the latest.
	flashExpireMsg struct {
		key string
		seq int
	}
)

// Feedback keys.
const (
	flashSync  = "sync"
	flashReset = "reset"
	flashPlay  = "play"
)

// OrreryModel draws the animated system and routes input to the engine.
type OrreryModel struct {
	engine *sim.Engine
	store  *state.Manager
	log    *logging.Logger

	width  int
	height int

	frame    sim.Frame
	lastTick time.Time
	stars    []astro.Star

	selected  int // index into planets for the speed panel
	labelMode LabelMode
	showSpeed bool

	hover   scene.HoverTracker
	mouseX  int
	mouseY  int
	infoFor catalog.BodyID // body whose info panel is open
	status  string

	sky      *effects.Sky
	feedback *effects.Feedback
	now      func() time.Time
}

// NewOrreryModel wraps an engine. store and log may be nil.
func NewOrreryModel(engine *sim.Engine, store *state.Manager, log *logging.Logger) OrreryModel {
	if store == nil {
		store = state.NewManager(state.DefaultConfig())
	}
	if log == nil {
		log = logging.Discard()
	}
	return OrreryModel{
		engine:    engine,
		store:     store,
		log:       log,
		frame:     engine.Frame(),
		stars:     astro.DefaultStarCatalog().Stars,
		labelMode: LabelFocused,
		showSpeed: true,
		mouseX:    -1,
		mouseY:    -1,
		sky:       effects.NewSky(rand.New(rand.NewSource(time.Now().UnixNano()))),
		feedback:  effects.NewFeedback(),
		now:       time.Now,
	}
}

// Init starts the frame clock and the meteor roll.
func (m OrreryModel) Init() tea.Cmd {
	return tea.Batch(m.frameTickCmd(), meteorRollCmd())
}

// SetSize sets the area available to the view, HUD included.
func (m OrreryModel) SetSize(width, height int) OrreryModel {
	m.width = width
	m.height = height
	return m
}

// Frame returns the last frame the view drew.
func (m OrreryModel) Frame() sim.Frame {
	return m.frame
}

// Hovered returns the body under the pointer, if any.
func (m OrreryModel) Hovered() catalog.BodyID {
	return m.hover.Current()
}

// InfoBody returns the body whose info panel is open, or "".
func (m OrreryModel) InfoBody() catalog.BodyID {
	return m.infoFor
}

func (m OrreryModel) canvasSize() (int, int) {
	h := m.height - hudHeight
	if h < 1 {
		h = 1
	}
	w := m.width
	if w < 1 {
		w = 1
	}
	return w, h
}

func (m OrreryModel) viewport() camera.Viewport {
	w, h := m.canvasSize()
	return camera.Viewport{Width: w, Height: h, CellAspect: cellAspect}
}

func (m OrreryModel) frameTickCmd() tea.Cmd {
	return tea.Tick(m.store.FrameInterval(), func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

func meteorRollCmd() tea.Cmd {
	return tea.Tick(effects.SpawnInterval, func(t time.Time) tea.Msg {
		return meteorRollMsg(t)
	})
}

func flashExpireCmd(key string, seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return flashExpireMsg{key: key, seq: seq}
	})
}

// Update handles input and timer messages.
func (m OrreryModel) Update(msg tea.Msg) (OrreryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case frameTickMsg:
		m.step(time.Time(msg))
		return m, m.frameTickCmd()

	case meteorRollMsg:
		if m.sky.Roll(time.Time(msg)) {
			m.log.Debug("shooting star spawned (%d active)", m.sky.Len())
		}
		return m, meteorRollCmd()

	case flashExpireMsg:
		m.feedback.Expire(msg.key, msg.seq)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// step ticks the engine, publishes the frame and reacts to its events.
func (m *OrreryModel) step(now time.Time) {
	dt := m.store.FrameInterval()
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	m.lastTick = now

	start := time.Now()
	m.frame = m.engine.Tick(dt)
	events := m.engine.Drain()
	m.store.Update(m.frame, time.Since(start), nil)
	m.store.Record(events...)

	for _, ev := range events {
		m.log.Debug("event %s", ev)
		switch ev.Kind {
		case sim.EventFocusStarted, sim.EventReset:
			m.infoFor = ""
		case sim.EventFocusComplete:
			if m.engine.Catalog().Has(ev.Body) {
				m.infoFor = ev.Body
			}
		}
	}
	m.sky.Expire(now)
}

// apply sends a command and refreshes the drawn control state so the HUD
// reflects it before the next tick.
func (m *OrreryModel) apply(cmd sim.Command) bool {
	if err := m.engine.Apply(cmd); err != nil {
		m.log.Warn("command %s rejected: %v", cmd, err)
		m.status = err.Error()
		return false
	}
	m.status = ""
	m.frame.Control = m.engine.Control()
	return true
}

func (m *OrreryModel) flash(key, label string, d time.Duration) tea.Cmd {
	seq := m.feedback.Trigger(key, label, m.now(), d)
	return flashExpireCmd(key, seq, d)
}

func (m OrreryModel) handleKey(msg tea.KeyMsg) (OrreryModel, tea.Cmd) {
	planets := m.engine.Catalog().Planets()
	ctrl := m.frame.Control
	var cmd tea.Cmd

	switch msg.String() {
	case " ":
		m.apply(sim.TogglePlay())
		cmd = m.flash(flashPlay, "", effects.PressDuration)
	case "+", "=":
		m.apply(sim.SetGlobalSpeed(stepped(ctrl.GlobalSpeed, speedStep)))
	case "-", "_":
		m.apply(sim.SetGlobalSpeed(stepped(ctrl.GlobalSpeed, -speedStep)))
	case "]":
		m.apply(sim.SetScale(stepped(ctrl.Scale, scaleStep)))
	case "[":
		m.apply(sim.SetScale(stepped(ctrl.Scale, -scaleStep)))
	case "j", "down":
		if len(planets) > 0 {
			m.selected = (m.selected + 1) % len(planets)
		}
	case "k", "up":
		if len(planets) > 0 {
			m.selected = (m.selected - 1 + len(planets)) % len(planets)
		}
	case ">", ".", "right":
		if id, ok := m.selectedID(); ok {
			m.apply(sim.SetBodySpeed(id, stepped(ctrl.Multiplier(id), speedStep)))
		}
	case "<", ",", "left":
		if id, ok := m.selectedID(); ok {
			m.apply(sim.SetBodySpeed(id, stepped(ctrl.Multiplier(id), -speedStep)))
		}
	case "enter":
		if id, ok := m.selectedID(); ok {
			m.apply(sim.FocusOn(id))
		}
	case "0":
		m.apply(sim.FocusOn(catalog.Sun))
	case "o", "esc":
		m.apply(sim.FocusOn(catalog.Overview))
	case "a":
		if m.apply(sim.SyncAllToGlobal()) {
			cmd = m.flash(flashSync, effects.LabelSynced, effects.LabelDuration)
		}
	case "r":
		if m.apply(sim.ResetAll()) {
			cmd = m.flash(flashReset, effects.LabelReset, effects.LabelDuration)
		}
	case "R":
		m.apply(sim.Reset())
		m.hover.Clear()
	case "t":
		m.apply(sim.ToggleTheme())
	case "l":
		m.labelMode = (m.labelMode + 1) % 3
	case "s":
		m.showSpeed = !m.showSpeed
	}
	return m, cmd
}

// stepped moves v by d on a 0.1 grid so repeated presses do not drift.
func stepped(v, d float64) float64 {
	return math.Round((v+d)*10) / 10
}

func (m OrreryModel) selectedID() (catalog.BodyID, bool) {
	planets := m.engine.Catalog().Planets()
	if m.selected < 0 || m.selected >= len(planets) {
		return "", false
	}
	return planets[m.selected].ID, true
}

// handleMouse resolves the pointer against the scene. Coordinates are
// relative to the canvas origin.
func (m OrreryModel) handleMouse(msg tea.MouseMsg) (OrreryModel, tea.Cmd) {
	w, h := m.canvasSize()
	if msg.X < 0 || msg.Y < 0 || msg.X >= w || msg.Y >= h {
		m.mouseX, m.mouseY = -1, -1
		m.hover.Update("", false)
		return m, nil
	}
	m.mouseX, m.mouseY = msg.X, msg.Y

	body, ok := m.engine.ResolveScreen(float64(msg.X)+0.5, float64(msg.Y)+0.5, m.viewport())

	switch msg.Action {
	case tea.MouseActionMotion:
		if ch := m.hover.Update(body, ok); ch.Changed {
			m.log.Debug("hover %q -> %q", ch.Unhighlight, ch.Show)
		}
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && ok {
			m.apply(sim.FocusOn(body))
		}
	}
	return m, nil
}

// View renders the canvas with the HUD and any open panels.
func (m OrreryModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading orrery..."
	}

	c := m.buildCanvas()
	pal := paletteFor(m.frame.Control.Theme)

	if m.showSpeed {
		c.drawPanel(m.speedPanel(pal), 1, 0, pal)
	}
	if m.infoFor != "" {
		p := m.infoPanel(pal)
		c.drawPanel(p, c.w-p.width()-1, 0, pal)
	}
	if tip, ok := m.tooltip(pal); ok {
		c.drawPanel(tip, m.mouseX+2, m.mouseY+1, pal)
	}

	return c.String() + "\n" + m.renderHUD(pal)
}

func (m OrreryModel) buildCanvas() *canvas {
	w, h := m.canvasSize()
	c := newCanvas(w, h)
	pal := paletteFor(m.frame.Control.Theme)
	pr := camera.NewProjector(m.frame.Camera, camera.DefaultFOVDeg, m.viewport())

	m.drawStarfield(c, pr, pal)
	m.drawOrbits(c, pr, pal)
	m.drawBodies(c, pr, pal)
	m.drawMeteors(c, pal)
	m.drawLabels(c, pr, pal)
	return c
}

func (m OrreryModel) drawStarfield(c *canvas, pr camera.Projector, pal palette) {
	for _, s := range m.stars {
		weight := s.Brightness()
		if weight*pal.StarOpacity < 0.02 {
			continue
		}
		dir := s.Direction().RotateY(m.frame.StarfieldYaw).RotateX(m.frame.StarfieldPitch)
		x, y, _, ok := pr.Project(pr.Eye().Add(dir.Scale(starDistance)))
		if !ok {
			continue
		}
		c.plot(int(x), int(y), starGlyph(weight), pal.starColor(weight), backdropDepth, false)
	}
}

func starGlyph(weight float64) rune {
	switch {
	case weight > 0.6:
		return glyphStarBright
	case weight > 0.3:
		return glyphStarMedium
	default:
		return glyphStarDim
	}
}

func (m OrreryModel) drawOrbits(c *canvas, pr camera.Projector, pal palette) {
	for i, b := range m.engine.Catalog().Planets() {
		color := pal.Orbit
		if i < len(m.frame.OrbitPulse) && m.frame.OrbitPulse[i] > sim.OrbitPulseBase {
			color = pal.OrbitBright
		}
		for k := 0; k < orbitSegments; k++ {
			theta := 2 * math.Pi * float64(k) / orbitSegments
			p := astro.Vec3{X: b.OrbitalDistance}.RotateY(theta)
			x, y, depth, ok := pr.Project(p)
			if !ok {
				continue
			}
			// Orbits sit under the bodies riding on them.
			c.plot(int(x), int(y), glyphOrbit, color, depth+1, false)
		}
	}
}

func (m OrreryModel) bodyColor(id catalog.BodyID, pal palette) (lipgloss.Color, bool) {
	if id == m.hover.Current() {
		return pal.Hover, true
	}
	b, ok := m.engine.Catalog().Get(id)
	if !ok {
		return pal.Text, false
	}
	if b.Kind == catalog.KindStar {
		return pal.Sun, true
	}
	focused := m.frame.Control.Focused == id
	return lipgloss.Color(b.Color), focused
}

func (m OrreryModel) drawBodies(c *canvas, pr camera.Projector, pal palette) {
	for _, t := range m.frame.Bodies {
		radius := t.Radius
		if t.ID == catalog.Sun {
			radius *= m.frame.SunPulse
		}
		color, bold := m.bodyColor(t.ID, pal)
		m.drawSphere(c, pr, t.Position, radius, color, bold)

		if r := t.Ring; r != nil {
			m.drawRing(c, pr, r, color)
		}
		if sp := t.Spot; sp != nil {
			if x, y, depth, ok := pr.Project(sp.Position); ok {
				c.plot(int(x), int(y), glyphSpot, lipgloss.Color("#B5562B"), depth, true)
			}
		}
		if s := t.Satellite; s != nil {
			// The moon highlights with its parent: both pick as the parent.
			sc, sb := lipgloss.Color("#C8C8C8"), false
			if sat, ok := m.engine.Catalog().Get(s.ID); ok && sat.Color != "" {
				sc = lipgloss.Color(sat.Color)
			}
			if t.ID == m.hover.Current() {
				sc, sb = pal.Hover, true
			}
			m.drawSphere(c, pr, s.Position, s.Radius, sc, sb)
		}
	}
}

// drawSphere fills a projected disc, or a single glyph when it is smaller
// than a cell.
func (m OrreryModel) drawSphere(c *canvas, pr camera.Projector, center astro.Vec3, radius float64, color lipgloss.Color, bold bool) {
	x, y, depth, ok := pr.Project(center)
	if !ok {
		return
	}
	rows := pr.RadiusRows(radius, depth)
	cx, cy := int(x), int(y)
	if rows < 0.75 {
		c.plot(cx, cy, '●', color, depth, bold)
		return
	}

	ry := int(math.Ceil(rows))
	rx := int(math.Ceil(rows * cellAspect))
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			fx := float64(dx) / cellAspect
			fy := float64(dy)
			d := math.Sqrt(fx*fx+fy*fy) / rows
			if d > 1 {
				continue
			}
			glyph := '█'
			if d > 0.75 {
				glyph = '▓'
			}
			// Nearer on the front of the sphere.
			c.plot(cx+dx, cy+dy, glyph, color, depth-radius*math.Sqrt(1-d*d), bold)
		}
	}
}

func (m OrreryModel) drawRing(c *canvas, pr camera.Projector, r *sim.RingTransform, color lipgloss.Color) {
	u := r.Normal.Cross(astro.Vec3{X: 1})
	if u.Norm() < 1e-6 {
		u = r.Normal.Cross(astro.Vec3{Z: 1})
	}
	u = u.Normalized()
	v := r.Normal.Cross(u).Normalized()

	for _, rad := range []float64{r.Inner, (r.Inner + r.Outer) / 2, r.Outer} {
		for k := 0; k < ringSegments; k++ {
			theta := 2 * math.Pi * float64(k) / ringSegments
			p := r.Center.Add(u.Scale(rad * math.Cos(theta))).Add(v.Scale(rad * math.Sin(theta)))
			if x, y, depth, ok := pr.Project(p); ok {
				c.plot(int(x), int(y), glyphRing, color, depth, false)
			}
		}
	}
}

func (m OrreryModel) drawMeteors(c *canvas, pal palette) {
	for _, s := range m.sky.Active(m.now()) {
		fx, fy, ok := s.Position(m.now())
		if !ok {
			continue
		}
		x := int(fx * float64(c.w))
		y := int(fy * float64(c.h))
		c.plot(x, y, glyphMeteor, pal.Meteor, meteorDepth, true)
		// Trail points back up-right, where it came from.
		for k := 1; k <= 3; k++ {
			c.plot(x+k*2, y-k, glyphTrail, pal.Muted, meteorDepth, false)
		}
	}
}

func (m OrreryModel) labelled(id catalog.BodyID) bool {
	switch m.labelMode {
	case LabelAll:
		return true
	case LabelFocused:
		if id == m.frame.Control.Focused || id == m.hover.Current() {
			return true
		}
		sel, ok := m.selectedID()
		return ok && sel == id && m.showSpeed
	}
	return false
}

func (m OrreryModel) drawLabels(c *canvas, pr camera.Projector, pal palette) {
	for _, t := range m.frame.Bodies {
		if !m.labelled(t.ID) {
			continue
		}
		b, ok := m.engine.Catalog().Get(t.ID)
		if !ok {
			continue
		}
		x, y, depth, ok := pr.Project(t.Position)
		if !ok {
			continue
		}
		offset := int(math.Ceil(pr.RadiusRows(t.Radius, depth)*cellAspect)) + 2
		color := pal.Label
		bold := false
		if t.ID == m.frame.Control.Focused {
			color, bold = pal.LabelFocus, true
		}
		c.text(int(x)+offset, int(y), b.Name, color, bold)
	}
}

func (m OrreryModel) fpsLabel() string {
	return fmt.Sprintf("%.0f fps", m.frame.FPS)
}
