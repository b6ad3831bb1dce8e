package render

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/chromasphere/camera"
	"github.com/lixenwraith/chromasphere/event"
	"github.com/lixenwraith/chromasphere/interaction"
	"github.com/lixenwraith/chromasphere/parameter"
	"github.com/lixenwraith/chromasphere/scene"
	"github.com/lixenwraith/chromasphere/store"
	"github.com/lixenwraith/chromasphere/vmath"
)

// projected is one instance in cell space
type projected struct {
	cx, cy float64
	depth  float64
	index  int
}

// Surface draws scene frames into a tcell screen and resolves pointer positions to instances
// Upload runs on the frame loop; HitTest may run on the input goroutine
type Surface struct {
	screen tcell.Screen
	store  *store.Store
	buf    *Buffer
	logger *slog.Logger

	mu     sync.RWMutex
	points []projected // pickable instances of the last frame, far to near

	cursor atomic.Int32
}

// SurfaceOption configures a Surface
type SurfaceOption func(*Surface)

// WithLogger sets the logger; default slog.Default()
func WithLogger(l *slog.Logger) SurfaceOption {
	return func(s *Surface) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSurface creates a surface drawing st into an initialized screen
func NewSurface(screen tcell.Screen, st *store.Store, opts ...SurfaceOption) *Surface {
	w, h := screen.Size()
	s := &Surface{
		screen: screen,
		store:  st,
		buf:    NewBuffer(w, h, RGBBlack),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push implements event.Sink for tracker output
func (s *Surface) Push(ev event.Event) {
	if ev.Type != event.EventCursor {
		return
	}
	if p, ok := ev.Payload.(*event.CursorPayload); ok {
		s.cursor.Store(int32(p.Style))
	}
}

// Cursor returns the last requested cursor style
func (s *Surface) Cursor() event.CursorStyle {
	return event.CursorStyle(s.cursor.Load())
}

// Resize resynchronizes the screen after a terminal resize
func (s *Surface) Resize() {
	s.screen.Sync()
}

// Upload draws one frame
func (s *Surface) Upload(f scene.Frame) {
	w, h := s.screen.Size()
	if bw, bh := s.buf.Size(); bw != w || bh != h {
		s.buf.Resize(w, h)
	} else {
		s.buf.Clear()
	}

	viewH := h - parameter.HUDRows
	var pickable []projected
	if viewH > 0 && w > 0 {
		cam := s.viewCamera(f, w, viewH)
		if !zeroScale(f.MeshScale) {
			pickable = s.project(cam, f, w, viewH)
			if f.CrowdOpacity > 0 {
				s.drawCrowd(pickable, f)
			}
		}
		if f.FocusOpacity > 0 {
			s.drawOrb(cam, f, w, viewH)
		}
	}
	s.drawHUD(f, w, h)

	s.buf.Flush(s.screen)
	s.screen.Show()

	s.mu.Lock()
	s.points = pickable
	s.mu.Unlock()
}

// HitTest returns the instance drawn nearest to cell (x, y) within the pick radius, or interaction.None
// Ties go to the instance closest to the camera
func (s *Surface) HitTest(x, y int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	px, py := float64(x)+0.5, float64(y)+0.5
	best := interaction.None
	bestD := parameter.PickRadiusCells * parameter.PickRadiusCells
	bestDepth := math.Inf(1)
	for _, p := range s.points {
		dx := (p.cx - px) / parameter.CellAspect
		dy := p.cy - py
		d := dx*dx + dy*dy
		if d < bestD || (d == bestD && p.depth < bestDepth) {
			best, bestD, bestDepth = p.index, d, p.depth
		}
	}
	return best
}

// Locate returns the cell where instance i was drawn in the last frame
func (s *Surface) Locate(i int) (x, y int, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.points {
		if p.index == i {
			return int(p.cx), int(p.cy), true
		}
	}
	return 0, 0, false
}

func (s *Surface) viewCamera(f scene.Frame, w, viewH int) *camera.Camera {
	cam := camera.New(camera.Pose{Position: f.CameraPosition, LookAt: f.CameraLookAt}, parameter.CameraFOV, parameter.CameraNear)
	cam.Aspect = float64(w) / (float64(viewH) * parameter.CellAspect)
	return cam
}

func toCell(x, y float64, w, viewH int) (cx, cy float64) {
	return (x + 1) / 2 * float64(w), (1 - y) / 2 * float64(viewH)
}

func zeroScale(v r3.Vec) bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// breathe is the per-instance wobble of the breathing material
func breathe(i int, world r3.Vec, t float64) r3.Vec {
	phase := float64(i) * parameter.BreathPhaseStep
	sn := math.Sin(t + phase)
	cs := math.Cos(sn + phase)
	normal := r3.Unit(world)
	off := r3.Add(r3.Scale(sn*parameter.BreathAmplitude, normal), r3.Scale(parameter.BreathAmplitude, r3.Vec{X: sn, Y: cs}))
	return r3.Add(world, off)
}

func (s *Surface) project(cam *camera.Camera, f scene.Frame, w, viewH int) []projected {
	pts := make([]projected, 0, s.store.Len())
	s.store.Each(func(i int, world r3.Vec) bool {
		p := r3.Vec{X: world.X * f.MeshScale.X, Y: world.Y * f.MeshScale.Y, Z: world.Z * f.MeshScale.Z}
		p = breathe(i, p, f.Time)
		x, y, depth, ok := cam.Project(p)
		if !ok {
			return true
		}
		cx, cy := toCell(x, y, w, viewH)
		if cx < 0 || cy < 0 || cx >= float64(w) || cy >= float64(viewH) {
			return true
		}
		pts = append(pts, projected{cx: cx, cy: cy, depth: depth, index: i})
		return true
	})

	// Painter's algorithm: far to near
	sort.Slice(pts, func(a, b int) bool {
		return pts[a].depth > pts[b].depth
	})
	return pts
}

func (s *Surface) drawCrowd(pts []projected, f scene.Frame) {
	if len(pts) == 0 {
		return
	}
	far, near := pts[0].depth, pts[len(pts)-1].depth
	span := far - near

	for _, p := range pts {
		c, err := s.store.ColorAt(p.index)
		if err != nil {
			continue
		}
		color := FromColor(c)

		depthT := 0.0
		if span > 0 {
			depthT = (p.depth - near) / span
		}
		color = Scale(color, 1.0-depthT*0.4)

		glyph := '•'
		if depthT < 0.5 {
			glyph = '●'
		}
		switch int32(p.index) {
		case f.Selected:
			glyph = '◉'
			color = Lerp(color, RGBWhite, parameter.SelectedOutlineStrength)
		case f.Hovered:
			glyph = '◎'
			color = Lerp(color, RGBWhite, parameter.HoverOutlineStrength)
		}

		s.buf.SetFgOnly(int(p.cx), int(p.cy), glyph, Blend(RGBBlack, color, f.CrowdOpacity))
	}
}

func (s *Surface) drawOrb(cam *camera.Camera, f scene.Frame, w, viewH int) {
	x, y, depth, ok := cam.Project(f.FocusPos)
	if !ok {
		return
	}
	cx, cy := toCell(x, y, w, viewH)
	focal := 1 / math.Tan(parameter.CameraFOV*math.Pi/360)
	radius := parameter.OrbRadius * focal / depth * float64(viewH) / 2
	if radius < 0.4 {
		radius = 0.4
	}

	base := FromColor(f.FocusColor)
	glow := radius * 1.6
	minX := max(0, int(cx-glow*parameter.CellAspect-1))
	maxX := min(w-1, int(cx+glow*parameter.CellAspect+1))
	minY := max(0, int(cy-glow-1))
	maxY := min(viewH-1, int(cy+glow+1))

	for sy := minY; sy <= maxY; sy++ {
		for sx := minX; sx <= maxX; sx++ {
			nx := (float64(sx) + 0.5 - cx) / (radius * parameter.CellAspect)
			ny := (float64(sy) + 0.5 - cy) / radius
			distSq := nx*nx + ny*ny
			if distSq > 2.5 {
				continue
			}

			if distSq > 1 {
				// Outer glow with exponential falloff
				falloff := math.Exp(-(math.Sqrt(distSq)-1)*3) * 0.5
				s.buf.Set(sx, sy, ' ', RGBBlack, Scale(base, falloff), BlendScreen, f.FocusOpacity*0.7)
				continue
			}

			nz := math.Sqrt(1 - distSq)
			rim := (1 - nz) * (1 - nz) * 0.8
			intensity := 0.5 + rim*0.5
			if f.Noise > 0 {
				intensity *= 1 - f.Noise*0.6*grain(sx, sy, f.Time)
			}
			s.buf.Set(sx, sy, ' ', RGBBlack, Scale(base, intensity+nz*0.3), BlendAlpha, f.FocusOpacity)
		}
	}
}

// grain is a deterministic per-cell noise value in [0, 1) that shifts ten times per second
func grain(x, y int, t float64) float64 {
	h := uint32(x)*374761393 + uint32(y)*668265263 + uint32(int64(t*10))*2246822519
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h) / float64(math.MaxUint32+1)
}

func (s *Surface) drawHUD(f scene.Frame, w, h int) {
	if h < parameter.HUDRows || w <= 0 {
		return
	}
	statusY := h - 2
	controlY := h - 1

	x := s.buf.Text(1, statusY, f.Phase, RGBWhite)
	if f.Selected >= 0 {
		label := fmt.Sprintf("  selected %d", f.Selected)
		color := RGBWhite
		if c, err := s.store.ColorAt(int(f.Selected)); err == nil {
			label += " " + c.Clamped().Hex()
			color = FromColor(c)
		}
		x = s.buf.Text(x, statusY, label, color)
	}
	if f.Hovered >= 0 {
		x = s.buf.Text(x, statusY, fmt.Sprintf("  hover %d", f.Hovered), RGBDim)
	}
	if s.Cursor() == event.CursorPointer {
		s.buf.Text(x, statusY, "  ☝", RGBDim)
	}

	if f.Options > 0 {
		const slots = 10
		filled := int(math.Round(vmath.Clamp01(f.Noise) * slots))
		bar := fmt.Sprintf("noise [%s%s] %.2f", strings.Repeat("=", filled), strings.Repeat("-", slots-filled), f.Noise)
		s.buf.Text(max(0, w-len(bar)-1), statusY, bar, Lerp(RGBBlack, RGBWhite, f.Options))
	}

	s.buf.Text(1, controlY, "click:select  enter:continue  b:back  +/-:noise  arrows:orbit  q:quit", RGBDim)
}
