// Package store holds the generated instance set for the lifetime of a scene.
//
// A Store is immutable after construction and safe to read from the render
// path once per frame. The only mutable part is the color lookup cache, which
// is filled lazily and never changes a value once written.
package store

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/chromasphere/layout"
	"github.com/lixenwraith/chromasphere/vmath"
)

// ErrIndexOutOfRange is returned for any lookup outside [0, Len())
var ErrIndexOutOfRange = errors.New("index out of range")

// Store is the per-scene instance set
type Store struct {
	positions []r3.Vec
	world     []r3.Vec
	colors    []float32 // RGB triplets, instanceColor attribute layout
	rotation  vmath.Euler

	cacheMu sync.Mutex
	cache   []*colorful.Color
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// Option configures a Store
type Option func(*Store)

// WithMeshRotation sets the instanced mesh orientation used by WorldPosition
func WithMeshRotation(rot vmath.Euler) Option {
	return func(s *Store) {
		s.rotation = rot
	}
}

// New copies the generated instances into a store
func New(instances []layout.Instance, opts ...Option) *Store {
	s := &Store{
		positions: make([]r3.Vec, len(instances)),
		colors:    make([]float32, len(instances)*3),
		cache:     make([]*colorful.Color, len(instances)),
	}
	for i, inst := range instances {
		s.positions[i] = inst.Position
		s.colors[i*3] = float32(inst.Color.R)
		s.colors[i*3+1] = float32(inst.Color.G)
		s.colors[i*3+2] = float32(inst.Color.B)
	}
	for _, opt := range opts {
		opt(s)
	}

	s.world = make([]r3.Vec, len(s.positions))
	for i, p := range s.positions {
		s.world[i] = s.rotation.Rotate(p)
	}
	return s
}

// Build generates the layout and wraps it in a store
// Generation errors fail the call without returning a partial store
func Build(count int, radius float64, palette layout.Palette, opts ...Option) (*Store, error) {
	instances, err := layout.Generate(count, radius, layout.WithPalette(palette))
	if err != nil {
		return nil, fmt.Errorf("build instance store: %w", err)
	}
	return New(instances, opts...), nil
}

// Len returns the number of instances
func (s *Store) Len() int {
	return len(s.positions)
}

// Valid reports whether i addresses an instance
func (s *Store) Valid(i int) bool {
	return i >= 0 && i < len(s.positions)
}

func (s *Store) check(i int) error {
	if !s.Valid(i) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, len(s.positions))
	}
	return nil
}

// At returns the position and color of instance i
func (s *Store) At(i int) (layout.Instance, error) {
	if err := s.check(i); err != nil {
		return layout.Instance{}, err
	}
	c, _ := s.ColorAt(i)
	return layout.Instance{Index: i, Position: s.positions[i], Color: c}, nil
}

// Position returns the local (mesh space) position of instance i
func (s *Store) Position(i int) (r3.Vec, error) {
	if err := s.check(i); err != nil {
		return r3.Vec{}, err
	}
	return s.positions[i], nil
}

// WorldPosition returns instance i transformed by the mesh orientation
// Equivalent to decomposing meshWorld * instanceMatrix for an unscaled mesh at the origin
func (s *Store) WorldPosition(i int) (r3.Vec, error) {
	if err := s.check(i); err != nil {
		return r3.Vec{}, err
	}
	return s.world[i], nil
}

// Rotation returns the mesh orientation
func (s *Store) Rotation() vmath.Euler {
	return s.rotation
}

// ColorAt returns the display color of instance i
// Each index is converted from the flat buffer at most once
func (s *Store) ColorAt(i int) (colorful.Color, error) {
	if err := s.check(i); err != nil {
		return colorful.Color{}, err
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if c := s.cache[i]; c != nil {
		s.hits.Add(1)
		return *c, nil
	}
	s.misses.Add(1)
	c := &colorful.Color{
		R: float64(s.colors[i*3]),
		G: float64(s.colors[i*3+1]),
		B: float64(s.colors[i*3+2]),
	}
	s.cache[i] = c
	return *c, nil
}

// CacheStats returns color cache hits and misses
func (s *Store) CacheStats() (hits, misses uint64) {
	return s.hits.Load(), s.misses.Load()
}

// Colors returns the flat RGB buffer for upload; callers must not modify it
func (s *Store) Colors() []float32 {
	return s.colors
}

// Matrix returns the column-major instance transform (translation only)
func (s *Store) Matrix(i int) ([16]float64, error) {
	p, err := s.Position(i)
	if err != nil {
		return [16]float64{}, err
	}
	return [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		p.X, p.Y, p.Z, 1,
	}, nil
}

// Each calls fn with the world position of every instance in index order
// Used by the render path; stops early when fn returns false
func (s *Store) Each(fn func(i int, world r3.Vec) bool) {
	for i, p := range s.world {
		if !fn(i, p) {
			return
		}
	}
}
