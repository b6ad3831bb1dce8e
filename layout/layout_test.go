package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
	"pgregory.net/rapid"
)

func TestGenerateProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 600).Draw(t, "count")
		radius := rapid.Float64Range(0.01, 100).Draw(t, "radius")

		instances, err := Generate(count, radius)
		if err != nil {
			t.Fatalf("Generate(%d, %v): %v", count, radius, err)
		}
		if len(instances) != count {
			t.Fatalf("expected %d instances, got %d", count, len(instances))
		}

		seen := make(map[r3.Vec]int, count)
		for i, inst := range instances {
			if inst.Index != i {
				t.Fatalf("instance %d carries index %d", i, inst.Index)
			}
			if n := r3.Norm(inst.Position); !scalar.EqualWithinRel(n, radius, 1e-9) {
				t.Fatalf("instance %d at distance %v, want %v", i, n, radius)
			}
			if prev, dup := seen[inst.Position]; dup {
				t.Fatalf("instances %d and %d coincide at %v", prev, i, inst.Position)
			}
			seen[inst.Position] = i
			if !inst.Color.IsValid() {
				t.Fatalf("instance %d has out of gamut color %v", i, inst.Color)
			}
		}
	})
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate(2500, 3)
	require.NoError(t, err)
	b, err := Generate(2500, 3)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateFullWorkingSetHasNoDuplicates(t *testing.T) {
	instances, err := Generate(2500, 3)
	require.NoError(t, err)

	seen := make(map[r3.Vec]struct{}, len(instances))
	for _, inst := range instances {
		_, dup := seen[inst.Position]
		require.False(t, dup, "duplicate position %v", inst.Position)
		seen[inst.Position] = struct{}{}
	}
}

func TestFirstInstanceMatchesFormula(t *testing.T) {
	instances, err := Generate(4, 1)
	require.NoError(t, err)

	phi0 := math.Acos(1 - 2*0.5/4)
	want := r3.Vec{
		X: math.Sin(phi0) * math.Cos(0),
		Y: math.Sin(phi0) * math.Sin(0),
		Z: math.Cos(phi0),
	}
	assert.Equal(t, want, instances[0].Position)
}

func TestAtMatchesGenerate(t *testing.T) {
	instances, err := Generate(50, 2)
	require.NoError(t, err)

	for _, i := range []int{0, 7, 49} {
		inst, err := At(i, 50, 2, DefaultPalette())
		require.NoError(t, err)
		assert.Equal(t, instances[i], inst)
	}

	_, err = At(50, 50, 2, DefaultPalette())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestGenerateEmpty(t *testing.T) {
	instances, err := Generate(0, 3)
	require.NoError(t, err)
	assert.NotNil(t, instances)
	assert.Empty(t, instances)
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name   string
		count  int
		radius float64
	}{
		{"zero radius", 10, 0},
		{"negative radius", 10, -1},
		{"nan radius", 10, math.NaN()},
		{"inf radius", 10, math.Inf(1)},
		{"negative count", -1, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			instances, err := Generate(tc.count, tc.radius)
			assert.Nil(t, instances)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration), "got %v", err)
		})
	}
}

func TestGenerateRejectsInvalidPalette(t *testing.T) {
	p := DefaultPalette()
	p.Saturation = 1.5
	_, err := Generate(10, 1, WithPalette(p))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestHueFollowsSpiralAngle(t *testing.T) {
	instances, err := Generate(100, 1)
	require.NoError(t, err)

	// theta(0) = 0, so the first instance is pure red hue
	h, s, _ := instances[0].Color.Hsl()
	assert.InDelta(t, 0, h, 1e-6)
	assert.InDelta(t, 0.9, s, 1e-6)

	_, theta := Angles(1, 100)
	wantHue := math.Mod(theta, 2*math.Pi) / (2 * math.Pi) * 360
	h1, _, _ := instances[1].Color.Hsl()
	assert.InDelta(t, wantHue, h1, 1e-6)
}

func TestLightnessGradientFollowsIndexOrder(t *testing.T) {
	instances, err := Generate(200, 1)
	require.NoError(t, err)

	_, _, first := instances[0].Color.Hsl()
	_, _, last := instances[199].Color.Hsl()
	assert.InDelta(t, 0.69, first, 1e-6)
	assert.Less(t, last, first)
}

func TestBoostClampsDominantChannel(t *testing.T) {
	c := boost(colorful.Color{R: 0.8, G: 0.2, B: 0.1}, 1.6)
	assert.Equal(t, 1.0, c.R)
	assert.Equal(t, 0.2, c.G)

	c = boost(colorful.Color{R: 0.1, G: 0.2, B: 0.5}, 1.6)
	assert.InDelta(t, 0.8, c.B, 1e-12)
}

func TestBoostedPaletteStaysInGamut(t *testing.T) {
	p := DefaultPalette()
	p.Boost = 1.6
	instances, err := Generate(500, 1, WithPalette(p))
	require.NoError(t, err)
	for _, inst := range instances {
		assert.True(t, inst.Color.IsValid())
	}
}
