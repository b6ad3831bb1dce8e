package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/lixenwraith/chromasphere/layout"
	"github.com/lixenwraith/chromasphere/store"
	"github.com/lixenwraith/chromasphere/vmath"
)

func buildTable(t *testing.T, n int) (*store.Store, Table) {
	t.Helper()
	st, err := store.Build(n, 3, layout.DefaultPalette(), store.WithMeshRotation(vmath.Euler{X: -0.7, Y: -2.5, Z: 2}))
	require.NoError(t, err)
	tbl, err := Build(st, 3)
	require.NoError(t, err)
	return st, tbl
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"yaml": FormatYAML, "YML": FormatYAML, " json ": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("csv")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestBuildMatchesStore(t *testing.T) {
	st, tbl := buildTable(t, 50)
	require.Len(t, tbl.Instances, 50)
	assert.Equal(t, 50, tbl.Count)
	assert.Equal(t, [3]float64{-0.7, -2.5, 2}, tbl.Rotation)

	for _, row := range []Row{tbl.Instances[0], tbl.Instances[49]} {
		inst, err := st.At(row.Index)
		require.NoError(t, err)
		assert.Equal(t, inst.Color.Hex(), row.Color)
		assert.Equal(t, inst.Position.X, row.Position[0])

		r := row.World
		assert.True(t, scalar.EqualWithinAbs(r[0]*r[0]+r[1]*r[1]+r[2]*r[2], 9, 1e-9), "world position stays on the sphere")
	}
}

func TestWriteRead(t *testing.T) {
	_, tbl := buildTable(t, 8)
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, tbl, f))
			assert.Contains(t, buf.String(), tbl.Instances[3].Color)

			back, err := Read(&buf, f)
			require.NoError(t, err)
			assert.Equal(t, tbl.Count, back.Count)
			require.Len(t, back.Instances, 8)
			assert.Equal(t, tbl.Instances[7].Color, back.Instances[7].Color)
			assert.InDelta(t, tbl.Instances[7].Position[2], back.Instances[7].Position[2], 1e-12)
		})
	}
}

func TestYAMLFlowPositions(t *testing.T) {
	_, tbl := buildTable(t, 1)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl, FormatYAML))
	assert.True(t, strings.Contains(buf.String(), "position: ["), buf.String())
}

func TestEmptyStore(t *testing.T) {
	_, tbl := buildTable(t, 0)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl, FormatJSON))
	assert.Contains(t, buf.String(), `"instances": []`)
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Table{}, "csv")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	_, err = Read(strings.NewReader(""), "csv")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}
