package cube

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManifestRoundTrip(t *testing.T) {
	raw := `{
		"vol": [{"prefix": "src/", "ext": "f32", "shapes": [[64, 64, 64]]}],
		"line-numbers": [[1, 2, 3], [10, 11], [0, 4, 8, 12]],
		"line-labels": ["inline", "crossline", "time"]
	}`

	var m Manifest
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	shape, err := m.FragmentShape()
	require.NoError(t, err)
	require.Equal(t, []int{64, 64, 64}, shape)
	require.Equal(t, []int{3, 2, 4}, m.CubeShape())
	require.Equal(t, 3, m.NDims())
	require.Equal(t, 1, m.LineIndex(1, 11))
	require.Equal(t, -1, m.LineIndex(1, 12))
	require.Equal(t, -1, m.LineIndex(5, 1))
}

func TestManifestMissingShapes(t *testing.T) {
	var m Manifest
	_, err := m.FragmentShape()
	require.ErrorIs(t, err, ErrMalformedManifest)

	m.Vol = []VolumeDesc{{Prefix: "src/"}}
	_, err = m.FragmentShape()
	require.ErrorIs(t, err, ErrMalformedManifest)
}

func TestCubeListNextToken(t *testing.T) {
	list := &CubeList{
		Cubes: []string{"a", "b"},
		Links: []Link{
			{Rel: "self", Href: "http://api.example.com/cubes"},
			{Rel: "Next", Href: "http://api.example.com/cubes?token=abc"},
		},
	}
	require.Equal(t, "abc", list.NextToken())

	require.Equal(t, "", (&CubeList{}).NextToken())
	var nilList *CubeList
	require.Nil(t, nilList.NextLink())
}

func TestProcessHeaderDimIndex(t *testing.T) {
	h := ProcessHeader{
		NDims: 2,
		Index: []int{3, 5, 1, 2, 3, 10, 11, 12, 13, 14},
	}
	dims, err := h.DimIndex()
	require.NoError(t, err)
	require.Equal(t, [][]int{{1, 2, 3}, {10, 11, 12, 13, 14}}, dims)
	require.Equal(t, []int{3, 5}, h.Shape())
}

func TestProcessHeaderBadIndex(t *testing.T) {
	h := ProcessHeader{NDims: 2, Index: []int{3, 5, 1}}
	_, err := h.DimIndex()
	require.Error(t, err)
}

func TestSliceAssemble(t *testing.T) {
	// 2x4 result assembled from two 2x2 tiles.
	result := SliceResult{
		Header: ProcessHeader{NDims: 2, Index: []int{2, 4, 0, 1, 0, 1, 2, 3}},
		Tiles: []Tile{
			{
				Iterations:  2,
				ChunkSize:   2,
				InitialSkip: 0,
				Superstride: 4,
				Substride:   2,
				Values:      []float32{1, 2, 5, 6},
			},
			{
				Iterations:  2,
				ChunkSize:   2,
				InitialSkip: 2,
				Superstride: 4,
				Substride:   2,
				Values:      []float32{3, 4, 7, 8},
			},
		},
	}

	values, err := result.Assemble()
	require.NoError(t, err)
	require.Equal(t, []float32{1, 2, 3, 4, 5, 6, 7, 8}, values)
}

func TestSliceAssembleOverrun(t *testing.T) {
	result := SliceResult{
		Header: ProcessHeader{NDims: 1, Index: []int{2, 0, 1}},
		Tiles: []Tile{
			{Iterations: 2, ChunkSize: 2, Superstride: 2, Substride: 2, Values: []float32{1, 2}},
		},
	}
	_, err := result.Assemble()
	require.Error(t, err)
}

func TestSliceAssembleRejectsNegativeLayout(t *testing.T) {
	// layout fields come off the wire; none of these may panic
	tiles := []Tile{
		{Iterations: 1, ChunkSize: 2, InitialSkip: -2, Superstride: 2, Substride: 2, Values: []float32{1, 2}},
		{Iterations: 1, ChunkSize: -1, Superstride: 2, Substride: 2, Values: []float32{1, 2}},
		{Iterations: 1, ChunkSize: 2, Superstride: -4, Substride: 2, Values: []float32{1, 2}},
		{Iterations: 1, ChunkSize: 2, Superstride: 2, Substride: -4, Values: []float32{1, 2}},
	}
	for _, tile := range tiles {
		result := SliceResult{
			Header: ProcessHeader{NDims: 1, Index: []int{4, 0, 1, 2, 3}},
			Tiles:  []Tile{tile},
		}
		_, err := result.Assemble()
		require.Error(t, err)
	}
}

func TestSliceAssembleRejectsNegativeExtent(t *testing.T) {
	result := SliceResult{
		Header: ProcessHeader{NDims: 2, Index: []int{2, -4, 0, 1, 0, 1}},
	}
	_, err := result.Assemble()
	require.Error(t, err)
}
