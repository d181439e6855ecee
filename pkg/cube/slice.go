package cube

import "fmt"

// ProcessHeader describes how a query result was split up and how to
// interpret the tiles that follow.
//
// The index is laid out linearly: the first NDims entries are the extents
// of each dimension, followed by the line numbers for each dimension in
// order. Index() unpacks it.
type ProcessHeader struct {
	Pid        string   `json:"pid"`
	Bundles    int      `json:"nbundles"`
	NDims      int      `json:"ndims"`
	Index      []int    `json:"index"`
	Attributes []string `json:"attributes,omitempty"`
}

// DimIndex returns the per-dimension line numbers unpacked from the flat
// index array.
func (h *ProcessHeader) DimIndex() ([][]int, error) {
	if h.NDims < 0 || len(h.Index) < h.NDims {
		return nil, fmt.Errorf("cube: bad process header index (ndims=%d, len=%d)", h.NDims, len(h.Index))
	}
	dims := make([][]int, h.NDims)
	pos := h.NDims
	for d := 0; d < h.NDims; d++ {
		extent := h.Index[d]
		if extent < 0 || pos+extent > len(h.Index) {
			return nil, fmt.Errorf("cube: bad process header index (ndims=%d, len=%d)", h.NDims, len(h.Index))
		}
		dims[d] = h.Index[pos : pos+extent]
		pos += extent
	}
	return dims, nil
}

// Shape returns the extents of the result, i.e. the first NDims entries
// of the index.
func (h *ProcessHeader) Shape() []int {
	if h.NDims < 0 || len(h.Index) < h.NDims {
		return nil
	}
	return h.Index[:h.NDims]
}

// Tile is one rectangular chunk of a query result. The stride fields
// describe where the tile's values go in the assembled output array.
type Tile struct {
	Iterations  int       `json:"iterations"`
	ChunkSize   int       `json:"chunk-size"`
	InitialSkip int       `json:"initial-skip"`
	Superstride int       `json:"superstride"`
	Substride   int       `json:"substride"`
	Values      []float32 `json:"v"`
}

// SliceResult is the response to a slice query: a process header plus the
// tiles making up the slice.
type SliceResult struct {
	Header ProcessHeader `json:"header"`
	Tiles  []Tile        `json:"tiles"`
}

// Assemble writes the tiles into a dense row-major array matching the
// header shape. The layout fields come off the wire, so they are
// validated before being used as slice bounds.
func (r *SliceResult) Assemble() ([]float32, error) {
	shape := r.Header.Shape()
	if shape == nil {
		return nil, fmt.Errorf("cube: slice result has no shape")
	}
	size := 1
	for _, extent := range shape {
		if extent < 0 {
			return nil, fmt.Errorf("cube: negative extent %d in result shape", extent)
		}
		size *= extent
	}
	out := make([]float32, size)
	for _, tile := range r.Tiles {
		if tile.InitialSkip < 0 || tile.ChunkSize < 0 || tile.Substride < 0 || tile.Superstride < 0 {
			return nil, fmt.Errorf("cube: tile has negative layout fields")
		}
		src := 0
		dst := tile.InitialSkip
		for i := 0; i < tile.Iterations; i++ {
			if src+tile.ChunkSize > len(tile.Values) || dst+tile.ChunkSize > len(out) {
				return nil, fmt.Errorf("cube: tile overruns result (iteration %d)", i)
			}
			copy(out[dst:dst+tile.ChunkSize], tile.Values[src:src+tile.ChunkSize])
			src += tile.Substride
			dst += tile.Superstride
		}
	}
	return out, nil
}
