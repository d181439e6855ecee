package cube

import "errors"

// ErrMalformedManifest is returned when a manifest document is missing
// required structure, such as a volume descriptor without shapes.
var ErrMalformedManifest = errors.New("cube: malformed manifest")

// VolumeDesc describes where the fragments of a volume live and which
// fragment shapes are available.
type VolumeDesc struct {
	Prefix string  `json:"prefix"`
	Ext    string  `json:"ext"`
	Shapes [][]int `json:"shapes"`
}

// AttributeDesc describes an auxiliary attribute volume, e.g. cdp or utm
// coordinates stored alongside the sample data.
type AttributeDesc struct {
	Prefix string   `json:"prefix"`
	Ext    string   `json:"ext"`
	Type   string   `json:"type"`
	Layout string   `json:"layout"`
	Labels []string `json:"labels"`
	Shapes [][]int  `json:"shapes"`
}

// Manifest is the cube manifest document returned by the service.
type Manifest struct {
	Vol         []VolumeDesc    `json:"vol"`
	Attr        []AttributeDesc `json:"attr,omitempty"`
	LineNumbers [][]int         `json:"line-numbers"`
	LineLabels  []string        `json:"line-labels"`
}

// FragmentShape returns the shape of the fragments making up the primary
// volume. Manifests usually carry exactly one volume descriptor with one
// shape; picking the first mirrors how the service plans queries.
func (m *Manifest) FragmentShape() ([]int, error) {
	if len(m.Vol) == 0 || len(m.Vol[0].Shapes) == 0 {
		return nil, ErrMalformedManifest
	}
	return m.Vol[0].Shapes[0], nil
}

// CubeShape returns the extent of the cube in every dimension, derived
// from the line numbers.
func (m *Manifest) CubeShape() []int {
	shape := make([]int, 0, len(m.LineNumbers))
	for _, lines := range m.LineNumbers {
		shape = append(shape, len(lines))
	}
	return shape
}

// NDims returns the number of dimensions of the cube.
func (m *Manifest) NDims() int {
	return len(m.LineNumbers)
}

// LineIndex returns the position of lineno in dimension dim, or -1 when
// the line is not present.
func (m *Manifest) LineIndex(dim, lineno int) int {
	if dim < 0 || dim >= len(m.LineNumbers) {
		return -1
	}
	for i, n := range m.LineNumbers[dim] {
		if n == lineno {
			return i
		}
	}
	return -1
}
