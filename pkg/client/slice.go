package cubeclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cubeworks/go-cube-client/pkg/cube"
)

// QueryService executes queries against a single cube.
type QueryService struct {
	client *Client
}

// Slice fetches one slice of a cube: all samples along dimension dim at
// line number lineno.
func (s *QueryService) Slice(ctx context.Context, guid string, dim, lineno int, opts ...RequestOption) (*cube.SliceResult, error) {
	if guid == "" {
		return nil, fmt.Errorf("cube guid is required")
	}
	if dim < 0 {
		return nil, fmt.Errorf("dimension must be non-negative, got %d", dim)
	}
	endpoint := fmt.Sprintf("/cubes/%s/slice/%d/%d", url.PathEscape(guid), dim, lineno)
	var result cube.SliceResult
	if err := s.client.getJSON(ctx, endpoint, nil, &result, opts); err != nil {
		return nil, err
	}
	return &result, nil
}
