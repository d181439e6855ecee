package cubeclient

import (
	"context"
	"fmt"
	"iter"
	"net/url"

	"github.com/cubeworks/go-cube-client/pkg/cube"
)

// CubeService provides cube listing and manifest retrieval.
type CubeService struct {
	client *Client
}

// ListOption configures a listing call.
type ListOption func(*listOptions)

type listOptions struct {
	limit          *int
	token          string
	requestOptions []RequestOption
}

func newListOptions(opts ...ListOption) listOptions {
	var cfg listOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithListLimit sets the page limit for cube listing.
func WithListLimit(limit int) ListOption {
	return func(o *listOptions) {
		if limit <= 0 {
			return
		}
		o.limit = &limit
	}
}

// WithListToken sets the pagination token to start from.
func WithListToken(token string) ListOption {
	return func(o *listOptions) {
		o.token = token
	}
}

// WithListRequestOption appends a RequestOption for every page request.
func WithListRequestOption(opt RequestOption) ListOption {
	return func(o *listOptions) {
		if opt != nil {
			o.requestOptions = append(o.requestOptions, opt)
		}
	}
}

// List streams cube identifiers as an iterator sequence, following
// pagination links until the listing is exhausted. Identifiers are
// yielded in the order the service returns them.
func (s *CubeService) List(ctx context.Context, opts ...ListOption) iter.Seq2[string, error] {
	cfg := newListOptions(opts...)
	requestOpts := append([]RequestOption{}, cfg.requestOptions...)
	limit := cfg.limit
	initialToken := cfg.token

	return func(yield func(string, error) bool) {
		token := initialToken
		for {
			query := make(url.Values)
			if limit != nil {
				query.Set("limit", fmt.Sprint(*limit))
			}
			if token != "" {
				query.Set("token", token)
			}
			page, err := s.fetchPage(ctx, query, requestOpts)
			if err != nil {
				yield("", err)
				return
			}
			for _, guid := range page.Cubes {
				if !yield(guid, nil) {
					return
				}
			}
			next := page.NextToken()
			// a repeated token would re-fetch the same page forever
			if next == "" || next == token {
				return
			}
			token = next
		}
	}
}

// ListAll collects the full listing into a slice.
func (s *CubeService) ListAll(ctx context.Context, opts ...ListOption) ([]string, error) {
	var guids []string
	for guid, err := range s.List(ctx, opts...) {
		if err != nil {
			return guids, err
		}
		guids = append(guids, guid)
	}
	return guids, nil
}

// ListPage fetches a single page of the listing.
func (s *CubeService) ListPage(ctx context.Context, opts ...ListOption) (*cube.CubeList, error) {
	cfg := newListOptions(opts...)
	query := make(url.Values)
	if cfg.limit != nil {
		query.Set("limit", fmt.Sprint(*cfg.limit))
	}
	if cfg.token != "" {
		query.Set("token", cfg.token)
	}
	return s.fetchPage(ctx, query, cfg.requestOptions)
}

// Manifest retrieves the manifest document for a cube.
func (s *CubeService) Manifest(ctx context.Context, guid string, opts ...RequestOption) (*cube.Manifest, error) {
	if guid == "" {
		return nil, fmt.Errorf("cube guid is required")
	}
	endpoint := fmt.Sprintf("/cubes/%s", url.PathEscape(guid))
	var manifest cube.Manifest
	if err := s.client.getJSON(ctx, endpoint, nil, &manifest, opts); err != nil {
		return nil, err
	}
	return &manifest, nil
}

func (s *CubeService) fetchPage(ctx context.Context, query url.Values, opts []RequestOption) (*cube.CubeList, error) {
	var page cube.CubeList
	if err := s.client.getJSON(ctx, "/cubes", cloneValues(query), &page, opts); err != nil {
		return nil, err
	}
	return &page, nil
}
