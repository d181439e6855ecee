// Package auth provides http.RoundTripper implementations that inject
// credentials into requests bound for the cube service.
package auth

import "net/http"

// TokenSource supplies a bearer token per request. Implementations may
// refresh expired tokens; errors abort the request.
type TokenSource interface {
	Token() (string, error)
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func() (string, error)

// Token implements the TokenSource interface.
func (f TokenSourceFunc) Token() (string, error) {
	return f()
}

// StaticToken returns a TokenSource that always yields token.
func StaticToken(token string) TokenSource {
	return TokenSourceFunc(func() (string, error) {
		return token, nil
	})
}

// BearerTransport injects an Authorization bearer credential obtained
// from Source into outgoing requests.
type BearerTransport struct {
	Source TokenSource
	Base   http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if t.Source != nil {
		token, err := t.Source.Token()
		if err != nil {
			return nil, err
		}
		if token != "" {
			clone.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return t.base().RoundTrip(clone)
}

func (t *BearerTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// APIKeyTransport injects an API key header into outgoing requests.
type APIKeyTransport struct {
	Key    string
	Header string
	Base   http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *APIKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	header := t.Header
	if header == "" {
		header = "Authorization"
	}
	if t.Key != "" {
		clone.Header.Set(header, t.Key)
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}
