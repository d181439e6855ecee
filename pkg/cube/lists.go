package cube

import (
	"net/url"
	"strings"
)

// Link relates a response to another resource, e.g. the next page of a
// listing.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// CubeList is the response to a cube listing request. Small installations
// return every cube in one page; larger ones page with rel="next" links.
type CubeList struct {
	Cubes []string `json:"cubes"`
	Links []Link   `json:"links,omitempty"`
}

// NextLink returns the rel="next" link if present.
func (l *CubeList) NextLink() *Link {
	if l == nil {
		return nil
	}
	for i := range l.Links {
		if strings.EqualFold(l.Links[i].Rel, "next") {
			return &l.Links[i]
		}
	}
	return nil
}

// NextToken extracts the token query parameter from the next link, if
// present.
func (l *CubeList) NextToken() string {
	link := l.NextLink()
	if link == nil || link.Href == "" {
		return ""
	}
	u, err := url.Parse(link.Href)
	if err != nil {
		return ""
	}
	return u.Query().Get("token")
}
