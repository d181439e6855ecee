package cubeclient_test

import (
	"context"
	"net/http"
	"testing"

	cubeclient "github.com/cubeworks/go-cube-client/pkg/client"
)

type listPayload struct {
	Cubes []string      `json:"cubes"`
	Links []linkPayload `json:"links,omitempty"`
}

type linkPayload struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

func TestListIteratorFollowsPagination(t *testing.T) {
	var requests int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cubes" {
			http.NotFound(w, r)
			return
		}
		requests++
		switch token := r.URL.Query().Get("token"); token {
		case "":
			nextURL := "http://" + r.Host + "/cubes?token=abc"
			writeJSON(t, w, listPayload{
				Cubes: []string{"vol1", "vol2"},
				Links: []linkPayload{{Rel: "next", Href: nextURL}},
			})
		case "abc":
			writeJSON(t, w, listPayload{Cubes: []string{"vol3"}})
		default:
			t.Fatalf("unexpected token %q", token)
		}
	})

	var guids []string
	for guid, err := range client.Cubes().List(context.Background()) {
		if err != nil {
			t.Fatalf("iterator error: %v", err)
		}
		guids = append(guids, guid)
	}

	if len(guids) != 3 {
		t.Fatalf("expected 3 cubes, got %d", len(guids))
	}
	if guids[0] != "vol1" || guids[1] != "vol2" || guids[2] != "vol3" {
		t.Fatalf("unexpected order: %#v", guids)
	}
	if requests != 2 {
		t.Fatalf("expected 2 requests, got %d", requests)
	}
}

func TestListIteratorMidStreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch token := r.URL.Query().Get("token"); token {
		case "":
			writeJSON(t, w, listPayload{
				Cubes: []string{"vol1", "vol2"},
				Links: []linkPayload{{Rel: "next", Href: "http://" + r.Host + "/cubes?token=abc"}},
			})
		default:
			http.Error(w, `{"key":"manifest-not-found"}`, http.StatusInternalServerError)
		}
	})

	var guids []string
	var iterErr error
	for guid, err := range client.Cubes().List(context.Background()) {
		if err != nil {
			iterErr = err
			break
		}
		guids = append(guids, guid)
	}

	// page one was already yielded before the failing page
	if len(guids) != 2 || guids[0] != "vol1" || guids[1] != "vol2" {
		t.Fatalf("unexpected guids before failure: %#v", guids)
	}
	if iterErr == nil {
		t.Fatal("expected error from the second page")
	}
}

func TestListIteratorStopsOnRepeatedToken(t *testing.T) {
	var requests int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		writeJSON(t, w, listPayload{
			Cubes: []string{"vol1"},
			Links: []linkPayload{{Rel: "next", Href: "http://" + r.Host + "/cubes?token=same"}},
		})
	})

	guids, err := client.Cubes().ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	// first page plus the page the repeated token names, then stop
	if requests != 2 {
		t.Fatalf("expected 2 requests, got %d", requests)
	}
	if len(guids) != 2 {
		t.Fatalf("expected 2 cubes, got %#v", guids)
	}
}

func TestListIteratorEarlyStop(t *testing.T) {
	var requests int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		writeJSON(t, w, listPayload{
			Cubes: []string{"vol1", "vol2"},
			Links: []linkPayload{{Rel: "next", Href: "http://" + r.Host + "/cubes?token=x"}},
		})
	})

	for guid, err := range client.Cubes().List(context.Background()) {
		if err != nil {
			t.Fatalf("iterator error: %v", err)
		}
		if guid == "vol1" {
			break
		}
	}
	if requests != 1 {
		t.Fatalf("expected 1 request, got %d", requests)
	}
}

func TestListEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, listPayload{Cubes: []string{}})
	})

	guids, err := client.Cubes().ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(guids) != 0 {
		t.Fatalf("expected empty listing, got %#v", guids)
	}
}

func TestListLimitAndToken(t *testing.T) {
	var limit, token string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		limit = r.URL.Query().Get("limit")
		token = r.URL.Query().Get("token")
		writeJSON(t, w, listPayload{Cubes: []string{"vol1"}})
	})

	_, err := client.Cubes().ListPage(context.Background(),
		cubeclient.WithListLimit(25),
		cubeclient.WithListToken("start"),
	)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if limit != "25" {
		t.Fatalf("unexpected limit %q", limit)
	}
	if token != "start" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestManifest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cubes/abc-123" {
			http.NotFound(w, r)
			return
		}
		writeJSON(t, w, map[string]any{
			"vol":          []map[string]any{{"prefix": "src/", "ext": "f32", "shapes": [][]int{{64, 64, 64}}}},
			"line-numbers": [][]int{{1, 2}, {10, 11}, {0, 4}},
			"line-labels":  []string{"inline", "crossline", "time"},
		})
	})

	manifest, err := client.Cubes().Manifest(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("Manifest: %v", err)
	}
	if got := manifest.NDims(); got != 3 {
		t.Fatalf("expected 3 dims, got %d", got)
	}
	shape, err := manifest.FragmentShape()
	if err != nil {
		t.Fatalf("FragmentShape: %v", err)
	}
	if len(shape) != 3 || shape[0] != 64 {
		t.Fatalf("unexpected fragment shape %#v", shape)
	}
}

func TestManifestRequiresGUID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	if _, err := client.Cubes().Manifest(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty guid")
	}
}
