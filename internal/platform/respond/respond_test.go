package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
)

// testProblem captures the problem-details payload including $schema.
type testProblem struct {
	Schema string `json:"$schema,omitempty" cbor:"$schema,omitempty"`
	Title  string `json:"title,omitempty"  cbor:"title,omitempty"`
	Status int    `json:"status,omitempty" cbor:"status,omitempty"`
	Detail string `json:"detail,omitempty" cbor:"detail,omitempty"`
}

func TestNotFoundHandlerReturnsProblemDetails(t *testing.T) {
	router := chi.NewRouter()
	router.NotFound(NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("expected application/problem+json, got %q", ct)
	}
	link := resp.Header().Get("Link")
	if !strings.Contains(link, "/schemas/ErrorModel.json") || !strings.Contains(link, "describedBy") {
		t.Fatalf("expected Link header with schema, got %q", link)
	}

	var problem testProblem
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to unmarshal problem: %v", err)
	}
	if problem.Status != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", problem.Status)
	}
	if problem.Title != "Not Found" {
		t.Fatalf("unexpected title: %s", problem.Title)
	}
}

func TestMethodNotAllowedHandlerReturnsProblemDetails(t *testing.T) {
	router := chi.NewRouter()
	router.MethodNotAllowed(MethodNotAllowedHandler())
	router.Get("/carts", func(http.ResponseWriter, *http.Request) {})

	req := httptest.NewRequest(http.MethodDelete, "/carts", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
	var problem testProblem
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to unmarshal problem: %v", err)
	}
	if problem.Status != http.StatusMethodNotAllowed {
		t.Fatalf("unexpected status: %d", problem.Status)
	}
}

func TestRecovererReturnsProblemDetails(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Recoverer())
	router.Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("cart state corrupted")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("expected application/problem+json, got %q", ct)
	}
}

func TestRecovererRePanicsOnErrAbortHandler(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Recoverer())
	router.Get("/abort", func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	})

	defer func() {
		if recover() != http.ErrAbortHandler {
			t.Fatal("expected ErrAbortHandler to propagate")
		}
	}()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/abort", nil))
}

func TestRecovererSkipsWriteWhenHeaderAlreadyWritten(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Recoverer())
	router.Get("/partial", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("after header")
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/partial", nil))

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected original 202 to stand, got %d", resp.Code)
	}
}

func TestNotFoundHandlerReturnsCBORWhenAccepted(t *testing.T) {
	router := chi.NewRouter()
	router.NotFound(NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("Accept", "application/cbor")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if ct := resp.Header().Get("Content-Type"); ct != "application/problem+cbor" {
		t.Fatalf("expected application/problem+cbor, got %q", ct)
	}
	var problem testProblem
	if err := cbor.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to unmarshal cbor problem: %v", err)
	}
	if problem.Status != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", problem.Status)
	}
}

func TestAcceptsCBOREdgeCases(t *testing.T) {
	cases := []struct {
		accept string
		want   bool
	}{
		{"", false},
		{"*/*", false},
		{"application/*", false},
		{"application/json", false},
		{"application/cbor", true},
		{"application/cbor;q=1.0", true},
		{"application/json, application/cbor", false},
		{"application/json;q=0.9, application/cbor;q=1.0", true},
		{"application/cbor;q=0.1, application/json;q=0.9", false},
		{"application/problem+cbor", true},
		{"application/cbor;q=0", false},
	}

	for _, tc := range cases {
		if got := acceptsCBOR(tc.accept); got != tc.want {
			t.Errorf("acceptsCBOR(%q) = %v, want %v", tc.accept, got, tc.want)
		}
	}
}

func TestNoBodyStatusError(t *testing.T) {
	e := NoBody{Status: http.StatusNotModified}
	if e.GetStatus() != http.StatusNotModified {
		t.Fatalf("unexpected status: %d", e.GetStatus())
	}
	if e.Error() != "Not Modified" {
		t.Fatalf("unexpected error text: %s", e.Error())
	}
}
