package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/coursegrid/pkg/cache"
	"github.com/matzehuels/coursegrid/pkg/config"
	apperrors "github.com/matzehuels/coursegrid/pkg/errors"
	"github.com/matzehuels/coursegrid/pkg/observability"
	"github.com/matzehuels/coursegrid/pkg/pipeline"
)

const sampleCSV = "code,name,duration,semester,requirement\n" +
	"MAT-01,Calculus I,90,1,\n" +
	"PHY-01,Physics I,60,1,\n" +
	"MAT-02,Calculus II,90,2,MAT-01\n" +
	"ENC-03,Circuits,68,3,MAT-02;PHY-01;GEN-99\n"

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	c, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(c, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:"), nil)
	defaults := pipeline.FromConfig(config.Default())
	defaults.Prefixes = []string{"ENC", "MAT", "PHY"}
	ts := httptest.NewServer(New(runner, defaults, opts...).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("response should carry a request id")
	}
}

func TestRequestID_KeepsClientValue(t *testing.T) {
	ts := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestLayout(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/layout", Request{CSV: sampleCSV})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200: %+v", resp.StatusCode, decodeError(t, resp))
	}
	var got LayoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Cached {
		t.Error("first request should not be cached")
	}
	if got.GraphHash == "" {
		t.Error("graph_hash missing")
	}
	if len(got.Layout.Boxes) != 4 || len(got.Layout.Edges) != 3 {
		t.Errorf("layout has %d boxes and %d edges, want 4 and 3", len(got.Layout.Boxes), len(got.Layout.Edges))
	}

	again := post(t, ts.URL+"/v1/layout", Request{CSV: sampleCSV})
	var cached LayoutResponse
	if err := json.NewDecoder(again.Body).Decode(&cached); err != nil {
		t.Fatal(err)
	}
	if !cached.Cached {
		t.Error("second request should hit the cache")
	}
}

func TestLayout_OptionsOverrideDefaults(t *testing.T) {
	ts := newTestServer(t)

	body := `{"csv": ` + mustJSON(t, sampleCSV) + `, "options": {"grid": {"box_width": 120}}}`
	resp, err := http.Post(ts.URL+"/v1/layout", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %+v", resp.StatusCode, decodeError(t, resp))
	}

	var got LayoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Layout.Grid.BoxWidth != 120 {
		t.Errorf("box_width = %g, want 120", got.Layout.Grid.BoxWidth)
	}
	if got.Layout.Grid.BoxHeight != config.Default().Grid.BoxHeight {
		t.Errorf("box_height = %g, want the default", got.Layout.Grid.BoxHeight)
	}
}

func TestLayout_Errors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   apperrors.Code
	}{
		{"malformed", `{"csv":`, http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
		{"unknown field", `{"csv": "x", "bogus": 1}`, http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
		{"missing csv", `{}`, http.StatusBadRequest, apperrors.ErrCodeInvalidInput},
		{
			"dangling requirement",
			`{"csv": ` + mustJSON(t, sampleCSV) + `, "options": {"prefixes": []}}`,
			http.StatusUnprocessableEntity, apperrors.ErrCodeDanglingReference,
		},
		{
			"backward requirement",
			`{"csv": ` + mustJSON(t, "code,name,duration,semester,requirement\nA,a,1,2,\nB,b,1,1,A\n") + `, "options": {"prefixes": []}}`,
			http.StatusUnprocessableEntity, apperrors.ErrCodeSemesterOrder,
		},
		{
			"invalid grid",
			`{"csv": ` + mustJSON(t, sampleCSV) + `, "options": {"grid": {"lane_pitch": -1}}}`,
			http.StatusUnprocessableEntity, apperrors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/layout", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if e := decodeError(t, resp); e.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", e.Code, tt.code, e.Error)
			}
		})
	}
}

func TestLayout_BodyLimit(t *testing.T) {
	ts := newTestServer(t, WithMaxBody(64))
	resp := post(t, ts.URL+"/v1/layout", Request{CSV: sampleCSV})
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		format, contentType, prefix string
	}{
		{"svg", "image/svg+xml", "<svg"},
		{"json", "application/json", "{"},
		{"dot", "text/vnd.graphviz", "digraph"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/render/"+tt.format, Request{CSV: sampleCSV})
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %+v", resp.StatusCode, decodeError(t, resp))
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			var buf bytes.Buffer
			_, _ = buf.ReadFrom(resp.Body)
			if !strings.HasPrefix(buf.String(), tt.prefix) {
				t.Errorf("body starts with %.20q, want %q", buf.String(), tt.prefix)
			}
		})
	}

	resp := post(t, ts.URL+"/v1/render/gif", Request{CSV: sampleCSV})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown format status = %d, want 404", resp.StatusCode)
	}
}

type serverHooks struct {
	observability.NoopServerHooks
	mu       sync.Mutex
	statuses []int
}

func (h *serverHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestServerHooks(t *testing.T) {
	defer observability.Reset()
	h := &serverHooks{}
	observability.SetServerHooks(h)

	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.statuses) != 1 || h.statuses[0] != http.StatusOK {
		t.Errorf("OnResponse statuses = %v, want [200]", h.statuses)
	}
}

func TestDefaultsAreNotShared(t *testing.T) {
	defaults := pipeline.Options{Palette: []string{"#111111", "#222222"}}
	s := New(pipeline.NewRunner(nil, nil, nil), defaults)

	o := s.options()
	o.Palette[0] = "#ffffff"
	if s.defaults.Palette[0] != "#111111" {
		t.Error("mutating request options changed the server defaults")
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
