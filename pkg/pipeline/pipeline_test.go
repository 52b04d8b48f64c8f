package pipeline

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/coursegrid/pkg/cache"
	"github.com/matzehuels/coursegrid/pkg/config"
	apperrors "github.com/matzehuels/coursegrid/pkg/errors"
	"github.com/matzehuels/coursegrid/pkg/graph"
	"github.com/matzehuels/coursegrid/pkg/grid"
	"github.com/matzehuels/coursegrid/pkg/observability"
	"github.com/matzehuels/coursegrid/pkg/route"
)

const sampleCSV = `code,name,duration,semester,requirement
ENC-01,Introduction to Computer Engineering,68,1,
MAT-01,Calculus I,90,1,
MAT-02,Calculus II,90,2,MAT-01
ENC-02,Digital Systems,68,2,ENC-01;MAT-01;GEN-99
ENC-03,Computer Architecture,68,4,ENC-02;MAT-02;ENC-01
`

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func (c *memCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}

	if opts.Grid != grid.DefaultConfig() {
		t.Errorf("Grid = %+v, want defaults", opts.Grid)
	}
	if opts.Comma != DefaultComma {
		t.Errorf("Comma = %q, want %q", opts.Comma, DefaultComma)
	}
	if opts.Stroke != route.DefaultStroke {
		t.Errorf("Stroke = %q, want %q", opts.Stroke, route.DefaultStroke)
	}
	if diff := cmp.Diff([]string{FormatSVG}, opts.Formats); diff != "" {
		t.Errorf("Formats mismatch (-want +got):\n%s", diff)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %g, want %g", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"multi-rune comma", Options{Comma: ";;"}},
		{"bad format", Options{Formats: []string{"gif"}}},
		{"negative scale", Options{Scale: -1}},
		{"invalid grid", Options{Grid: grid.Config{Columns: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("ValidateAndSetDefaults() should fail")
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	f := config.Default()
	f.Requirements.Prefixes = []string{"ENC"}
	f.Render.Separators = true
	f.Grid.LanePitch = 4

	opts := FromConfig(f)
	if diff := cmp.Diff([]string{"ENC"}, opts.Prefixes); diff != "" {
		t.Errorf("Prefixes mismatch (-want +got):\n%s", diff)
	}
	if !opts.Separators || opts.Grid.LanePitch != 4 {
		t.Errorf("FromConfig() = %+v, lost render or grid settings", opts)
	}
}

func TestRunner_ExecuteAndCache(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := Options{
		Prefixes: []string{"ENC", "MAT"},
		Formats:  []string{FormatSVG, FormatJSON, FormatDOT},
	}

	first, err := r.Execute(ctx, "sample.csv", []byte(sampleCSV), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if first.CacheInfo != (CacheInfo{}) {
		t.Errorf("first run CacheInfo = %+v, want all misses", first.CacheInfo)
	}
	if first.Stats.Courses != 5 || first.Stats.Edges != 6 {
		t.Errorf("Stats = %+v, want 5 courses and 6 edges", first.Stats)
	}
	if first.GraphHash == "" {
		t.Error("GraphHash should be set")
	}
	for _, f := range opts.Formats {
		if len(first.Artifacts[f]) == 0 {
			t.Errorf("artifact %s is empty", f)
		}
	}
	if !strings.HasPrefix(string(first.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact is not SVG")
	}
	if !strings.Contains(string(first.Artifacts[FormatDOT]), "digraph") {
		t.Error("dot artifact is not DOT")
	}
	fromJSON, err := graph.UnmarshalLayout(first.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if diff := cmp.Diff(first.Layout, fromJSON); diff != "" {
		t.Errorf("json artifact differs from layout (-want +got):\n%s", diff)
	}
	// graph + layout + one entry per format
	if got, want := c.len(), 2+len(opts.Formats); got != want {
		t.Errorf("cache entries = %d, want %d", got, want)
	}

	second, err := r.Execute(ctx, "sample.csv", []byte(sampleCSV), opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if second.CacheInfo != (CacheInfo{LoadHit: true, LayoutHit: true, RenderHit: true}) {
		t.Errorf("second run CacheInfo = %+v, want all hits", second.CacheInfo)
	}
	if diff := cmp.Diff(first.Artifacts, second.Artifacts); diff != "" {
		t.Errorf("cached artifacts differ (-first +second):\n%s", diff)
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, "sample.csv", []byte(sampleCSV), opts)
	if err != nil {
		t.Fatalf("refresh Execute() error: %v", err)
	}
	if third.CacheInfo != (CacheInfo{}) {
		t.Errorf("refresh CacheInfo = %+v, want all misses", third.CacheInfo)
	}
}

func TestRunner_LayoutKeyFollowsOptions(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)
	opts := Options{Prefixes: []string{"ENC", "MAT"}}

	g, err := r.Load(ctx, "sample.csv", []byte(sampleCSV), opts)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, err := r.Layout(ctx, g, opts); err != nil {
		t.Fatalf("Layout() error: %v", err)
	}

	opts.Grid = grid.DefaultConfig()
	opts.Grid.BoxWidth = 120
	l, hit, err := r.LayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		t.Fatalf("LayoutWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("changed grid should miss the layout cache")
	}
	if b, _ := l.Box("ENC-01"); b.Rect.Width() != 120 {
		t.Errorf("box width = %g, want 120", b.Rect.Width())
	}
}

func TestRunner_LoadErrors(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)

	// GEN-99 is not a course and is only dropped by the prefix filter.
	_, err := r.Execute(ctx, "sample.csv", []byte(sampleCSV), Options{})
	if got := apperrors.GetCode(err); got != apperrors.ErrCodeDanglingReference {
		t.Errorf("GetCode() = %q, want %q (err: %v)", got, apperrors.ErrCodeDanglingReference, err)
	}

	backward := "code,name,duration,semester,requirement\nA,a,1,2,\nB,b,1,1,A\n"
	_, err = r.Execute(ctx, "backward.csv", []byte(backward), Options{})
	if got := apperrors.GetCode(err); got != apperrors.ErrCodeSemesterOrder {
		t.Errorf("GetCode() = %q, want %q (err: %v)", got, apperrors.ErrCodeSemesterOrder, err)
	}
}

func TestRenderFromLayoutData_Invalid(t *testing.T) {
	_, err := RenderFromLayoutData(context.Background(), []byte("{"), Options{})
	if err == nil {
		t.Error("RenderFromLayoutData() should fail on malformed data")
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	mu      sync.Mutex
	layouts int
	lastErr error
}

func (h *countingHooks) OnLayoutComplete(_ context.Context, _, _ int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts++
	h.lastErr = err
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	mu   sync.Mutex
	hits map[string]int
}

func (h *countingCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits[keyType]++
}

func TestRunner_Hooks(t *testing.T) {
	defer observability.Reset()
	ph := &countingHooks{}
	ch := &countingCacheHooks{hits: make(map[string]int)}
	observability.SetPipelineHooks(ph)
	observability.SetCacheHooks(ch)

	ctx := context.Background()
	r := NewRunner(newMemCache(), cache.NewScopedKeyer(cache.NewDefaultKeyer(), "test:"), nil)
	opts := Options{Prefixes: []string{"ENC", "MAT"}}
	for range 2 {
		if _, err := r.Execute(ctx, "sample.csv", []byte(sampleCSV), opts); err != nil {
			t.Fatalf("Execute() error: %v", err)
		}
	}

	if ph.layouts != 2 || ph.lastErr != nil {
		t.Errorf("OnLayoutComplete called %d times (last err %v), want 2 and nil", ph.layouts, ph.lastErr)
	}
	want := map[string]int{keyTypeGraph: 1, keyTypeLayout: 1, keyTypeArtifact: 1}
	if diff := cmp.Diff(want, ch.hits); diff != "" {
		t.Errorf("cache hits mismatch (-want +got):\n%s", diff)
	}
}

func TestRunner_CacheErrorsAreIgnored(t *testing.T) {
	r := NewRunner(failingCache{}, nil, nil)
	res, err := r.Execute(context.Background(), "sample.csv", []byte(sampleCSV), Options{Prefixes: []string{"ENC", "MAT"}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(res.Artifacts[FormatSVG]) == 0 {
		t.Error("svg artifact missing")
	}
}

type failingCache struct{}

var errBackend = errors.New("backend down")

func (failingCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errBackend }
func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return errBackend
}
func (failingCache) Delete(context.Context, string) error { return errBackend }
func (failingCache) Close() error                         { return nil }

func TestExecute_ExampleCurriculum(t *testing.T) {
	cfg, err := config.Load("../../examples/curriculum/coursegrid.toml")
	if err != nil {
		t.Fatalf("config.Load() error: %v", err)
	}
	data, err := os.ReadFile("../../examples/curriculum/ec.csv")
	if err != nil {
		t.Fatal(err)
	}

	opts := FromConfig(cfg)
	opts.Formats = []string{FormatSVG, FormatJSON}
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), "ec.csv", data, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.Stats.Courses != 17 || res.Stats.Edges != 24 {
		t.Errorf("Stats = %d courses, %d edges; want 17, 24", res.Stats.Courses, res.Stats.Edges)
	}
	if got := res.Layout.Semesters(); got != 6 {
		t.Errorf("Semesters() = %d, want 6", got)
	}
	if got := strings.Count(string(res.Artifacts[FormatSVG]), `class="separator"`); got != 5 {
		t.Errorf("separators = %d, want 5", got)
	}
}
