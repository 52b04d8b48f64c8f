package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/coursegrid/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and empties", " json, ,dot ", []string{"json", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid all", []string{"svg", "pdf", "png", "json", "dot"}, false},
		{"invalid format", []string{"gif"}, true},
		{"mixed valid invalid", []string{"svg", "gif"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pipeline.ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestOutputBase(t *testing.T) {
	tests := map[string]string{
		"ec.csv":               "ec",
		"dir/ec.layout.json":   "dir/ec",
		"plan":                 "plan",
		"semesters.v2.csv":     "semesters.v2",
		"nested/a.layout.json": "nested/a",
	}
	for input, want := range tests {
		if got := outputBase(input); got != want {
			t.Errorf("outputBase(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestIsLayoutFile(t *testing.T) {
	for input, want := range map[string]bool{
		"ec.csv":         false,
		"ec.layout.json": true,
		"EC.JSON":        true,
		"ec":             false,
	} {
		if got := isLayoutFile(input); got != want {
			t.Errorf("isLayoutFile(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")}

	tests := []struct {
		name    string
		formats []string
		input   string
		output  string
		want    []string
	}{
		{"default names", []string{"svg", "json"}, "ec.csv", "", []string{"ec.svg", "ec.json"}},
		{"single with output", []string{"svg"}, "ec.csv", "plan.svg", []string{"plan.svg"}},
		{"multiple with output base", []string{"svg", "json"}, "ec.csv", "out/plan.svg", []string{"out/plan.svg", "out/plan.json"}},
		{"json from layout keeps input", []string{"json"}, "ec.json", "", []string{"ec.out.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := filepath.Join(dir, tt.input)
			out := ""
			if tt.output != "" {
				out = filepath.Join(dir, tt.output)
				if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
					t.Fatal(err)
				}
			}
			got, err := writeArtifacts(artifacts, tt.formats, in, out)
			if err != nil {
				t.Fatalf("writeArtifacts() error: %v", err)
			}
			want := make([]string, len(tt.want))
			for i, w := range tt.want {
				want[i] = filepath.Join(dir, w)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("paths mismatch (-want +got):\n%s", diff)
			}
			for _, p := range got {
				if _, err := os.Stat(p); err != nil {
					t.Errorf("%s not written: %v", p, err)
				}
			}
		})
	}
}
