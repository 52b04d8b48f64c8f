package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/coursegrid/pkg/curriculum"
)

// FromCurriculum converts g, keeping course order.
func FromCurriculum(g *curriculum.Graph) Graph {
	nodes := g.Nodes()
	out := Graph{Courses: make([]Course, len(nodes))}
	for i, n := range nodes {
		out.Courses[i] = Course{
			Code:         n.Code,
			Name:         n.Name,
			Duration:     n.Duration,
			Semester:     n.Semester,
			Requirements: append([]string(nil), n.Requirements...),
		}
	}
	return out
}

// ToCurriculum rebuilds and finalizes a curriculum graph.
func ToCurriculum(data Graph) (*curriculum.Graph, error) {
	g := curriculum.New()
	for _, c := range data.Courses {
		if err := g.AddNode(c.Code, c.Name, c.Duration, c.Semester); err != nil {
			return nil, err
		}
	}
	for _, c := range data.Courses {
		for _, req := range c.Requirements {
			if err := g.AddRequirement(c.Code, req); err != nil {
				return nil, err
			}
		}
	}
	if err := g.Finalize(); err != nil {
		return nil, err
	}
	return g, nil
}

// MarshalGraph encodes g as indented JSON.
func MarshalGraph(g *curriculum.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph encodes g as indented JSON to w.
func WriteGraph(g *curriculum.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromCurriculum(g)); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// ReadGraph decodes a JSON graph and rebuilds the curriculum.
func ReadGraph(r io.Reader) (*curriculum.Graph, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	return ToCurriculum(data)
}

// UnmarshalGraph is ReadGraph over bytes.
func UnmarshalGraph(data []byte) (*curriculum.Graph, error) {
	return ReadGraph(bytes.NewReader(data))
}

// WriteGraphFile writes g to path.
func WriteGraphFile(g *curriculum.Graph, path string) error {
	data, err := MarshalGraph(g)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadGraphFile reads a graph written by [WriteGraphFile].
func ReadGraphFile(path string) (*curriculum.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}
