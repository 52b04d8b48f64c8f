package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/coursegrid/pkg/layout"
)

// FromLayout converts a layout pass. The run id is left out.
func FromLayout(l *layout.Layout) Layout {
	out := Layout{
		Width:     l.Width,
		Height:    l.Height,
		Grid:      l.Config,
		Boxes:     make([]Box, len(l.Boxes)),
		Edges:     make([]Edge, len(l.Edges)),
		Crossings: l.Crossings,
	}
	for i, b := range l.Boxes {
		out.Boxes[i] = Box{
			Code:     b.Code,
			Name:     b.Name,
			Duration: b.Duration,
			Semester: b.Semester,
			Column:   b.Column,
			Row:      b.Row,
			Rect:     b.Box,
			Back:     b.Back,
			Front:    b.Front,
		}
	}
	for i, e := range l.Edges {
		out.Edges[i] = Edge{
			From:      e.Edge.From,
			To:        e.Edge.To,
			Color:     e.Color,
			LineWidth: e.LineWidth,
			Points:    e.Points,
			Arrowhead: e.Arrowhead,
		}
	}
	for _, key := range l.Corridors {
		c := Corridor{Axis: key.Axis.String(), Index: key.Index}
		for _, lane := range l.Lanes[key] {
			c.Lanes = append(c.Lanes, Lane{Edge: lane.Edge, Offset: lane.Offset})
		}
		out.Corridors = append(out.Corridors, c)
	}
	return out
}

// Box returns the box of code.
func (l *Layout) Box(code string) (Box, bool) {
	for _, b := range l.Boxes {
		if b.Code == code {
			return b, true
		}
	}
	return Box{}, false
}

// Semesters returns the number of columns holding at least one box.
func (l *Layout) Semesters() int {
	n := 0
	for _, b := range l.Boxes {
		n = max(n, b.Column+1)
	}
	return n
}

// MarshalLayout encodes l as indented JSON.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout decodes a layout and checks that every edge connects two
// boxes.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	codes := make(map[string]bool, len(l.Boxes))
	for _, b := range l.Boxes {
		codes[b.Code] = true
	}
	for _, e := range l.Edges {
		if !codes[e.From] || !codes[e.To] {
			return Layout{}, fmt.Errorf("layout edge %s references a missing box", e.ID())
		}
		if len(e.Points) < 2 {
			return Layout{}, fmt.Errorf("layout edge %s has %d points", e.ID(), len(e.Points))
		}
	}
	return l, nil
}

// WriteLayoutFile writes l to path as JSON.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadLayoutFile reads a layout written by [WriteLayoutFile].
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
