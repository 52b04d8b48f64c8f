package graph

import (
	"github.com/matzehuels/coursegrid/pkg/grid"
	"github.com/matzehuels/coursegrid/pkg/route"
)

// Graph is the serialized form of a curriculum.
type Graph struct {
	Courses []Course `json:"courses" bson:"courses"`
}

// Course is one course of a [Graph].
type Course struct {
	Code         string   `json:"code" bson:"code"`
	Name         string   `json:"name,omitempty" bson:"name,omitempty"`
	Duration     float64  `json:"duration,omitempty" bson:"duration,omitempty"`
	Semester     int      `json:"semester" bson:"semester"`
	Requirements []string `json:"requirements,omitempty" bson:"requirements,omitempty"`
}

// Layout is the serialized form of a layout pass.
type Layout struct {
	Width     float64          `json:"width" bson:"width"`
	Height    float64          `json:"height" bson:"height"`
	Grid      grid.Config      `json:"grid" bson:"grid"`
	Boxes     []Box            `json:"boxes" bson:"boxes"`
	Edges     []Edge           `json:"edges" bson:"edges"`
	Corridors []Corridor       `json:"corridors,omitempty" bson:"corridors,omitempty"`
	Crossings []route.Crossing `json:"crossings,omitempty" bson:"crossings,omitempty"`
}

// Box is a placed course.
type Box struct {
	Code     string     `json:"code" bson:"code"`
	Name     string     `json:"name,omitempty" bson:"name,omitempty"`
	Duration float64    `json:"duration,omitempty" bson:"duration,omitempty"`
	Semester int        `json:"semester" bson:"semester"`
	Column   int        `json:"column" bson:"column"`
	Row      int        `json:"row" bson:"row"`
	Rect     grid.Rect  `json:"rect" bson:"rect"`
	Back     grid.Point `json:"back" bson:"back"`
	Front    grid.Point `json:"front" bson:"front"`
}

// Edge is a routed requirement edge.
type Edge struct {
	From      string          `json:"from" bson:"from"`
	To        string          `json:"to" bson:"to"`
	Color     string          `json:"color" bson:"color"`
	LineWidth float64         `json:"line_width" bson:"line_width"`
	Points    []grid.Point    `json:"points" bson:"points"`
	Arrowhead route.Arrowhead `json:"arrowhead" bson:"arrowhead"`
}

// ID returns the edge id used in [Corridor] lanes.
func (e Edge) ID() string { return e.From + "->" + e.To }

// Corridor lists the lanes allocated in one corridor.
type Corridor struct {
	Axis  string `json:"axis" bson:"axis"` // "v" or "h"
	Index int    `json:"index" bson:"index"`
	Lanes []Lane `json:"lanes" bson:"lanes"`
}

// Lane is one allocated lane.
type Lane struct {
	Edge   string  `json:"edge" bson:"edge"`
	Offset float64 `json:"offset" bson:"offset"`
}
