// Package graph provides the serialization formats of coursegrid.
//
// It is the boundary between the in-memory types of pkg/curriculum and
// pkg/layout and everything stored or sent over the wire: JSON files, HTTP
// responses, cache entries and MongoDB documents (every type carries both
// json and bson tags).
//
// # Core Types
//
//   - [Graph]: a curriculum, courses in first-seen order
//   - [Layout]: a finished layout with boxes, routed edges and lanes
//
// # Graph Serialization
//
//	{
//	  "courses": [
//	    {"code": "MAT-01", "name": "Calculus I", "duration": 90, "semester": 1},
//	    {"code": "MAT-02", "name": "Calculus II", "duration": 90, "semester": 2,
//	     "requirements": ["MAT-01"]}
//	  ]
//	}
//
// Course order is significant: it decides the slot of each course within its
// semester, so [FromCurriculum] and [ToCurriculum] keep it.
//
// # Layout Serialization
//
// [FromLayout] drops the run id of the pass, so two passes over the same
// input marshal to identical bytes and the result can be cached by input
// hash.
package graph
