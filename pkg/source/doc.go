// Package source turns tabular course data into a curriculum graph.
//
// A [DataSource] yields raw [Row] values, one per course, with every column
// still as text. [Build] validates and converts them: numbers are parsed,
// the requirement column is split on ';', and each requirement code is kept
// only if the [RequirementFilter] accepts it. Codes the filter rejects are
// ignored, not reported as dangling.
//
// [CSVSource] reads rows from CSV with a header line naming the columns
// code, name, duration, semester and requirement.
package source
