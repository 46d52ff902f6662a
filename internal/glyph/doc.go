// Package glyph models seven-segment matchstick glyphs.
//
// A glyph is a Token: a family (Digit or Operator) plus the set of segment
// positions currently holding a match. Everything else about a token is
// derived from that occupancy by looking it up in the family's Geometry.
//
// # Geometry
//
// Digits use the classic seven positions:
//
//	 0
//	1 2
//	 3
//	4 5
//	 6
//
// Operators use a universe of two positions on top of an implicit, fixed
// horizontal bar: position 0 is the vertical stroke of "+", position 1 the
// second bar of "=". With nothing occupied the operator reads "-".
//
// Geometries are immutable once built and are collected in a Registry.
// Standard returns the registry used throughout the module.
//
// # Transforms
//
// Remove, Add and Move enumerate every token of the same family reachable by
// taking away, adding or relocating n matches inside one token. Results are
// deduplicated by value: two occupancies resolving to the same digit produce
// a single entry.
//
// An occupancy that maps to no value is not an error. It is the ordinary
// intermediate state of a search and shows up as Valid() == false.
package glyph
