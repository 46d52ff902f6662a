// Package engine implements the sequence transform search.
//
// Given an expression and an arity n, the engine enumerates every
// expression reachable by taking away, adding or moving n matches. Matches
// are a shared resource: a move may lift a stick from any token and lay it
// on any free position of any token, the same one included. The candidate
// space is therefore the cross product of occupied slots and free slots
// over the whole expression, never a per-token product.
//
// SEARCH:
//
// A Slot is a (token index, segment position) pair. For a move of arity n
// the engine chooses n distinct occupied slots and n distinct free slots,
// applies all changes at once and keeps the result only if every token of
// the new expression resolves to a value. Remove and Add are the one-sided
// versions of the same walk.
//
// For an expression of L tokens an arity-1 move visits at most (7L)^2
// candidates and an arity-2 move at most (7L)^4. The outer loop over the
// removal choice is fanned out across goroutines; each task owns its
// candidates and results are merged into one set, so output does not
// depend on scheduling.
//
// DETERMINISM:
//
// Results are deduplicated by value (Expression.Key) and returned sorted by
// key. Identical inputs always produce identical output.
package engine
