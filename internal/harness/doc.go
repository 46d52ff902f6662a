// Package harness runs conformance scenarios against the move engine.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: eight_remove_one
//	description: "Taking one match from 8 leaves 0, 6 or 9"
//	input: "8"
//	kind: remove        # move (default), remove or add
//	arity: 1
//	riddles_only: false # keep only results that are riddles
//	expect: ["0", "6", "9"]
//
// At least one check is required:
//
//   - expect: the exact result set, in any order
//   - contains: results that must be present
//   - count: the number of results
//   - error: the match error code the transform must fail with
//     (INSUFFICIENT_MATCHES, EXCESS_MATCHES or INVALID_ARITY)
//
// Results are canonical expression strings ("1 + 1 = 2").
//
// # Golden Snapshots
//
// Snapshot renders a result as indented JSON. Tests compare it against
// testdata/golden/<name>.golden with goldie; regenerate with
//
//	go test ./internal/harness -update
package harness
