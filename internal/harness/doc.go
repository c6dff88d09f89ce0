// Package harness runs record store scenarios.
//
// A scenario seeds a fresh store, executes a list of create/get/list steps,
// checks each step's expect clause and then evaluates assertions against the
// final store state. Every step is recorded in a trace that can be compared
// against a golden file.
//
// # Scenario Format
//
//	name: currency_filter
//	description: "What this scenario validates"
//	id_prefix: "item-"          # optional, default "item-"
//	seed:
//	  - id: seed-usd            # optional
//	    name: Dollar coins
//	    category: USD
//	steps:
//	  - op: create
//	    name: Euro notes
//	    category: EUR
//	    expect: { outcome: ok, id: item-1 }
//	  - op: get
//	    id: item-1
//	    expect: { outcome: ok, name: Euro notes }
//	  - op: list
//	    filter: eur              # omit for no filtering
//	    expect: { outcome: ok, names: [Euro notes] }
//	  - op: list
//	    cancelled: true          # run with an already-cancelled context
//	    expect: { outcome: cancelled }
//	assertions:
//	  - type: count
//	    count: 2
//	  - type: order
//	    names: [Dollar coins, Euro notes]
//	  - type: distinct_ids
//
// # Outcomes
//
//   - ok: the operation succeeded (get found the record)
//   - validation_error: create rejected the request; expect.field names the field
//   - not_found: get found no record
//   - cancelled: the operation reported a cancellation
//
// # Deterministic Traces
//
// IDs come from record.SequenceGenerator ("item-1", "item-2", ...) and seq
// from the store's logical clock, so the same scenario always produces the
// same trace bytes.
package harness
