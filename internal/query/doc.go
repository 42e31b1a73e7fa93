// Package query defines one query struct per record kind.
//
// A query bundles one match.Match per matchable field. Fields are combined
// with logical AND and default to match.Any, so the zero value of every
// query matches every record.
//
// Each query has two entry points:
//
//   - Matches(raw) tests a stored record. Foreign keys are compared by id
//     using the nested query's ID predicate; the nested query's other
//     fields are not consulted because the referenced record is not loaded.
//   - MatchesView(view) tests a materialized view. Nested queries recurse
//     into the embedded views, so a Job query can filter on the name of the
//     client's location.
//
// Queries are usually written by hand in YAML and loaded with Load or
// LoadFile:
//
//	client:
//	  location:
//	    outer:
//	      type: some
//	      name: {condition: equal_to, value: Arizona}
//	date_close: {condition: equal_to, value: 0001-01-01T00:00:00Z}
package query
