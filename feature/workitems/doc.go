// Package workitems serves the standard work item catalog and per-project
// line items. Line items inherit unfilled fields from a referenced catalog
// entry; their totals are computed once at creation.
package workitems
