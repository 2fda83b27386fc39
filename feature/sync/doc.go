// Package sync replays the estimate workbook into the database.
//
// A run opens the workbook, walks the five known ledger sheets in dependency
// order (customers, projects, invoices, work items, payments) and upserts
// each data row by its business key inside a single transaction. Malformed
// cells never abort a run; they degrade to per-column defaults. Parent
// records referenced by a child row but missing from the store are created
// as minimal placeholders before the child is written.
//
// The HTTP surface accepts a sync of the configured source path, an
// operator-supplied path constrained to a base directory, or a direct
// workbook upload. Successfully synced workbooks can be archived to object
// storage when enabled.
package sync
