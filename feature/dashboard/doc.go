// Package dashboard computes read-only aggregations over the store:
// entity-kind totals and a sales overview with year-to-date figures.
package dashboard
