// Package finance manages invoices and payments. Both carry the
// non-negative remainder invariant (remaining = max(total - paid, 0)) and a
// status derived from the amount/paid pair unless a caller supplies one.
package finance
