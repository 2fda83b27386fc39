// Package customers serves the customer ledger.
package customers
