// Package projects manages construction projects: creation with
// server-allocated business keys and unique sheet names, filtered listing
// and lookup by key.
package projects
