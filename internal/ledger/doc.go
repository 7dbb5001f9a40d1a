// Package ledger persists a history of import runs in SQLite.
//
// Each run stores one row in `runs` and one row per stock folder in
// `stock_results`, including the SHA-256 of the written profile so repeated
// runs can be compared. The ledger is optional; callers treat its failures as
// warnings.
package ledger
