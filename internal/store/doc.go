// Package store persists a log of validation runs in SQLite.
//
// Each harness invocation appends one immutable run record: what was
// validated (content-addressed hash of validator source, input, and
// output), the verdict it produced, or the harness error that prevented
// one. Contract errors and validation failures both record non-passing
// runs, but the record keeps them distinguishable: only a validation
// failure carries reason/violation, only a contract error carries an
// error code.
//
// The store is an observability surface. Nothing in the decision path
// reads from it.
package store
