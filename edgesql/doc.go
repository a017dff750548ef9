// Package edgesql provides a client for the Skylift edge database service,
// a SQL-like data store addressed by numeric id and queried via submitted
// statement batches.
//
// Query execution has a partial-success wrinkle: the HTTP round trip may
// succeed while the first statement result carries an embedded error (for
// example a syntax error). The client checks for this explicitly and
// converts it into the same uniform error shape used everywhere else, so
// callers only ever branch on a single error value.
package edgesql
