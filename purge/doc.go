// Package purge provides a client for the Skylift cache purge service.
// Cached content can be invalidated by exact URL, by cache key, or by a
// wildcard pattern; each call is a single fire-and-forget round trip whose
// receipt only confirms the request was accepted.
package purge
