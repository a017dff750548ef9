// Package api implements the request/response translation layer shared by
// every Skylift service client.
//
// Each client operation is a single round trip: build a request (method,
// headers, optional body), send it against an environment-resolved origin,
// and reshape the JSON response into a typed result or a uniform error.
// There is no retry, no backoff and no shared mutable state; cancellation
// is caller-driven through context.Context.
//
// # Components
//
//   - Client: request builder and transport invoker with optional debug
//     logging of raw responses
//   - Decode: response normalizer parameterized by an explicit success
//     predicate (HasData, HasResults, HasState)
//   - ErrorFrom / Wrap: error mapper producing the uniform
//     {Message, Operation} failure shape
//   - Environment: three-valued selector mapping to the fixed platform
//     origins
//
// # Error Handling
//
// Every failure, whether a local transport error or a remote-reported
// business error, surfaces as an *Error carrying the message and the
// operation label of the call site. No client operation panics and none
// returns a partially populated result alongside an error.
package api
