// Package server provides the HTTP host for mapkit: a Gin engine behind a
// net/http middleware chain, served over HTTP/1.1 and h2c.
//
// # Middleware
//
// Applied around every route, outermost first (server/middleware):
//
//   - Recovery: panic recovery with an INTERNAL_ERROR body
//   - RequestID: X-Request-Id generation and propagation
//   - CORS: cross-origin headers and preflight
//   - BodySizeLimit: request body cap
//   - RequestLogger: method, path, status and duration
//
// # Endpoints
//
// RegisterDefaultEndpoints adds /health (component health) and /info
// (build information) from server/endpoint.
package server
