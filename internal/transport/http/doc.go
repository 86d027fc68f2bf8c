// Package http provides the HTTP transport layer for the dashboard: chi
// routers and handlers translating between service calls and JSON
// responses. Handlers depend on consumer-side interfaces so tests can
// substitute mocks.
package http
