// Package router is the HTTP transport of the service.
//
// It wraps julienschmidt/httprouter with a fixed middleware chain (panic
// recovery, client IP, correlation id, tracing and access logs, maintenance
// switch, bearer authentication) and adapts Handler functions to JSON:
//
//	success: {"message": "...", "data": ..., "meta": {...}}
//	failure: {"message": "...", "error": {"field": "reason"}}
//
// Handlers return goerror values; their code decides the HTTP status and a
// throttling error also sets Retry-After.
package router
