// Package api implements the HTTP delivery layer: request decoding and
// validation, mapping service errors to status codes, and the public task
// projection returned over the wire.
package api
