// Package api handles incoming HTTP requests for the task management
// service: request decoding and validation, error-to-status mapping, and
// response shaping. It translates HTTP concerns into calls on the stores and
// services underneath.
package api
