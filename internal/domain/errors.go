package domain

import "errors"

var (
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidRequest indicates invalid request
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized indicates unauthorized access
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNoSession indicates a request without a known session
	ErrNoSession = errors.New("session not found")
	// ErrOffline indicates an operation that needs connectivity
	ErrOffline = errors.New("offline")
	// ErrUnsupportedKind indicates a message kind outside the closed set
	ErrUnsupportedKind = errors.New("unsupported message kind")
)
