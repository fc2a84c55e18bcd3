package service

import "errors"

// Sentinel errors surfaced to the transport layer. Repositories wrap
// storage errors; these carry the operation outcome.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrPolicyDisabled rejects operations that only make sense under
	// the random materialization policy.
	ErrPolicyDisabled = errors.New("operation not available under current policy")
)
