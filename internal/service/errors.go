package service

import "errors"

// Sentinel errors handlers translate into HTTP status codes.
var (
	ErrNotFound              = errors.New("resource not found")
	ErrForbidden             = errors.New("not authorized for this resource")
	ErrAlreadyExists         = errors.New("resource already exists")
	ErrInvalidContentType    = errors.New("unsupported content type")
	ErrInvalidProgressStatus = errors.New("unsupported progress status")
	ErrAIUnavailable         = errors.New("AI integration is not configured")
)
