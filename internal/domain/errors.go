package domain

import "errors"

var (
	ErrDuplicateName          = errors.New("name already exists")
	ErrNotFound               = errors.New("not found")
	ErrCycle                  = errors.New("would create a cycle in folder hierarchy")
	ErrInvalidName            = errors.New("name cannot be empty")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	ErrImportFormat           = errors.New("invalid import format")
)
