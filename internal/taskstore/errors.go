package taskstore

import "errors"

var (
	ErrEmptyDescription = errors.New("description required")
	ErrNotPersisted     = errors.New("changes not saved")
)
