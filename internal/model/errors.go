package model

import "errors"

// ErrNotFound is returned when a key or a contact does not exist.
var ErrNotFound = errors.New("not found")
