package domain

import "errors"

var ErrNoSession = errors.New("no stored session")
var ErrInvalidRole = errors.New("role must be guest or host")
var ErrInvalidTransition = errors.New("invalid booking status transition")
