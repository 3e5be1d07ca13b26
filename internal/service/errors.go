package service

import "errors"

// ErrCardNotFound is returned when a slug resolves to no visible card.
var ErrCardNotFound = errors.New("card not found")
