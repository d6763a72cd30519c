package types

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrNetwork       = errors.New("network error")
	ErrBackend       = errors.New("backend error")
	ErrCancelled     = errors.New("cancelled by user")
	ErrInvalidConfig = errors.New("invalid config")

	ErrInvalidBackend = errors.New("invalid backend")
)

func Err(typedError error, innerErr error, msgTemplate string, args ...any) error {
	if msgTemplate == "" {
		return errors.Join(typedError, innerErr)
	} else {
		return errors.Join(typedError, innerErr, fmt.Errorf(msgTemplate, args...))
	}
}
