package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors the HTTP layer maps onto status codes.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation")
	ErrConflict   = errors.New("conflict")
)

func notFound(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func conflict(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}

// Message strips the sentinel prefix to get the operator-facing text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for _, sentinel := range []error{ErrNotFound, ErrValidation, ErrConflict} {
		if errors.Is(err, sentinel) {
			if msg, ok := strings.CutPrefix(err.Error(), sentinel.Error()+": "); ok {
				return msg
			}
		}
	}
	return err.Error()
}
