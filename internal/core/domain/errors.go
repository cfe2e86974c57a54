package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrTemporary        = errors.New("temporary failure")

	// Pipeline error kinds. All three are recovered locally by substituting
	// degraded output; only a missing/unreadable source file propagates to
	// the caller as a hard failure.
	ErrDecode              = errors.New("decode failure")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	ErrEmptyContent        = errors.New("empty content")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
