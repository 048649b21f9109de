// Package blob stores one opaque document under a fixed name.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when nothing has been written yet.
var ErrNotFound = errors.New("blob not found")

type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close() error
}
