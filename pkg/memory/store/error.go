package store

import "fmt"

// ErrNotFound is returned when the requested tier key has no backing file.
type ErrNotFound struct {
	Key string
}

func (e ErrNotFound) Error() string {
	if e.Key == "" {
		return "memory file not found"
	}

	return "memory file not found: " + e.Key
}

// ErrInvalidKey is returned for keys that do not fit a tier's shape.
type ErrInvalidKey struct {
	Key    string
	Reason string
}

func (e ErrInvalidKey) Error() string {
	return fmt.Sprintf("invalid key %q: %s", e.Key, e.Reason)
}

// ErrInvalidRange is returned for line ranges outside a file's bounds.
type ErrInvalidRange struct {
	Start int
	End   int
	Lines int
}

func (e ErrInvalidRange) Error() string {
	return fmt.Sprintf("invalid line range %d-%d for a %d-line file", e.Start, e.End, e.Lines)
}
