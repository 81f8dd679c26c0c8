package domain

import "context"

// DatasetSource yields the raw upstream dataset document.
type DatasetSource interface {
	// Fetch returns the payload. Errors match ErrDataUnavailable.
	Fetch(ctx context.Context) ([]byte, error)

	// Name labels the source in logs and metrics, e.g. "http" or "file".
	Name() string
}
