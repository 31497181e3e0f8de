// Package store defines the data sources the service reads donor activity
// and projects from.
package store

import (
	"context"
	"errors"

	"github.com/dshills/qfscore/internal/project"
	"github.com/dshills/qfscore/internal/trust"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for an empty or malformed key.
	ErrInvalidInput = errors.New("invalid input")
)

// ActivitySource returns the aggregated activity of one donor.
type ActivitySource interface {
	Activity(ctx context.Context, donorID string) (trust.Activity, error)
}

// ProjectSource lists projects with their funding totals.
type ProjectSource interface {
	List(ctx context.Context) ([]project.Project, error)
}
