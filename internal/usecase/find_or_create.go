package usecase

import (
	"context"
	"errors"
	"fmt"

	"hangar-service/internal/domain/errs"
)

// FindOrCreate inserts candidate and, if a concurrent writer already stored an entity with the
// same unique key, returns that winner instead. created reports whether candidate was inserted.
// A conflict whose winner cannot be re-fetched yields errs.ErrEntityCreationRace.
func FindOrCreate[T any](
	ctx context.Context,
	candidate *T,
	create func(context.Context, *T) error,
	refetch func(context.Context) (*T, error),
) (result *T, created bool, err error) {
	err = create(ctx, candidate)
	if err == nil {
		return candidate, true, nil
	}
	if !errors.Is(err, errs.ErrAlreadyExists) {
		return nil, false, err
	}

	existing, err := refetch(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("refetch after conflict: %w", err)
	}
	if existing == nil {
		return nil, false, errs.ErrEntityCreationRace
	}
	return existing, false, nil
}
