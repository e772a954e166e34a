package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/hylla/tickit/internal/domain"
)

// Repository loads and saves the whole task collection at process boundaries.
type Repository interface {
	Load(context.Context) ([]domain.Task, error)
	Save(context.Context, []domain.Task) error
}

// LoadTasks loads the stored collection. Malformed data degrades to an empty collection
// and reports degraded=true; any other failure is returned.
func LoadTasks(ctx context.Context, repo Repository) ([]domain.Task, bool, error) {
	if repo == nil {
		return nil, false, ErrNilRepository
	}
	tasks, err := repo.Load(ctx)
	switch {
	case errors.Is(err, ErrMalformedData):
		return []domain.Task{}, true, nil
	case err != nil:
		return nil, false, fmt.Errorf("load tasks: %w", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, false, nil
}

// SaveTasks persists the final collection.
func SaveTasks(ctx context.Context, repo Repository, tasks []domain.Task) error {
	if repo == nil {
		return ErrNilRepository
	}
	if err := repo.Save(ctx, domain.CloneTasks(tasks)); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
