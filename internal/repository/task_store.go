package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/iliyamo/task-manager/internal/model"
)

// Every task read and write accepts an owner filter.  A non-empty owner
// restricts the operation to tasks whose UserID equals it; an empty owner
// means unscoped access and is only used by internal callers.  Tasks owned
// by someone else are indistinguishable from absent ones.

func owned(t model.Task, owner string) bool {
	return owner == "" || t.UserID == owner
}

// filterTasks copies the tasks matching keep and owner, in insertion order.
func (s *Store) filterTasks(ctx context.Context, owner string, keep func(model.Task) bool) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if owned(t, owner) && keep(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// ListTasks returns every task visible to owner.
func (s *Store) ListTasks(ctx context.Context, owner string) ([]model.Task, error) {
	return s.filterTasks(ctx, owner, func(model.Task) bool { return true })
}

// ListTasksByCompletion returns the tasks with the given completion flag.
func (s *Store) ListTasksByCompletion(ctx context.Context, completed bool, owner string) ([]model.Task, error) {
	return s.filterTasks(ctx, owner, func(t model.Task) bool { return t.Completed == completed })
}

// ListTasksByCategory returns the tasks tagged with category.
func (s *Store) ListTasksByCategory(ctx context.Context, category, owner string) ([]model.Task, error) {
	return s.filterTasks(ctx, owner, func(t model.Task) bool { return t.Category == category })
}

// ListTasksByPriority returns the tasks with the given priority.
func (s *Store) ListTasksByPriority(ctx context.Context, priority, owner string) ([]model.Task, error) {
	return s.filterTasks(ctx, owner, func(t model.Task) bool { return t.Priority == priority })
}

// FindTaskByID fetches a task by id.  It returns ErrTaskNotFound when the
// task is missing or not visible to owner.
func (s *Store) FindTaskByID(ctx context.Context, id, owner string) (model.Task, error) {
	if err := ctx.Err(); err != nil {
		return model.Task{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOfTask(id, owner); i >= 0 {
		return s.tasks[i], nil
	}
	return model.Task{}, ErrTaskNotFound
}

// CreateTask stores t on behalf of owner.  ID, CreatedAt and UpdatedAt are
// assigned here and UserID is forced to owner whatever the input carried.
func (s *Store) CreateTask(ctx context.Context, t model.Task, owner string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutable(ctx); err != nil {
		return model.Task{}, err
	}

	now := s.timestamp()
	t.ID = s.newID()
	t.UserID = owner
	t.CreatedAt = now
	t.UpdatedAt = now

	prev := s.tasks
	s.tasks = append(s.tasks[:len(s.tasks):len(s.tasks)], t)
	if err := s.persist(); err != nil {
		s.tasks = prev
		return model.Task{}, err
	}
	s.log.Debug("task created", zap.String("task_id", t.ID), zap.String("user_id", owner))
	return t, nil
}

// UpdateTask merges the fields present in patch onto the stored task and
// bumps UpdatedAt.  ID, UserID and CreatedAt cannot be changed.
func (s *Store) UpdateTask(ctx context.Context, id string, patch model.TaskPatch, owner string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutable(ctx); err != nil {
		return model.Task{}, err
	}
	i := s.indexOfTask(id, owner)
	if i < 0 {
		return model.Task{}, ErrTaskNotFound
	}

	prev := s.tasks[i]
	next := prev
	patch.Apply(&next)
	next.UpdatedAt = s.timestamp()
	if next.UpdatedAt.Before(next.CreatedAt) {
		next.UpdatedAt = next.CreatedAt
	}

	s.tasks[i] = next
	if err := s.persist(); err != nil {
		s.tasks[i] = prev
		return model.Task{}, err
	}
	s.log.Debug("task updated", zap.String("task_id", id), zap.String("user_id", next.UserID))
	return next, nil
}

// DeleteTask removes the task if it exists and is visible to owner.  It
// reports whether a task was removed.
func (s *Store) DeleteTask(ctx context.Context, id, owner string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutable(ctx); err != nil {
		return false, err
	}
	i := s.indexOfTask(id, owner)
	if i < 0 {
		return false, nil
	}

	prev := s.tasks
	next := make([]model.Task, 0, len(prev)-1)
	next = append(next, prev[:i]...)
	next = append(next, prev[i+1:]...)
	s.tasks = next
	if err := s.persist(); err != nil {
		s.tasks = prev
		return false, err
	}
	s.log.Debug("task deleted", zap.String("task_id", id))
	return true, nil
}

// indexOfTask locates a task visible to owner.  Callers hold s.mu.
func (s *Store) indexOfTask(id, owner string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			if !owned(t, owner) {
				return -1
			}
			return i
		}
	}
	return -1
}
