package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/task-manager/internal/model"
	"github.com/iliyamo/task-manager/internal/queue"
	"github.com/iliyamo/task-manager/internal/repository"
)

// TaskStore is the slice of the document store the task service needs.
type TaskStore interface {
	ListTasks(ctx context.Context, owner string) ([]model.Task, error)
	ListTasksByCompletion(ctx context.Context, completed bool, owner string) ([]model.Task, error)
	ListTasksByCategory(ctx context.Context, category, owner string) ([]model.Task, error)
	ListTasksByPriority(ctx context.Context, priority, owner string) ([]model.Task, error)
	FindTaskByID(ctx context.Context, id, owner string) (model.Task, error)
	CreateTask(ctx context.Context, t model.Task, owner string) (model.Task, error)
	UpdateTask(ctx context.Context, id string, patch model.TaskPatch, owner string) (model.Task, error)
	DeleteTask(ctx context.Context, id, owner string) (bool, error)
}

// EventPublisher receives task events after successful mutations.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.TaskEvent) error
}

// TaskFilter selects at most one list criterion.  Completed wins over
// Category, which wins over Priority; the zero value lists everything.
type TaskFilter struct {
	Completed *bool
	Category  string
	Priority  string
}

// NewTask holds the fields accepted at creation.
type NewTask struct {
	Title       string
	Description string
	Category    string
	Priority    string
	DueDate     string
}

// TaskService is the owner-scoped task CRUD.
type TaskService struct {
	tasks  TaskStore
	events EventPublisher
	log    *zap.Logger
	now    func() time.Time
}

// NewTaskService wires the service.  events and log may be nil.
func NewTaskService(tasks TaskStore, events EventPublisher, log *zap.Logger) *TaskService {
	if tasks == nil {
		panic("nil dependency passed to NewTaskService")
	}
	if events == nil {
		events = queue.Discard{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskService{tasks: tasks, events: events, log: log.Named("tasks"), now: time.Now}
}

// List returns the caller's tasks matching f.
func (s *TaskService) List(ctx context.Context, userID string, f TaskFilter) ([]model.Task, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	var (
		items []model.Task
		err   error
	)
	switch {
	case f.Completed != nil:
		items, err = s.tasks.ListTasksByCompletion(ctx, *f.Completed, userID)
	case f.Category != "":
		items, err = s.tasks.ListTasksByCategory(ctx, f.Category, userID)
	case f.Priority != "":
		items, err = s.tasks.ListTasksByPriority(ctx, f.Priority, userID)
	default:
		items, err = s.tasks.ListTasks(ctx, userID)
	}
	if err != nil {
		return nil, operationFailed("list tasks", err)
	}
	return items, nil
}

// Get returns one task owned by the caller.
func (s *TaskService) Get(ctx context.Context, userID, id string) (model.Task, error) {
	if userID == "" {
		return model.Task{}, ErrNotAuthenticated
	}
	t, err := s.tasks.FindTaskByID(ctx, id, userID)
	if err != nil {
		return model.Task{}, s.storeError("get task", err)
	}
	return t, nil
}

// Create validates in, applies defaults and stores the task.
func (s *TaskService) Create(ctx context.Context, userID string, in NewTask) (model.Task, error) {
	if userID == "" {
		return model.Task{}, ErrNotAuthenticated
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Task{}, invalid("title is required")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = model.DefaultCategory
	}
	if !model.KnownCategory(category) {
		s.log.Debug("custom category tag", zap.String("category", category), zap.String("user_id", userID))
	}
	priority := strings.TrimSpace(in.Priority)
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return model.Task{}, invalid("priority must be one of low, medium, high, urgent")
	}

	t, err := s.tasks.CreateTask(ctx, model.Task{
		Title:       title,
		Description: in.Description,
		Category:    category,
		Priority:    priority,
		DueDate:     strings.TrimSpace(in.DueDate),
	}, userID)
	if err != nil {
		return model.Task{}, s.storeError("create task", err)
	}
	s.publish(ctx, queue.TaskCreated, t)
	return t, nil
}

// Update merges patch onto the caller's task.
func (s *TaskService) Update(ctx context.Context, userID, id string, patch model.TaskPatch) (model.Task, error) {
	if userID == "" {
		return model.Task{}, ErrNotAuthenticated
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return model.Task{}, invalid("title cannot be empty")
		}
		patch.Title = &title
	}
	if patch.Category != nil {
		category := strings.TrimSpace(*patch.Category)
		if category == "" {
			return model.Task{}, invalid("category cannot be empty")
		}
		patch.Category = &category
	}
	if patch.Priority != nil && !model.ValidPriority(*patch.Priority) {
		return model.Task{}, invalid("priority must be one of low, medium, high, urgent")
	}

	t, err := s.tasks.UpdateTask(ctx, id, patch, userID)
	if err != nil {
		return model.Task{}, s.storeError("update task", err)
	}
	// an empty patch only bumps updatedAt; consumers have nothing to record
	if !patch.Empty() {
		s.publish(ctx, queue.TaskUpdated, t)
	}
	return t, nil
}

// Delete removes the caller's task and reports whether anything was removed.
func (s *TaskService) Delete(ctx context.Context, userID, id string) (bool, error) {
	if userID == "" {
		return false, ErrNotAuthenticated
	}
	removed, err := s.tasks.DeleteTask(ctx, id, userID)
	if err != nil {
		return false, s.storeError("delete task", err)
	}
	if removed {
		s.publish(ctx, queue.TaskDeleted, model.Task{ID: id, UserID: userID})
	}
	return removed, nil
}

func (s *TaskService) storeError(op string, err error) error {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return ErrNotFound
	}
	s.log.Error(op+" failed", zap.Error(err))
	return operationFailed(op, err)
}

// publish is best effort: a broker failure is logged and never reaches the
// caller.
func (s *TaskService) publish(ctx context.Context, typ string, t model.Task) {
	ev := queue.TaskEvent{
		Type:       typ,
		TaskID:     t.ID,
		UserID:     t.UserID,
		Title:      t.Title,
		Category:   t.Category,
		Priority:   t.Priority,
		Completed:  t.Completed,
		OccurredAt: s.now().UTC(),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn("publish task event failed", zap.String("type", typ), zap.String("task_id", t.ID), zap.Error(err))
	}
}
