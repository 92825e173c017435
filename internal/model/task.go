package model

import "time"

// Priority values accepted by the task service.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// DefaultCategory is applied when a task is created without a category.
// Categories are opaque tags; the store does not restrict them.
const DefaultCategory = "other"

// Categories lists the well-known category tags.
var Categories = []string{
	"development", "design", "marketing", "sales", "hr",
	"finance", "meeting", "planning", "review", "other",
}

// Task is a single to-do item owned by exactly one user.
//
// Fields:
//  ID          – unique identifier assigned at creation.
//  UserID      – owning user's id; every scoped lookup filters on it.
//  Title       – required, non-empty after trimming.
//  Description – optional free text.
//  Completed   – completion flag.
//  Category    – free-form tag, see Categories.
//  Priority    – one of low, medium, high, urgent.
//  DueDate     – optional date string, stored as given.
//  CreatedAt   – set once at creation.
//  UpdatedAt   – rewritten on every successful mutation.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	DueDate     string    `json:"dueDate,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskPatch carries a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
	Category    *string `json:"category,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil &&
		p.Category == nil && p.Priority == nil && p.DueDate == nil
}

// Apply merges the present fields onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
}

// KnownCategory reports whether c is one of Categories.
func KnownCategory(c string) bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
