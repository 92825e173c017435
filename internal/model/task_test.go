package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskPatch_ApplyOnlyPresentFields(t *testing.T) {
	task := Task{Title: "Ship report", Category: "other", Priority: PriorityHigh, DueDate: "2025-03-01"}
	done := true

	p := TaskPatch{Completed: &done}
	assert.False(t, p.Empty())
	p.Apply(&task)

	assert.True(t, task.Completed)
	assert.Equal(t, "Ship report", task.Title)
	assert.Equal(t, "other", task.Category)
	assert.Equal(t, PriorityHigh, task.Priority)
	assert.Equal(t, "2025-03-01", task.DueDate)
}

func TestTaskPatch_Empty(t *testing.T) {
	assert.True(t, TaskPatch{}.Empty())
	empty := ""
	assert.False(t, TaskPatch{DueDate: &empty}.Empty())
}

func TestKnownCategory(t *testing.T) {
	assert.True(t, KnownCategory(DefaultCategory))
	assert.True(t, KnownCategory("finance"))
	assert.False(t, KnownCategory("legal"))
	assert.False(t, KnownCategory(""))
}

func TestValidPriority(t *testing.T) {
	for _, p := range []string{"low", "medium", "high", "urgent"} {
		assert.True(t, ValidPriority(p), p)
	}
	for _, p := range []string{"", "HIGH", "critical"} {
		assert.False(t, ValidPriority(p), p)
	}
}

func TestUser_PublicDropsHash(t *testing.T) {
	u := User{ID: "1", Name: "Alice", Email: "alice@x.com", PasswordHash: "$2a$..."}
	pub := u.Public()
	assert.Equal(t, PublicUser{ID: "1", Name: "Alice", Email: "alice@x.com"}, pub)
}
