package tasks

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Priority bounds. Lower numbers are more urgent.
const (
	PriorityHighest = 1
	PriorityLowest  = 5
)

// shortIDLen is how many trailing id characters are shown in listings
const shortIDLen = 8

// Task is a single tracked item
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Priority    int        `json:"priority"`
	DueDate     civil.Date `json:"dueDate"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// New creates an incomplete task stamped with the given creation time.
// Title and priority are taken as given; validation belongs to the caller.
func New(title string, priority int, due civil.Date, now time.Time) *Task {
	return &Task{
		ID:        newID(),
		Title:     title,
		Priority:  priority,
		DueDate:   due,
		CreatedAt: now,
	}
}

// newID returns a time-ordered UUIDv7, falling back to a random v4
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Complete marks the task completed at the given time. It reports false
// and leaves the task untouched if it was already completed.
func (t *Task) Complete(at time.Time) bool {
	if t.Completed {
		return false
	}
	t.Completed = true
	t.CompletedAt = &at
	return true
}

// ShortID returns the trailing characters of the id used for display
func (t *Task) ShortID() string {
	if len(t.ID) <= shortIDLen {
		return t.ID
	}
	return t.ID[len(t.ID)-shortIDLen:]
}

// ValidPriority reports whether p is within [PriorityHighest, PriorityLowest]
func ValidPriority(p int) bool {
	return p >= PriorityHighest && p <= PriorityLowest
}

func (t *Task) String() string {
	return fmt.Sprintf("Task{id=%s, title=%q, priority=%d, due=%s, completed=%t}",
		t.ShortID(), t.Title, t.Priority, t.DueDate, t.Completed)
}
