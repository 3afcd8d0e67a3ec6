// Package tasks holds the task model and the authoritative task collection.
package tasks

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound  = errors.New("task not found")
	ErrAmbiguous = errors.New("ambiguous task reference")
)

// minPrefixLen is the shortest id prefix accepted by Resolve
const minPrefixLen = 6

// Store is the insertion-ordered collection of every task, complete or not.
// It does not own any ordering index; callers rebuild theirs after mutating.
type Store struct {
	tasks []*Task
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{tasks: []*Task{}}
}

// Add appends a task
func (s *Store) Add(t *Task) {
	s.tasks = append(s.tasks, t)
}

// Get returns the task with the given id
func (s *Store) Get(id string) (*Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return s.tasks[i], true
}

// MarkCompleted completes the task with the given id. It reports false when
// the id is absent or the task was already completed.
func (s *Store) MarkCompleted(id string, at time.Time) bool {
	t, ok := s.Get(id)
	if !ok {
		return false
	}
	return t.Complete(at)
}

// Remove deletes the task with the given id, reporting whether it existed
func (s *Store) Remove(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return true
}

// All returns every task in insertion order
func (s *Store) All() []*Task {
	out := make([]*Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Incomplete returns tasks not yet completed, in insertion order
func (s *Store) Incomplete() []*Task {
	return s.filter(func(t *Task) bool { return !t.Completed })
}

// Completed returns completed tasks, in insertion order
func (s *Store) Completed() []*Task {
	return s.filter(func(t *Task) bool { return t.Completed })
}

// Len returns the number of tasks
func (s *Store) Len() int {
	return len(s.tasks)
}

// Replace swaps the whole collection, e.g. after loading from storage
func (s *Store) Replace(tasks []*Task) {
	s.tasks = make([]*Task, len(tasks))
	copy(s.tasks, tasks)
}

// Clear removes every task
func (s *Store) Clear() {
	s.tasks = []*Task{}
}

// Resolve maps a user-supplied reference to a full task id.
// It checks: exact id → short id suffix → id prefix (min 6 chars)
func (s *Store) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNotFound)
	}

	if t, ok := s.Get(ref); ok {
		return t.ID, nil
	}

	if len(ref) < minPrefixLen {
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	}

	if id, err := s.unique(ref, strings.HasSuffix); id != "" || err != nil {
		return id, err
	}
	if id, err := s.unique(ref, strings.HasPrefix); id != "" || err != nil {
		return id, err
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
}

// unique returns the single id matching ref, "" with no error when nothing
// matches, or ErrAmbiguous when several do
func (s *Store) unique(ref string, match func(string, string) bool) (string, error) {
	var found []string
	for _, t := range s.tasks {
		if match(t.ID, ref) {
			found = append(found, t.ID)
		}
	}
	switch len(found) {
	case 0:
		return "", nil
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%w: %s (matches %d tasks)", ErrAmbiguous, ref, len(found))
	}
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) filter(keep func(*Task) bool) []*Task {
	out := []*Task{}
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
