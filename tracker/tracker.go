// Package tracker is the application state: the task store, the focus heap
// derived from it, and the persistence that backs both.
//
// A Tracker is created explicitly and handed to whatever presents it. Every
// mutation completes its heap rebuild and persistence write before returning,
// so a subsequent read always reflects the latest state. A failed write is
// reported as ErrNotSaved but never rolls back the in-memory change.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"

	"taskweaver/policy"
	"taskweaver/storage"
	"taskweaver/taskheap"
	"taskweaver/tasks"
	"taskweaver/views"
)

// ErrNotSaved wraps persistence failures after an in-memory change succeeded
var ErrNotSaved = errors.New("changes not saved")

// Tracker owns the task store and the focus heap
type Tracker struct {
	store  *tasks.Store
	focus  *taskheap.Heap
	kv     storage.Store
	streak int

	now    func() time.Time
	loc    *time.Location
	logger *zap.Logger
}

// Option configures a Tracker
type Option func(*Tracker)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLocation sets the zone used to turn timestamps into calendar days
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) { t.loc = loc }
}

// WithLogger sets the logger; the default discards everything
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tracker) { t.logger = logger }
}

// New loads the tasks and streak records from kv and builds the focus heap
func New(ctx context.Context, kv storage.Store, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store:  tasks.NewStore(),
		focus:  taskheap.New(),
		kv:     kv,
		now:    time.Now,
		loc:    time.Local,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	loaded, err := storage.LoadTasks(ctx, kv)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	saved, err := storage.LoadStreak(ctx, kv)
	if err != nil {
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}

	t.store.Replace(loaded)
	t.rebuild()
	t.streak = t.computeStreak()

	t.logger.Info("tracker loaded",
		zap.Int("tasks", t.store.Len()),
		zap.Int("incomplete", t.focus.Size()),
		zap.Int("saved_streak", saved),
		zap.Int("streak", t.streak),
	)
	return t, nil
}

// Today is the current calendar date in the tracker's location
func (t *Tracker) Today() civil.Date {
	return civil.DateOf(t.now().In(t.loc))
}

// Location is the zone calendar days are computed in
func (t *Tracker) Location() *time.Location {
	return t.loc
}

// CreateTask adds a new incomplete task. The task exists in memory even
// when the returned error reports a failed save.
func (t *Tracker) CreateTask(ctx context.Context, title string, priority int, due civil.Date) (*tasks.Task, error) {
	task := tasks.New(title, priority, due, t.now())
	t.store.Add(task)
	// adding can only grow the incomplete set, so one insert keeps the heap exact
	t.focus.Insert(task)

	t.logger.Debug("task created",
		zap.String("id", task.ID),
		zap.Int("priority", priority),
		zap.Stringer("due", due),
	)
	return task, t.save(ctx)
}

// CompleteTask marks a task completed. Unknown or already completed ids
// are ignored.
func (t *Tracker) CompleteTask(ctx context.Context, id string) error {
	if !t.store.MarkCompleted(id, t.now()) {
		t.logger.Debug("complete ignored", zap.String("id", id))
		return nil
	}

	t.rebuild()
	t.streak = t.computeStreak()

	t.logger.Debug("task completed", zap.String("id", id), zap.Int("streak", t.streak))
	return t.save(ctx)
}

// DeleteTask removes a task. Unknown ids are ignored.
func (t *Tracker) DeleteTask(ctx context.Context, id string) error {
	if !t.store.Remove(id) {
		t.logger.Debug("delete ignored", zap.String("id", id))
		return nil
	}

	t.rebuild()
	t.streak = t.computeStreak()

	t.logger.Debug("task deleted", zap.String("id", id))
	return t.save(ctx)
}

// Clear removes every task and resets the streak
func (t *Tracker) Clear(ctx context.Context) error {
	n := t.store.Len()
	t.store.Clear()
	t.rebuild()
	t.streak = 0

	t.logger.Info("tasks cleared", zap.Int("removed", n))
	return t.save(ctx)
}

// FocusTask returns the most urgent incomplete task
func (t *Tracker) FocusTask() (*tasks.Task, bool) {
	return t.focus.Peek()
}

// HeapSnapshot returns the focus heap's backing array; not priority order
func (t *Tracker) HeapSnapshot() []*tasks.Task {
	return t.focus.Tasks()
}

// ListView returns the tasks for a view in display order
func (t *Tracker) ListView(sel views.Selector) []*tasks.Task {
	return views.Project(sel, t.store, t.Today())
}

// ListByAlert returns incomplete tasks at the given alert level, by priority
func (t *Tracker) ListByAlert(level policy.AlertLevel) []*tasks.Task {
	return views.ByAlert(level, t.store, t.Today())
}

// CurrentStreak recomputes the completion streak for today
func (t *Tracker) CurrentStreak() int {
	t.streak = t.computeStreak()
	return t.streak
}

// Alert classifies a task's due date relative to today
func (t *Tracker) Alert(task *tasks.Task) policy.AlertLevel {
	return policy.Alert(task.DueDate, t.Today())
}

// Get returns the task with the given id
func (t *Tracker) Get(id string) (*tasks.Task, bool) {
	return t.store.Get(id)
}

// Resolve maps a full id, short id or id prefix to a full id
func (t *Tracker) Resolve(ref string) (string, error) {
	return t.store.Resolve(ref)
}

// Len returns the number of tasks, complete or not
func (t *Tracker) Len() int {
	return t.store.Len()
}

// Close closes the underlying storage
func (t *Tracker) Close() error {
	return t.kv.Close()
}

// rebuild discards the focus heap and rebuilds it from the incomplete set
func (t *Tracker) rebuild() {
	t.focus.BuildHeap(t.store.Incomplete())
}

func (t *Tracker) computeStreak() int {
	return policy.Streak(t.store.Completed(), t.Today(), t.loc)
}

func (t *Tracker) save(ctx context.Context) error {
	if err := storage.SaveTasks(ctx, t.kv, t.store.All()); err != nil {
		t.logger.Warn("failed to save tasks", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrNotSaved, err)
	}
	if err := storage.SaveStreak(ctx, t.kv, t.streak); err != nil {
		t.logger.Warn("failed to save streak", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrNotSaved, err)
	}
	return nil
}
