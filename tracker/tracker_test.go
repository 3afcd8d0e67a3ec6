package tracker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskweaver/policy"
	"taskweaver/storage"
	"taskweaver/tasks"
	"taskweaver/views"
)

// clock is a settable time source
type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

// failingStore accepts reads but fails every write
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, storage.ErrNotFound }
func (failingStore) Set(context.Context, string, []byte) error   { return errors.New("quota exceeded") }
func (failingStore) Delete(context.Context, string) error        { return errors.New("quota exceeded") }
func (failingStore) Close() error                                { return nil }

func newTestTracker(t *testing.T, kv storage.Store) (*Tracker, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}
	if kv == nil {
		var err error
		kv, err = storage.NewJSONStore(filepath.Join(t.TempDir(), "tasks.json"))
		require.NoError(t, err)
	}
	tr, err := New(context.Background(), kv, WithClock(c.now), WithLocation(time.UTC))
	require.NoError(t, err)
	return tr, c
}

func day(offset int) civil.Date {
	return civil.Date{Year: 2024, Month: time.June, Day: 10}.AddDays(offset)
}

func titles(ts []*tasks.Task) []string {
	out := []string{}
	for _, t := range ts {
		out = append(out, t.Title)
	}
	return out
}

// assertHeapMatchesStore checks the focus heap holds exactly the incomplete tasks
func assertHeapMatchesStore(t *testing.T, tr *Tracker) {
	t.Helper()
	assert.ElementsMatch(t, tr.store.Incomplete(), tr.focus.Tasks())
}

func TestFocusTask(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t, nil)

	_, ok := tr.FocusTask()
	assert.False(t, ok, "empty tracker has no focus task")

	_, err := tr.CreateTask(ctx, "Medium", 3, day(5))
	require.NoError(t, err)
	urgent, err := tr.CreateTask(ctx, "Urgent", 1, day(5))
	require.NoError(t, err)
	_, err = tr.CreateTask(ctx, "Low", 5, day(5))
	require.NoError(t, err)
	assertHeapMatchesStore(t, tr)

	focus, ok := tr.FocusTask()
	require.True(t, ok)
	assert.Same(t, urgent, focus)

	require.NoError(t, tr.CompleteTask(ctx, urgent.ID))
	assertHeapMatchesStore(t, tr)
	focus, ok = tr.FocusTask()
	require.True(t, ok)
	assert.Equal(t, "Medium", focus.Title)

	require.NoError(t, tr.DeleteTask(ctx, focus.ID))
	assertHeapMatchesStore(t, tr)
	focus, ok = tr.FocusTask()
	require.True(t, ok)
	assert.Equal(t, "Low", focus.Title)
}

func TestCompleteTaskIsIdempotent(t *testing.T) {
	ctx := context.Background()
	tr, c := newTestTracker(t, nil)

	task, err := tr.CreateTask(ctx, "Once", 2, day(1))
	require.NoError(t, err)

	require.NoError(t, tr.CompleteTask(ctx, task.ID))
	first := *task.CompletedAt

	c.advance(time.Hour)
	require.NoError(t, tr.CompleteTask(ctx, task.ID))
	assert.True(t, task.Completed)
	assert.Equal(t, first, *task.CompletedAt)
	assert.Equal(t, 1, tr.CurrentStreak())
	assertHeapMatchesStore(t, tr)
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t, nil)

	a, err := tr.CreateTask(ctx, "A", 2, day(1))
	require.NoError(t, err)
	before := tr.focus.Tasks()

	assert.NoError(t, tr.DeleteTask(ctx, "missing"))
	assert.NoError(t, tr.CompleteTask(ctx, "missing"))

	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, before, tr.focus.Tasks())
	got, ok := tr.Get(a.ID)
	require.True(t, ok)
	assert.False(t, got.Completed)
}

func TestDeleteCompletedTask(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t, nil)

	a, _ := tr.CreateTask(ctx, "A", 2, day(1))
	require.NoError(t, tr.CompleteTask(ctx, a.ID))
	assert.Equal(t, 1, tr.CurrentStreak())

	require.NoError(t, tr.DeleteTask(ctx, a.ID))
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, 0, tr.CurrentStreak())
	assertHeapMatchesStore(t, tr)
}

func TestListView(t *testing.T) {
	ctx := context.Background()
	tr, c := newTestTracker(t, nil)

	tr.CreateTask(ctx, "A", 3, day(5))
	tr.CreateTask(ctx, "B", 1, day(0))
	cTask, _ := tr.CreateTask(ctx, "C", 2, day(-1))
	c.advance(time.Minute)
	require.NoError(t, tr.CompleteTask(ctx, cTask.ID))

	assert.Equal(t, []string{"B", "A", "C"}, titles(tr.ListView(views.All)))
	assert.Equal(t, []string{"B", "A"}, titles(tr.ListView(views.Incomplete)))
	assert.Equal(t, []string{"B"}, titles(tr.ListView(views.Urgent)))
	assert.Equal(t, []string{"C"}, titles(tr.ListView(views.Completed)))
	assert.Equal(t, []string{"A"}, titles(tr.ListByAlert(policy.AlertGreen)))

	assert.Equal(t, policy.AlertRed, tr.Alert(cTask))
}

func TestStreakAcrossDays(t *testing.T) {
	ctx := context.Background()
	tr, c := newTestTracker(t, nil)

	for i := 0; i < 3; i++ {
		task, err := tr.CreateTask(ctx, "daily", 3, tr.Today())
		require.NoError(t, err)
		require.NoError(t, tr.CompleteTask(ctx, task.ID))
		assert.Equal(t, i+1, tr.CurrentStreak(), "day %d", i)
		c.advance(24 * time.Hour)
	}

	// a new day with nothing completed yet
	assert.Equal(t, 0, tr.CurrentStreak())
}

func TestReloadFromStorage(t *testing.T) {
	ctx := context.Background()
	kv, err := storage.NewJSONStore(filepath.Join(t.TempDir(), "tasks.json"))
	require.NoError(t, err)

	tr, _ := newTestTracker(t, kv)
	tr.CreateTask(ctx, "A", 3, day(5))
	b, _ := tr.CreateTask(ctx, "B", 1, day(5))
	done, _ := tr.CreateTask(ctx, "Done", 2, day(5))
	require.NoError(t, tr.CompleteTask(ctx, done.ID))

	streak, err := storage.LoadStreak(ctx, kv)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)

	reloaded, _ := newTestTracker(t, kv)
	assert.Equal(t, 3, reloaded.Len())
	focus, ok := reloaded.FocusTask()
	require.True(t, ok)
	assert.Equal(t, b.ID, focus.ID)
	assert.Equal(t, []string{"B", "A", "Done"}, titles(reloaded.ListView(views.All)))
	assert.Equal(t, 1, reloaded.CurrentStreak())
	assertHeapMatchesStore(t, reloaded)
}

func TestPersistenceFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t, failingStore{})

	task, err := tr.CreateTask(ctx, "Unsaved", 1, day(1))
	assert.True(t, errors.Is(err, ErrNotSaved), "got %v", err)
	require.NotNil(t, task)

	focus, ok := tr.FocusTask()
	require.True(t, ok)
	assert.Same(t, task, focus)

	err = tr.CompleteTask(ctx, task.ID)
	assert.True(t, errors.Is(err, ErrNotSaved), "got %v", err)
	assert.True(t, task.Completed)
	_, ok = tr.FocusTask()
	assert.False(t, ok)
	assert.Equal(t, 1, tr.CurrentStreak())
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t, nil)

	a, _ := tr.CreateTask(ctx, "A", 1, day(1))
	tr.CreateTask(ctx, "B", 2, day(1))
	require.NoError(t, tr.CompleteTask(ctx, a.ID))

	require.NoError(t, tr.Clear(ctx))
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, 0, tr.CurrentStreak())
	_, ok := tr.FocusTask()
	assert.False(t, ok)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t, nil)

	n, err := tr.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 5, tr.Len())

	focus, ok := tr.FocusTask()
	require.True(t, ok)
	assert.Equal(t, "Complete PDSA Project", focus.Title)
	assert.Equal(t, []string{"Call Family"}, titles(tr.ListView(views.Urgent)))
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t, nil)

	task, _ := tr.CreateTask(ctx, "A", 1, day(1))
	id, err := tr.Resolve(task.ShortID())
	require.NoError(t, err)
	assert.Equal(t, task.ID, id)

	_, err = tr.Resolve("zzzzzzzz")
	assert.True(t, errors.Is(err, tasks.ErrNotFound))
}
