package views

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskweaver/policy"
	"taskweaver/tasks"
)

var today = civil.Date{Year: 2024, Month: time.June, Day: 10}

func titles(ts []*tasks.Task) []string {
	out := []string{}
	for _, t := range ts {
		out = append(out, t.Title)
	}
	return out
}

func add(s *tasks.Store, title string, priority, dueIn int) *tasks.Task {
	t := tasks.New(title, priority, today.AddDays(dueIn), time.Now())
	s.Add(t)
	return t
}

func complete(t *testing.T, s *tasks.Store, task *tasks.Task, at time.Time) {
	t.Helper()
	require.True(t, s.MarkCompleted(task.ID, at))
}

func TestAllViewScenario(t *testing.T) {
	s := tasks.NewStore()
	add(s, "A", 3, 5)
	add(s, "B", 1, 5)
	c := add(s, "C", 2, 5)
	complete(t, s, c, time.Now())

	got := titles(Project(All, s, today))
	if diff := cmp.Diff([]string{"B", "A", "C"}, got); diff != "" {
		t.Errorf("all view mismatch (-want +got):\n%s", diff)
	}
}

func TestViews(t *testing.T) {
	base := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	s := tasks.NewStore()
	add(s, "overdue-low", 5, -2)
	add(s, "today-high", 2, 0)
	add(s, "soon-top", 1, 1)
	add(s, "later-mid", 3, 7)
	first := add(s, "done-first", 1, 3)
	second := add(s, "done-second", 4, -1)
	complete(t, s, first, base)
	complete(t, s, second, base.Add(2*time.Hour))

	tests := []struct {
		sel  Selector
		want []string
	}{
		{All, []string{"soon-top", "today-high", "later-mid", "overdue-low", "done-first", "done-second"}},
		{Incomplete, []string{"soon-top", "today-high", "later-mid", "overdue-low"}},
		{Urgent, []string{"today-high", "overdue-low"}},
		{Completed, []string{"done-second", "done-first"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.sel), func(t *testing.T) {
			got := titles(Project(tt.sel, s, today))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("%s view mismatch (-want +got):\n%s", tt.sel, diff)
			}
		})
	}
}

func TestProjectDoesNotMutateStore(t *testing.T) {
	s := tasks.NewStore()
	add(s, "c", 3, 1)
	add(s, "a", 1, 1)
	add(s, "b", 2, 1)
	before := titles(s.All())

	for _, sel := range Selectors {
		Project(sel, s, today)
	}

	assert.Equal(t, before, titles(s.All()))
}

func TestEmptyStore(t *testing.T) {
	s := tasks.NewStore()
	for _, sel := range Selectors {
		assert.Empty(t, Project(sel, s, today), "view %s", sel)
	}
	assert.Empty(t, Project(Selector("bogus"), s, today))
}

func TestByAlert(t *testing.T) {
	s := tasks.NewStore()
	add(s, "green", 1, 10)
	add(s, "orange-b", 4, 2)
	add(s, "orange-a", 2, 1)
	done := add(s, "orange-done", 1, 1)
	complete(t, s, done, time.Now())

	assert.Equal(t, []string{"orange-a", "orange-b"}, titles(ByAlert(policy.AlertOrange, s, today)))
	assert.Equal(t, []string{"green"}, titles(ByAlert(policy.AlertGreen, s, today)))
	assert.Empty(t, ByAlert(policy.AlertRed, s, today))
}

func TestParseSelector(t *testing.T) {
	sel, err := ParseSelector("")
	require.NoError(t, err)
	assert.Equal(t, All, sel)

	sel, err = ParseSelector(" Urgent")
	require.NoError(t, err)
	assert.Equal(t, Urgent, sel)

	_, err = ParseSelector("someday")
	assert.ErrorContains(t, err, "unknown view")
}
