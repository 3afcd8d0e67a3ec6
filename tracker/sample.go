package tracker

import "context"

// sampleTasks are demonstration tasks; dueIn is relative to today
var sampleTasks = []struct {
	title    string
	priority int
	dueIn    int
}{
	{"Complete PDSA Project", 1, 1},
	{"Study for Algorithms Exam", 2, 3},
	{"Buy Groceries", 3, 7},
	{"Call Family", 4, -1},
	{"Read Programming Book", 5, 10},
}

// Seed adds the demonstration tasks. It stops at the first failed save.
func (t *Tracker) Seed(ctx context.Context) (int, error) {
	today := t.Today()
	for i, s := range sampleTasks {
		if _, err := t.CreateTask(ctx, s.title, s.priority, today.AddDays(s.dueIn)); err != nil {
			return i + 1, err
		}
	}
	return len(sampleTasks), nil
}
