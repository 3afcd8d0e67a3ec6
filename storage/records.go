package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"taskweaver/tasks"
)

// Record keys
const (
	KeyTasks  = "tasks"
	KeyStreak = "streak"
)

// storedTask reads ids written either as strings or, by older exports
// that used a millisecond timestamp, as bare numbers
type storedTask struct {
	tasks.Task
	ID json.RawMessage `json:"id"`
}

// LoadTasks reads the tasks record. A missing record yields no tasks.
func LoadTasks(ctx context.Context, s Store) ([]*tasks.Task, error) {
	raw, err := s.Get(ctx, KeyTasks)
	if errors.Is(err, ErrNotFound) {
		return []*tasks.Task{}, nil
	}
	if err != nil {
		return nil, err
	}

	var stored []storedTask
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode %s record: %w", KeyTasks, err)
	}

	out := make([]*tasks.Task, 0, len(stored))
	for i := range stored {
		t := stored[i].Task
		id, err := decodeID(stored[i].ID)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		t.ID = id
		// completedAt is only meaningful on completed tasks
		if !t.Completed {
			t.CompletedAt = nil
		}
		out = append(out, &t)
	}
	return out, nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("missing id")
	}
	if raw[0] == '"' {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", err
		}
		if id == "" {
			return "", fmt.Errorf("missing id")
		}
		return id, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid id %s: %w", raw, err)
	}
	return n.String(), nil
}

// SaveTasks writes the tasks record
func SaveTasks(ctx context.Context, s Store, ts []*tasks.Task) error {
	if ts == nil {
		ts = []*tasks.Task{}
	}
	data, err := json.Marshal(ts)
	if err != nil {
		return fmt.Errorf("failed to encode %s record: %w", KeyTasks, err)
	}
	return s.Set(ctx, KeyTasks, data)
}

// LoadStreak reads the last saved streak. A missing record yields 0.
func LoadStreak(ctx context.Context, s Store) (int, error) {
	raw, err := s.Get(ctx, KeyStreak)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(string(bytes.TrimSpace(raw)))
	if err != nil {
		return 0, fmt.Errorf("failed to decode %s record: %w", KeyStreak, err)
	}
	return n, nil
}

// SaveStreak writes the streak record
func SaveStreak(ctx context.Context, s Store, streak int) error {
	return s.Set(ctx, KeyStreak, []byte(strconv.Itoa(streak)))
}
