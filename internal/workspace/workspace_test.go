package workspace

import (
	"context"
	"errors"
	"sync"
	"testing"

	"todo-presets-backend/internal/todo"
)

// fakeStore records saves and can be told to fail.
type fakeStore struct {
	tasks       []todo.Task
	presetNames []string
	taskSaves   int
	presetSaves int
	saveErr     error
}

func (f *fakeStore) LoadTasks(ctx context.Context) ([]todo.Task, error) { return f.tasks, nil }

func (f *fakeStore) SaveTasks(ctx context.Context, tasks []todo.Task) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.tasks = tasks
	f.taskSaves++
	return nil
}

func (f *fakeStore) LoadPresets(ctx context.Context, book *todo.PresetBook) error {
	for _, n := range f.presetNames {
		if _, err := book.Create(n); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeStore) SavePresets(ctx context.Context, book *todo.PresetBook) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.presetNames = book.Names()
	f.presetSaves++
	return nil
}

func TestOpenRestoresState(t *testing.T) {
	fs := &fakeStore{
		tasks:       []todo.Task{{ID: "t1", Priority: 'A', Description: "saved"}},
		presetNames: []string{"chores"},
	}

	ws, err := Open(context.Background(), fs)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	ws.View(func(l *todo.TaskList, b *todo.PresetBook) {
		if task, err := l.Get("t1"); err != nil || task.Description != "saved" {
			t.Errorf("expected restored task, got %+v, %v", task, err)
		}
		if b.Len() != 1 {
			t.Errorf("expected 1 preset, got %d", b.Len())
		}
	})
}

func TestUpdateTasksPersistsOnSuccessOnly(t *testing.T) {
	ctx := context.Background()
	fs := &fakeStore{}
	ws := New(todo.NewTaskList(), todo.NewPresetBook(), fs)

	err := ws.UpdateTasks(ctx, func(l *todo.TaskList) error {
		_, err := l.Add('A', "one", "")
		return err
	})
	if err != nil {
		t.Fatalf("UpdateTasks failed: %v", err)
	}
	if fs.taskSaves != 1 || len(fs.tasks) != 1 {
		t.Fatalf("expected one save with one task, got %d saves, %d tasks", fs.taskSaves, len(fs.tasks))
	}

	err = ws.UpdateTasks(ctx, func(l *todo.TaskList) error {
		_, err := l.Add('A', "", "")
		return err
	})
	if !errors.Is(err, todo.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if fs.taskSaves != 1 {
		t.Errorf("expected no save after failed update, got %d", fs.taskSaves)
	}
}

func TestUpdateReportsStoreErrors(t *testing.T) {
	boom := errors.New("disk full")
	ws := New(todo.NewTaskList(), todo.NewPresetBook(), &fakeStore{saveErr: boom})

	err := ws.UpdateTasks(context.Background(), func(l *todo.TaskList) error { return nil })
	if !errors.Is(err, boom) {
		t.Errorf("expected store error, got %v", err)
	}
	err = ws.UpdatePresets(context.Background(), func(b *todo.PresetBook) error { return nil })
	if !errors.Is(err, boom) {
		t.Errorf("expected store error, got %v", err)
	}
}

func TestInject(t *testing.T) {
	ctx := context.Background()
	fs := &fakeStore{}
	ws := New(todo.NewTaskList(), todo.NewPresetBook(), fs)

	err := ws.UpdatePresets(ctx, func(b *todo.PresetBook) error {
		p, err := b.Create("chores")
		if err != nil {
			return err
		}
		return p.AddTask('A', "vacuum")
	})
	if err != nil {
		t.Fatalf("UpdatePresets failed: %v", err)
	}
	if fs.presetSaves != 1 {
		t.Errorf("expected presets to be saved")
	}

	for i := 0; i < 2; i++ {
		ids, err := ws.Inject(ctx, "chores")
		if err != nil || len(ids) != 1 {
			t.Fatalf("Inject #%d: expected 1 id, got %v, %v", i, ids, err)
		}
	}
	if len(fs.tasks) != 2 {
		t.Errorf("expected 2 persisted tasks, got %d", len(fs.tasks))
	}

	if _, err := ws.Inject(ctx, "missing"); !errors.Is(err, todo.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestConcurrentUpdates(t *testing.T) {
	ws := New(todo.NewTaskList(), todo.NewPresetBook(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ws.UpdateTasks(context.Background(), func(l *todo.TaskList) error {
				_, err := l.Add('B', "parallel", "")
				return err
			})
		}()
	}
	wg.Wait()

	ws.View(func(l *todo.TaskList, _ *todo.PresetBook) {
		if l.Len() != 20 {
			t.Errorf("expected 20 tasks, got %d", l.Len())
		}
	})
}
