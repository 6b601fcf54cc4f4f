// Package workspace owns the single long-lived task list and preset book of
// the application and guards them with one mutex. Every successful mutation
// is written through to the Store.
package workspace

import (
	"context"
	"fmt"
	"sync"

	"todo-presets-backend/internal/todo"
)

// Store is what the workspace needs from persistence. *store.Store satisfies it.
type Store interface {
	LoadTasks(ctx context.Context) ([]todo.Task, error)
	SaveTasks(ctx context.Context, tasks []todo.Task) error
	LoadPresets(ctx context.Context, book *todo.PresetBook) error
	SavePresets(ctx context.Context, book *todo.PresetBook) error
}

type Workspace struct {
	mu      sync.Mutex
	tasks   *todo.TaskList
	presets *todo.PresetBook
	store   Store
}

// New wraps existing state. A nil store keeps everything in memory.
func New(tasks *todo.TaskList, presets *todo.PresetBook, store Store) *Workspace {
	return &Workspace{tasks: tasks, presets: presets, store: store}
}

// Open loads the persisted state into a fresh workspace.
func Open(ctx context.Context, store Store) (*Workspace, error) {
	saved, err := store.LoadTasks(ctx)
	if err != nil {
		return nil, err
	}
	tasks := todo.NewTaskList()
	if err := tasks.Restore(saved); err != nil {
		return nil, fmt.Errorf("restore tasks: %w", err)
	}

	presets := todo.NewPresetBook()
	if err := store.LoadPresets(ctx, presets); err != nil {
		return nil, err
	}

	return New(tasks, presets, store), nil
}

// View runs fn under the lock without persisting anything. fn must not mutate.
func (w *Workspace) View(fn func(*todo.TaskList, *todo.PresetBook)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(w.tasks, w.presets)
}

// UpdateTasks runs fn under the lock and saves the task list if fn succeeds.
func (w *Workspace) UpdateTasks(ctx context.Context, fn func(*todo.TaskList) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := fn(w.tasks); err != nil {
		return err
	}
	return w.saveTasks(ctx)
}

// UpdatePresets runs fn under the lock and saves the presets if fn succeeds.
func (w *Workspace) UpdatePresets(ctx context.Context, fn func(*todo.PresetBook) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := fn(w.presets); err != nil {
		return err
	}
	if w.store == nil {
		return nil
	}
	if err := w.store.SavePresets(ctx, w.presets); err != nil {
		return fmt.Errorf("persist presets: %w", err)
	}
	return nil
}

// Inject materialises the named preset into the task list.
func (w *Workspace) Inject(ctx context.Context, name string) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, err := w.presets.Get(name)
	if err != nil {
		return nil, err
	}
	ids, err := todo.Inject(p, w.tasks)
	if err != nil {
		return nil, err
	}
	if err := w.saveTasks(ctx); err != nil {
		return nil, err
	}
	return ids, nil
}

func (w *Workspace) saveTasks(ctx context.Context) error {
	if w.store == nil {
		return nil
	}
	if err := w.store.SaveTasks(ctx, w.tasks.Snapshot()); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}
