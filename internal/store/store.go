package store

import (
	"context"
	"database/sql"
	"fmt"

	"todo-presets-backend/internal/todo"
)

// Store persists whole snapshots of the task list and the preset book.
// Every save replaces the previous snapshot inside one transaction.
type Store struct {
	DB *sql.DB
}

func New(dbx *sql.DB) *Store {
	return &Store{DB: dbx}
}

func (s *Store) LoadTasks(ctx context.Context) ([]todo.Task, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, priority, description, completed, project
		FROM tasks
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	defer rows.Close()

	var tasks []todo.Task
	for rows.Next() {
		var (
			t        todo.Task
			priority string
		)
		if err := rows.Scan(&t.ID, &priority, &t.Description, &t.Completed, &t.Project); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if t.Priority, err = todo.ParsePriority(priority); err != nil {
			return nil, fmt.Errorf("task %s: %w", t.ID, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return tasks, nil
}

// SaveTasks replaces the stored tasks with tasks, keeping their order.
func (s *Store) SaveTasks(ctx context.Context, tasks []todo.Task) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (id, position, priority, description, completed, project)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return fmt.Errorf("prepare task insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		if _, err := stmt.ExecContext(ctx, t.ID, i, t.Priority.String(), t.Description, t.Completed, t.Project); err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// LoadPresets fills book with the stored presets.
func (s *Store) LoadPresets(ctx context.Context, book *todo.PresetBook) error {
	names, err := s.presetNames(ctx)
	if err != nil {
		return err
	}

	for _, name := range names {
		p, err := book.Create(name)
		if err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}
		if err := s.loadPresetTasks(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) presetNames(ctx context.Context) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT name FROM presets ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("load presets: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) loadPresetTasks(ctx context.Context, p *todo.Preset) error {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT priority, description
		FROM preset_tasks
		WHERE preset_name = $1
		ORDER BY position ASC
	`, p.Name())
	if err != nil {
		return fmt.Errorf("load preset tasks of %s: %w", p.Name(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var priority, description string
		if err := rows.Scan(&priority, &description); err != nil {
			return fmt.Errorf("scan preset task: %w", err)
		}
		pr, err := todo.ParsePriority(priority)
		if err != nil {
			return fmt.Errorf("preset %s: %w", p.Name(), err)
		}
		if err := p.AddTask(pr, description); err != nil {
			return fmt.Errorf("preset %s: %w", p.Name(), err)
		}
	}
	return rows.Err()
}

// SavePresets replaces the stored presets with the contents of book.
func (s *Store) SavePresets(ctx context.Context, book *todo.PresetBook) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save presets: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM preset_tasks`); err != nil {
		return fmt.Errorf("clear preset tasks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM presets`); err != nil {
		return fmt.Errorf("clear presets: %w", err)
	}

	for i, p := range book.Presets() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO presets (name, position) VALUES ($1, $2)`,
			p.Name(), i,
		); err != nil {
			return fmt.Errorf("insert preset %s: %w", p.Name(), err)
		}
		for j, pt := range p.Tasks() {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO preset_tasks (preset_name, position, priority, description)
				VALUES ($1, $2, $3, $4)
			`, p.Name(), j, pt.Priority.String(), pt.Description); err != nil {
				return fmt.Errorf("insert preset task %s/%d: %w", p.Name(), j, err)
			}
		}
	}

	return tx.Commit()
}
