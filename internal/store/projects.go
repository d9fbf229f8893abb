package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"boardhook/internal/board"
)

// ErrNotFound indicates a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ProjectByID resolves a project record by identifier.
func (s *Store) ProjectByID(ctx context.Context, id int64) (board.Project, error) {
	ctx = ensureContext(ctx)
	var project board.Project
	err := s.db.QueryRowContext(ctx, "SELECT id, name FROM projects WHERE id = ?", id).
		Scan(&project.ID, &project.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return board.Project{}, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return board.Project{}, fmt.Errorf("read project %d: %w", id, err)
	}
	return project, nil
}

// UpsertProject creates or updates a project record.
func (s *Store) UpsertProject(ctx context.Context, project board.Project) error {
	if err := s.execWithRetry(ctx,
		"INSERT INTO projects (id, name) VALUES (?, ?) ON CONFLICT (id) DO UPDATE SET name = excluded.name",
		project.ID, project.Name,
	); err != nil {
		return fmt.Errorf("write project %d: %w", project.ID, err)
	}
	return nil
}

// UpsertTask creates or updates a task record.
func (s *Store) UpsertTask(ctx context.Context, task board.Task) error {
	if err := s.execWithRetry(ctx,
		`INSERT INTO tasks (id, project_id, title, description, date_due, is_active)
		 VALUES (?, ?, ?, ?, ?, 1)
		 ON CONFLICT (id) DO UPDATE SET
		   project_id = excluded.project_id,
		   title = excluded.title,
		   description = excluded.description,
		   date_due = excluded.date_due`,
		task.ID, task.ProjectID, task.Title, task.Description, task.DateDue,
	); err != nil {
		return fmt.Errorf("write task %d: %w", task.ID, err)
	}
	return nil
}

// OverdueTasks returns active tasks whose due date has passed, joined with
// their owning project's name, ordered by project then task id.
func (s *Store) OverdueTasks(ctx context.Context, now time.Time) ([]board.Task, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.id, t.project_id, t.title, t.description, t.date_due, p.name
		 FROM tasks t
		 JOIN projects p ON p.id = t.project_id
		 WHERE t.is_active = 1 AND t.date_due > 0 AND t.date_due < ?
		 ORDER BY t.project_id, t.id`,
		now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("query overdue tasks: %w", err)
	}
	defer rows.Close()

	var tasks []board.Task
	for rows.Next() {
		var task board.Task
		if err := rows.Scan(&task.ID, &task.ProjectID, &task.Title, &task.Description, &task.DateDue, &task.ProjectName); err != nil {
			return nil, fmt.Errorf("scan overdue task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate overdue tasks: %w", err)
	}
	return tasks, nil
}
