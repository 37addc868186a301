package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"taskapp/internal/adapter/database/sqlite"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
)

const taskColumns = "id, uuid, description, completed, user_id, created_at, updated_at"

type TaskRepository struct {
	db *sqlite.DB
}

func NewTaskRepository(db *sqlite.DB) port.TaskRepository {
	return &TaskRepository{db: db}
}

func (tr *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	stmt, args, err := tr.db.QueryBuilder.Insert("tasks").
		Columns("uuid", "description", "completed", "user_id", "created_at", "updated_at").
		Values(task.UUID.String(), task.Description, task.Completed, task.UserID, task.CreatedAt, task.UpdatedAt).
		ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	if _, err := tr.db.ExecContext(ctx, stmt, args...); err != nil {
		slog.Error("Error creating task", "error", err)
		return domain.Task{}, err
	}

	return tr.GetByUUID(ctx, task.UUID.String(), task.UserID)
}

func (tr *TaskRepository) GetByUUID(ctx context.Context, uid string, userID int) (domain.Task, error) {
	stmt, args, err := tr.db.QueryBuilder.Select(taskColumns).
		From("tasks").
		Where(sq.Eq{"uuid": uid, "user_id": userID}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	return scanTask(tr.db.QueryRowContext(ctx, stmt, args...))
}

func (tr *TaskRepository) List(ctx context.Context, userID int, filter port.TaskFilter) ([]domain.Task, error) {
	query := tr.db.QueryBuilder.Select(taskColumns).
		From("tasks").
		Where(sq.Eq{"user_id": userID})

	if filter.Completed != nil {
		query = query.Where(sq.Eq{"completed": *filter.Completed})
	}

	if filter.SortField != "" {
		direction := "ASC"

		if filter.SortDesc {
			direction = "DESC"
		}

		query = query.OrderBy(filter.SortField+" "+direction, "id ASC")
	} else {
		query = query.OrderBy("id ASC")
	}

	switch {
	case filter.Limit > 0:
		query = query.Limit(uint64(filter.Limit))

		if filter.Skip > 0 {
			query = query.Offset(uint64(filter.Skip))
		}
	case filter.Skip > 0:
		// sqlite requires a LIMIT clause before OFFSET; -1 means unbounded.
		query = query.Suffix("LIMIT -1 OFFSET ?", filter.Skip)
	}

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error listing tasks", "error", err)
		return nil, err
	}

	defer rows.Close()

	tasks := []domain.Task{}

	for rows.Next() {
		var task domain.Task

		err := rows.Scan(
			&task.ID,
			&task.UUID,
			&task.Description,
			&task.Completed,
			&task.UserID,
			&task.CreatedAt,
			&task.UpdatedAt,
		)

		if err != nil {
			return nil, err
		}

		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (tr *TaskRepository) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	stmt, args, err := tr.db.QueryBuilder.Update("tasks").
		SetMap(map[string]interface{}{
			"description": task.Description,
			"completed":   task.Completed,
			"updated_at":  task.UpdatedAt,
		}).
		Where(sq.Eq{"uuid": task.UUID.String(), "user_id": task.UserID}).
		ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error updating task", "error", err)
		return domain.Task{}, err
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return domain.Task{}, domain.ErrNotFound
	}

	return tr.GetByUUID(ctx, task.UUID.String(), task.UserID)
}

func (tr *TaskRepository) DeleteByUUID(ctx context.Context, uid string, userID int) error {
	stmt, args, err := tr.db.QueryBuilder.Delete("tasks").
		Where(sq.Eq{"uuid": uid, "user_id": userID}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return err
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (tr *TaskRepository) DeleteAllByUser(ctx context.Context, userID int) error {
	stmt, args, err := tr.db.QueryBuilder.Delete("tasks").
		Where(sq.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return err
	}

	_, err = tr.db.ExecContext(ctx, stmt, args...)

	return err
}

func scanTask(row *sql.Row) (domain.Task, error) {
	var task domain.Task

	err := row.Scan(
		&task.ID,
		&task.UUID,
		&task.Description,
		&task.Completed,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrNotFound
		}

		return domain.Task{}, err
	}

	return task, nil
}
