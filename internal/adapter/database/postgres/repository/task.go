package repository

import (
	"context"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"taskapp/internal/adapter/database/postgres"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	"taskapp/pkg/tracing"
)

const taskColumns = "id, uuid, description, completed, user_id, created_at, updated_at"

type TaskRepository struct {
	db *postgres.DB
}

func NewTaskRepository(db *postgres.DB) port.TaskRepository {
	return &TaskRepository{db: db}
}

func (tr *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	stmt, args, err := tr.db.QueryBuilder.Insert("tasks").
		Columns("uuid", "description", "completed", "user_id", "created_at", "updated_at").
		Values(task.UUID, task.Description, task.Completed, task.UserID, task.CreatedAt, task.UpdatedAt).
		Suffix("RETURNING " + taskColumns).
		ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	saved, err := scanTask(tr.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		slog.Error("Error creating task", "error", err)
		return domain.Task{}, err
	}

	return saved, nil
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

	return scanTask(tr.db.QueryRow(ctx, stmt, args...))
}

func (tr *TaskRepository) List(ctx context.Context, userID int, filter port.TaskFilter) ([]domain.Task, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "db.tasks.List", []attribute.KeyValue{
		attribute.String("db.table", "tasks"),
		attribute.String("db.operation", "SELECT"),
		attribute.Int("user.id", userID),
		attribute.Int("task.limit", filter.Limit),
		attribute.Int("task.skip", filter.Skip),
	})

	defer span.End()

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

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Skip > 0 {
		query = query.Offset(uint64(filter.Skip))
	}

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.Query(ctx, stmt, args...)

	if err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("Error listing tasks", "error", err)

		return nil, err
	}

	defer rows.Close()

	tasks := []domain.Task{}

	for rows.Next() {
		task, err := scanTask(rows)

		if err != nil {
			return nil, err
		}

		tasks = append(tasks, task)
	}

	span.SetAttributes(attribute.Int("db.rows_returned", len(tasks)))

	return tasks, rows.Err()
}

func (tr *TaskRepository) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	stmt, args, err := tr.db.QueryBuilder.Update("tasks").
		SetMap(map[string]interface{}{
			"description": task.Description,
			"completed":   task.Completed,
			"updated_at":  task.UpdatedAt,
		}).
		Where(sq.Eq{"uuid": task.UUID, "user_id": task.UserID}).
		Suffix("RETURNING " + taskColumns).
		ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	return scanTask(tr.db.QueryRow(ctx, stmt, args...))
}

func (tr *TaskRepository) DeleteByUUID(ctx context.Context, uid string, userID int) error {
	stmt, args, err := tr.db.QueryBuilder.Delete("tasks").
		Where(sq.Eq{"uuid": uid, "user_id": userID}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := tr.db.Exec(ctx, stmt, args...)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
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

	_, err = tr.db.Exec(ctx, stmt, args...)

	return err
}

func scanTask(row pgx.Row) (domain.Task, error) {
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
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Task{}, domain.ErrNotFound
		}

		return domain.Task{}, err
	}

	return task, nil
}
