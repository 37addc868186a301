package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/port"
)

// sortableFields maps the sortBy token's field part to its store column.
// Anything outside it is rejected instead of passed through to SQL.
var sortableFields = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"description": "description",
	"completed":   "completed",
}

type TaskService struct {
	repo port.TaskRepository
}

func NewTaskService(repo port.TaskRepository) *TaskService {
	return &TaskService{repo}
}

func (ts *TaskService) Create(ctx context.Context, userID int, req *request.TaskRequest) (domain.Task, error) {
	now := time.Now()

	task := domain.Task{
		UUID:        uuid.New(),
		Description: strings.TrimSpace(req.Description),
		Completed:   req.Completed,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	saved, err := ts.repo.Create(ctx, task)

	if err != nil {
		slog.Error("Task#Create", "error", err)
		return domain.Task{}, err
	}

	return saved, nil
}

func (ts *TaskService) List(ctx context.Context, userID int, completed *bool, limit, skip int, sortBy string) ([]domain.Task, error) {
	filter := port.TaskFilter{
		Completed: completed,
		Limit:     max(limit, 0),
		Skip:      max(skip, 0),
	}

	if sortBy != "" {
		field, desc, err := parseSortBy(sortBy)

		if err != nil {
			return nil, err
		}

		filter.SortField = field
		filter.SortDesc = desc
	}

	return ts.repo.List(ctx, userID, filter)
}

func (ts *TaskService) GetByUUID(ctx context.Context, uid string, userID int) (domain.Task, error) {
	return ts.repo.GetByUUID(ctx, uid, userID)
}

func (ts *TaskService) Update(ctx context.Context, uid string, userID int, req *request.UpdateTaskRequest) (domain.Task, error) {
	task, err := ts.repo.GetByUUID(ctx, uid, userID)

	if err != nil {
		return domain.Task{}, err
	}

	if req.Description != nil {
		task.Description = strings.TrimSpace(*req.Description)
	}

	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	task.UpdatedAt = time.Now()

	return ts.repo.Update(ctx, task)
}

func (ts *TaskService) DeleteByUUID(ctx context.Context, uid string, userID int) error {
	return ts.repo.DeleteByUUID(ctx, uid, userID)
}

// parseSortBy splits a combined field-direction token such as
// "createdAt_desc". A missing or unrecognized direction sorts ascending.
func parseSortBy(sortBy string) (string, bool, error) {
	field, direction, _ := strings.Cut(sortBy, "_")

	column, ok := sortableFields[field]

	if !ok {
		return "", false, domain.ErrInvalidSortField
	}

	return column, direction == "desc", nil
}
