package port

import (
	"context"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
)

// TaskFilter narrows and orders an owner-scoped listing. Completed nil means
// no completion filter; Limit 0 means unbounded; SortField empty keeps
// creation order.
type TaskFilter struct {
	Completed *bool
	Limit     int
	Skip      int
	SortField string
	SortDesc  bool
}

type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	GetByUUID(ctx context.Context, uuid string, userID int) (domain.Task, error)
	List(ctx context.Context, userID int, filter TaskFilter) ([]domain.Task, error)
	Update(ctx context.Context, task domain.Task) (domain.Task, error)
	DeleteByUUID(ctx context.Context, uuid string, userID int) error
	DeleteAllByUser(ctx context.Context, userID int) error
}

type TaskService interface {
	Create(ctx context.Context, userID int, req *request.TaskRequest) (domain.Task, error)
	List(ctx context.Context, userID int, completed *bool, limit, skip int, sortBy string) ([]domain.Task, error)
	GetByUUID(ctx context.Context, uuid string, userID int) (domain.Task, error)
	Update(ctx context.Context, uuid string, userID int, req *request.UpdateTaskRequest) (domain.Task, error)
	DeleteByUUID(ctx context.Context, uuid string, userID int) error
}
