package service_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/port"
	"taskapp/internal/core/service"
	. "taskapp/pkg/test"
	"taskapp/pkg/test/factory"
)

type TaskServiceTestSuite struct {
	suite.Suite
	Tasks    port.TaskService
	TaskRepo port.TaskRepository
	UserRepo port.UserRepository
	Owner    domain.User
}

func (s *TaskServiceTestSuite) SetupTest() {
	db := InitTestDB()

	s.TaskRepo = repository.NewTaskRepository(db)
	s.UserRepo = repository.NewUserRepository(db)
	s.Tasks = service.NewTaskService(s.TaskRepo)

	s.Owner, _ = s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "owner@example.com",
	}))
}

func TestTaskServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TaskServiceTestSuite))
}

func (s *TaskServiceTestSuite) TestTask_Create_AssignsIdentity() {
	task, err := s.Tasks.Create(context.Background(), s.Owner.ID, &request.TaskRequest{
		Description: "Buy milk",
	})

	Expect(err).To(BeNil())
	Expect(task.UUID.String()).ToNot(BeEmpty())
	Expect(task.Completed).To(BeFalse())
	Expect(task.UserID).To(Equal(s.Owner.ID))
	Expect(task.CreatedAt).ToNot(BeZero())
}

func (s *TaskServiceTestSuite) TestTask_List_SortByToken() {
	s.Tasks.Create(context.Background(), s.Owner.ID, &request.TaskRequest{Description: "apple"})
	s.Tasks.Create(context.Background(), s.Owner.ID, &request.TaskRequest{Description: "banana"})

	tasks, err := s.Tasks.List(context.Background(), s.Owner.ID, nil, 0, 0, "description_desc")

	Expect(err).To(BeNil())
	Expect(tasks[0].Description).To(Equal("banana"))
	Expect(tasks[1].Description).To(Equal("apple"))

	tasks, err = s.Tasks.List(context.Background(), s.Owner.ID, nil, 0, 0, "description_asc")

	Expect(err).To(BeNil())
	Expect(tasks[0].Description).To(Equal("apple"))
}

func (s *TaskServiceTestSuite) TestTask_List_UnknownSortField() {
	_, err := s.Tasks.List(context.Background(), s.Owner.ID, nil, 0, 0, "password_desc")

	Expect(err).To(MatchError(domain.ErrInvalidSortField))
}

func (s *TaskServiceTestSuite) TestTask_List_MissingDirectionSortsAscending() {
	s.Tasks.Create(context.Background(), s.Owner.ID, &request.TaskRequest{Description: "banana"})
	s.Tasks.Create(context.Background(), s.Owner.ID, &request.TaskRequest{Description: "apple"})

	tasks, err := s.Tasks.List(context.Background(), s.Owner.ID, nil, 0, 0, "description")

	Expect(err).To(BeNil())
	Expect(tasks[0].Description).To(Equal("apple"))
}

func (s *TaskServiceTestSuite) TestTask_Update_PartialFields() {
	task, _ := s.Tasks.Create(context.Background(), s.Owner.ID, &request.TaskRequest{
		Description: "unchanged",
	})

	completed := true
	updated, err := s.Tasks.Update(context.Background(), task.UUID.String(), s.Owner.ID, &request.UpdateTaskRequest{
		Completed: &completed,
	})

	Expect(err).To(BeNil())
	Expect(updated.Completed).To(BeTrue())
	Expect(updated.Description).To(Equal("unchanged"))
}

func (s *TaskServiceTestSuite) TestTask_Update_NotFound() {
	completed := true
	_, err := s.Tasks.Update(context.Background(), "00000000-0000-0000-0000-000000000000", s.Owner.ID, &request.UpdateTaskRequest{
		Completed: &completed,
	})

	Expect(err).To(MatchError(domain.ErrNotFound))
}

func (s *TaskServiceTestSuite) TestTask_Delete_NotFound() {
	err := s.Tasks.DeleteByUUID(context.Background(), "00000000-0000-0000-0000-000000000000", s.Owner.ID)

	Expect(err).To(MatchError(domain.ErrNotFound))
}
