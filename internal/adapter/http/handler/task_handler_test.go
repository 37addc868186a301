package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
	. "taskapp/pkg/test"
)

type TaskHandlerSuite struct {
	suite.Suite
	Router   *gin.Engine
	UserRepo port.UserRepository
	TaskRepo port.TaskRepository
}

func (s *TaskHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db := InitTestDB()

	s.UserRepo = repository.NewUserRepository(db)
	s.TaskRepo = repository.NewTaskRepository(db)

	s.Router = newTestRouter(s.UserRepo, s.TaskRepo)
}

func TestTaskHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TaskHandlerSuite))
}

func (s *TaskHandlerSuite) createTask(token, body string) response.TaskResponse {
	rr := perform(s.Router, "POST", "/tasks", body, token)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	var task response.TaskResponse
	json.Unmarshal(rr.Body.Bytes(), &task)

	return task
}

func (s *TaskHandlerSuite) TestCreateTaskSuccess() {
	signedUp := signUp(s.Router, "Nada", "tasks@example.com", "red12345!")

	task := s.createTask(signedUp.Token, `{"description": "Buy milk"}`)

	Expect(task.Description).To(Equal("Buy milk"))
	Expect(task.Completed).To(BeFalse())
	Expect(task.Owner).To(Equal(signedUp.User.UUID))
	Expect(task.UUID.String()).ToNot(BeEmpty())
}

func (s *TaskHandlerSuite) TestCreateTaskRequiresAuth() {
	rr := perform(s.Router, "POST", "/tasks", `{"description": "Buy milk"}`, "")

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}

func (s *TaskHandlerSuite) TestCreateTaskRequiresDescription() {
	signedUp := signUp(s.Router, "Nada", "nodesc@example.com", "red12345!")

	rr := perform(s.Router, "POST", "/tasks", `{"completed": true}`, signedUp.Token)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *TaskHandlerSuite) TestCreateTaskRejectsBlankDescription() {
	signedUp := signUp(s.Router, "Nada", "blankdesc@example.com", "red12345!")

	rr := perform(s.Router, "POST", "/tasks", `{"description": "   "}`, signedUp.Token)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *TaskHandlerSuite) TestListReturnsOnlyOwnTasks() {
	alice := signUp(s.Router, "Alice", "alice@example.com", "red12345!")
	bob := signUp(s.Router, "Bob", "bob@example.com", "red12345!")

	s.createTask(alice.Token, `{"description": "alice's task"}`)
	s.createTask(bob.Token, `{"description": "bob's task"}`)

	rr := perform(s.Router, "GET", "/tasks", "", alice.Token)

	Expect(rr.Code).To(Equal(http.StatusOK))

	var tasks []response.TaskResponse
	json.Unmarshal(rr.Body.Bytes(), &tasks)

	Expect(tasks).To(HaveLen(1))
	Expect(tasks[0].Description).To(Equal("alice's task"))
}

func (s *TaskHandlerSuite) TestListCompletedFilter() {
	signedUp := signUp(s.Router, "Nada", "filter@example.com", "red12345!")

	s.createTask(signedUp.Token, `{"description": "done", "completed": true}`)
	s.createTask(signedUp.Token, `{"description": "pending"}`)

	rr := perform(s.Router, "GET", "/tasks?completed=true", "", signedUp.Token)

	var tasks []response.TaskResponse
	json.Unmarshal(rr.Body.Bytes(), &tasks)

	Expect(tasks).To(HaveLen(1))
	Expect(tasks[0].Description).To(Equal("done"))

	rr = perform(s.Router, "GET", "/tasks?completed=false", "", signedUp.Token)

	json.Unmarshal(rr.Body.Bytes(), &tasks)

	Expect(tasks).To(HaveLen(1))
	Expect(tasks[0].Description).To(Equal("pending"))
}

func (s *TaskHandlerSuite) TestListPagination() {
	signedUp := signUp(s.Router, "Nada", "paging@example.com", "red12345!")

	s.createTask(signedUp.Token, `{"description": "first"}`)
	s.createTask(signedUp.Token, `{"description": "second"}`)
	s.createTask(signedUp.Token, `{"description": "third"}`)

	rr := perform(s.Router, "GET", "/tasks?limit=2", "", signedUp.Token)

	var tasks []response.TaskResponse
	json.Unmarshal(rr.Body.Bytes(), &tasks)

	Expect(tasks).To(HaveLen(2))

	rr = perform(s.Router, "GET", "/tasks?limit=2&skip=2", "", signedUp.Token)

	json.Unmarshal(rr.Body.Bytes(), &tasks)

	Expect(tasks).To(HaveLen(1))
	Expect(tasks[0].Description).To(Equal("third"))
}

func (s *TaskHandlerSuite) TestListSortBy() {
	signedUp := signUp(s.Router, "Nada", "sorting@example.com", "red12345!")

	s.createTask(signedUp.Token, `{"description": "apple"}`)
	s.createTask(signedUp.Token, `{"description": "banana"}`)

	rr := perform(s.Router, "GET", "/tasks?sortBy=description_desc", "", signedUp.Token)

	var tasks []response.TaskResponse
	json.Unmarshal(rr.Body.Bytes(), &tasks)

	Expect(tasks[0].Description).To(Equal("banana"))
}

func (s *TaskHandlerSuite) TestListRejectsUnknownSortField() {
	signedUp := signUp(s.Router, "Nada", "badsort@example.com", "red12345!")

	rr := perform(s.Router, "GET", "/tasks?sortBy=password_desc", "", signedUp.Token)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *TaskHandlerSuite) TestGetTaskHidesOtherOwners() {
	alice := signUp(s.Router, "Alice", "alice2@example.com", "red12345!")
	bob := signUp(s.Router, "Bob", "bob2@example.com", "red12345!")

	task := s.createTask(alice.Token, `{"description": "private"}`)

	rr := perform(s.Router, "GET", "/tasks/"+task.UUID.String(), "", bob.Token)

	// existence is not revealed to non-owners
	Expect(rr.Code).To(Equal(http.StatusNotFound))

	rr = perform(s.Router, "GET", "/tasks/"+task.UUID.String(), "", alice.Token)
	Expect(rr.Code).To(Equal(http.StatusOK))
}

func (s *TaskHandlerSuite) TestUpdateTaskSuccess() {
	signedUp := signUp(s.Router, "Nada", "update@example.com", "red12345!")

	task := s.createTask(signedUp.Token, `{"description": "before"}`)

	rr := perform(s.Router, "PATCH", "/tasks/"+task.UUID.String(), `{"completed": true}`, signedUp.Token)

	Expect(rr.Code).To(Equal(http.StatusOK))

	var updated response.TaskResponse
	json.Unmarshal(rr.Body.Bytes(), &updated)

	Expect(updated.Completed).To(BeTrue())
	Expect(updated.Description).To(Equal("before"))
}

func (s *TaskHandlerSuite) TestUpdateTaskRejectsUnknownField() {
	signedUp := signUp(s.Router, "Nada", "strict2@example.com", "red12345!")

	task := s.createTask(signedUp.Token, `{"description": "strict"}`)

	rr := perform(s.Router, "PATCH", "/tasks/"+task.UUID.String(), `{"owner": "someone-else"}`, signedUp.Token)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *TaskHandlerSuite) TestUpdateTaskOfOtherOwner() {
	alice := signUp(s.Router, "Alice", "alice3@example.com", "red12345!")
	bob := signUp(s.Router, "Bob", "bob3@example.com", "red12345!")

	task := s.createTask(alice.Token, `{"description": "alice only"}`)

	rr := perform(s.Router, "PATCH", "/tasks/"+task.UUID.String(), `{"completed": true}`, bob.Token)

	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *TaskHandlerSuite) TestDeleteTaskSuccess() {
	signedUp := signUp(s.Router, "Nada", "remove@example.com", "red12345!")

	task := s.createTask(signedUp.Token, `{"description": "to remove"}`)

	rr := perform(s.Router, "DELETE", "/tasks/"+task.UUID.String(), "", signedUp.Token)
	Expect(rr.Code).To(Equal(http.StatusOK))

	rr = perform(s.Router, "GET", "/tasks/"+task.UUID.String(), "", signedUp.Token)
	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *TaskHandlerSuite) TestDeleteTaskOfOtherOwner() {
	alice := signUp(s.Router, "Alice", "alice4@example.com", "red12345!")
	bob := signUp(s.Router, "Bob", "bob4@example.com", "red12345!")

	task := s.createTask(alice.Token, `{"description": "keep out"}`)

	rr := perform(s.Router, "DELETE", "/tasks/"+task.UUID.String(), "", bob.Token)

	Expect(rr.Code).To(Equal(http.StatusNotFound))
}
