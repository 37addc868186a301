package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	. "taskapp/pkg/test"
	"taskapp/pkg/test/factory"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	UserRepo port.UserRepository
	TaskRepo port.TaskRepository
}

func (s *UserRepositoryTestSuite) SetupTest() {
	db := InitTestDB()

	s.UserRepo = repository.NewUserRepository(db)
	s.TaskRepo = repository.NewTaskRepository(db)
}

func TestUserRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) TestRepository_CreateUser_Success() {
	user, err := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Name":  "Nada",
		"Email": "nada@example.com",
	}))

	Expect(err).To(BeNil())
	Expect(user.ID).To(BeNumerically(">", 0))
	Expect(user.Name).To(Equal("Nada"))
	Expect(user.Email).To(Equal("nada@example.com"))
}

func (s *UserRepositoryTestSuite) TestRepository_CreateUser_DuplicateEmail() {
	_, err := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "taken@example.com",
	}))

	Expect(err).To(BeNil())

	_, err = s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "taken@example.com",
	}))

	Expect(err).To(MatchError(domain.ErrEmailTaken))
}

func (s *UserRepositoryTestSuite) TestRepository_GetByEmail_NotFound() {
	_, err := s.UserRepo.GetByEmail(context.Background(), "missing@example.com")

	Expect(err).To(MatchError(domain.ErrNotFound))
}

func (s *UserRepositoryTestSuite) TestRepository_UpdateUser_Success() {
	user, _ := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "before@example.com",
	}))

	user.Name = "Renamed"
	user.Email = "after@example.com"

	updated, err := s.UserRepo.Update(context.Background(), user)

	Expect(err).To(BeNil())
	Expect(updated.Name).To(Equal("Renamed"))
	Expect(updated.Email).To(Equal("after@example.com"))
}

func (s *UserRepositoryTestSuite) TestRepository_UpdateUser_NotFound() {
	missing := factory.NewUser()
	missing.ID = 9999

	_, err := s.UserRepo.Update(context.Background(), missing)

	Expect(err).To(MatchError(domain.ErrNotFound))
}

func (s *UserRepositoryTestSuite) TestRepository_Tokens_Lifecycle() {
	user, _ := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "tokens@example.com",
	}))

	err := s.UserRepo.AddToken(context.Background(), user.ID, "token-a")
	Expect(err).To(BeNil())

	err = s.UserRepo.AddToken(context.Background(), user.ID, "token-b")
	Expect(err).To(BeNil())

	found, err := s.UserRepo.GetByToken(context.Background(), user.UUID.String(), "token-a")

	Expect(err).To(BeNil())
	Expect(found.ID).To(Equal(user.ID))

	err = s.UserRepo.RemoveToken(context.Background(), user.ID, "token-a")
	Expect(err).To(BeNil())

	_, err = s.UserRepo.GetByToken(context.Background(), user.UUID.String(), "token-a")
	Expect(err).To(MatchError(domain.ErrNotFound))

	// the other session stays valid
	_, err = s.UserRepo.GetByToken(context.Background(), user.UUID.String(), "token-b")
	Expect(err).To(BeNil())
}

func (s *UserRepositoryTestSuite) TestRepository_RemoveAllTokens() {
	user, _ := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "sessions@example.com",
	}))

	s.UserRepo.AddToken(context.Background(), user.ID, "token-a")
	s.UserRepo.AddToken(context.Background(), user.ID, "token-b")

	err := s.UserRepo.RemoveAllTokens(context.Background(), user.ID)
	Expect(err).To(BeNil())

	_, err = s.UserRepo.GetByToken(context.Background(), user.UUID.String(), "token-a")
	Expect(err).To(MatchError(domain.ErrNotFound))

	_, err = s.UserRepo.GetByToken(context.Background(), user.UUID.String(), "token-b")
	Expect(err).To(MatchError(domain.ErrNotFound))
}

func (s *UserRepositoryTestSuite) TestRepository_GetByToken_WrongUser() {
	alice, _ := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "alice@example.com",
	}))
	bob, _ := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "bob@example.com",
	}))

	s.UserRepo.AddToken(context.Background(), alice.ID, "alice-token")

	_, err := s.UserRepo.GetByToken(context.Background(), bob.UUID.String(), "alice-token")

	Expect(err).To(MatchError(domain.ErrNotFound))
}

func (s *UserRepositoryTestSuite) TestRepository_Avatar_Lifecycle() {
	user, _ := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "avatar@example.com",
	}))

	err := s.UserRepo.SetAvatar(context.Background(), user.ID, []byte{0x89, 0x50, 0x4e, 0x47})
	Expect(err).To(BeNil())

	avatar, err := s.UserRepo.GetAvatarByUUID(context.Background(), user.UUID.String())

	Expect(err).To(BeNil())
	Expect(avatar).To(Equal([]byte{0x89, 0x50, 0x4e, 0x47}))

	err = s.UserRepo.ClearAvatar(context.Background(), user.ID)
	Expect(err).To(BeNil())

	avatar, err = s.UserRepo.GetAvatarByUUID(context.Background(), user.UUID.String())

	Expect(err).To(BeNil())
	Expect(avatar).To(BeEmpty())
}

func (s *UserRepositoryTestSuite) TestRepository_GetAvatarByUUID_UnknownUser() {
	_, err := s.UserRepo.GetAvatarByUUID(context.Background(), uuid.NewString())

	Expect(err).To(MatchError(domain.ErrNotFound))
}

func (s *UserRepositoryTestSuite) TestRepository_DeleteByID_CascadesTasks() {
	user, _ := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "cascade@example.com",
	}))

	task, _ := s.TaskRepo.Create(context.Background(), factory.NewTask(map[string]any{
		"UserID": user.ID,
	}))

	err := s.UserRepo.DeleteByID(context.Background(), user.ID)
	Expect(err).To(BeNil())

	_, err = s.UserRepo.GetByUUID(context.Background(), user.UUID.String())
	Expect(err).To(MatchError(domain.ErrNotFound))

	_, err = s.TaskRepo.GetByUUID(context.Background(), task.UUID.String(), user.ID)
	Expect(err).To(MatchError(domain.ErrNotFound))
}
