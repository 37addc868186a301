package port

import (
	"context"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByUUID(ctx context.Context, uuid string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	DeleteByID(ctx context.Context, id int) error

	// Session token collection. GetByToken resolves the user only while the
	// exact token string is still present for the user identified by uuid.
	AddToken(ctx context.Context, userID int, token string) error
	RemoveToken(ctx context.Context, userID int, token string) error
	RemoveAllTokens(ctx context.Context, userID int) error
	GetByToken(ctx context.Context, uuid string, token string) (domain.User, error)

	SetAvatar(ctx context.Context, userID int, avatar []byte) error
	ClearAvatar(ctx context.Context, userID int) error
	GetAvatarByUUID(ctx context.Context, uuid string) ([]byte, error)
}

type AccountService interface {
	Register(ctx context.Context, req *request.SignUpRequest) (domain.User, string, error)
	Login(ctx context.Context, req *request.LoginRequest) (domain.User, string, error)
	Logout(ctx context.Context, userID int, token string) error
	LogoutAll(ctx context.Context, userID int) error
	UpdateProfile(ctx context.Context, user domain.User, req *request.UpdateUserRequest) (domain.User, error)
	DeleteAccount(ctx context.Context, user domain.User) error
	SetAvatar(ctx context.Context, user domain.User, filename string, data []byte) error
	ClearAvatar(ctx context.Context, user domain.User) error
	GetAvatarByUUID(ctx context.Context, uuid string) ([]byte, error)
}
