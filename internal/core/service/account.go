package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/port"
	"taskapp/internal/core/util"
	"taskapp/pkg/auth"
)

const (
	maxAvatarBytes = 1000000
	avatarCacheTTL = 5 * time.Minute
)

var allowedAvatarExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type AccountService struct {
	users    port.UserRepository
	tasks    port.TaskRepository
	tokens   *auth.JWT
	notifier port.Notifier
	images   port.ImageProcessor
	cache    port.CacheRepository
}

func NewAccountService(
	users port.UserRepository,
	tasks port.TaskRepository,
	tokens *auth.JWT,
	notifier port.Notifier,
	images port.ImageProcessor,
	cache port.CacheRepository,
) *AccountService {
	return &AccountService{
		users:    users,
		tasks:    tasks,
		tokens:   tokens,
		notifier: notifier,
		images:   images,
		cache:    cache,
	}
}

func (as *AccountService) Register(ctx context.Context, req *request.SignUpRequest) (domain.User, string, error) {
	hashed, err := util.HashPassword(req.Password)

	if err != nil {
		return domain.User{}, "", fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()

	user := domain.User{
		UUID:         uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hashed,
		Age:          req.Age,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	saved, err := as.users.Create(ctx, user)

	if err != nil {
		return domain.User{}, "", err
	}

	as.notifyWelcome(saved)

	token, err := as.issueToken(ctx, saved)

	if err != nil {
		return domain.User{}, "", err
	}

	return saved, token, nil
}

func (as *AccountService) Login(ctx context.Context, req *request.LoginRequest) (domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := as.users.GetByEmail(ctx, email)

	// A missing account and a wrong password are indistinguishable on purpose.
	if err != nil {
		slog.Error("Account#Login", "get_by_email", err)
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	if err := util.ComparePassword(req.Password, user.PasswordHash); err != nil {
		slog.Error("Account#Login", "compare_password", err)
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	token, err := as.issueToken(ctx, user)

	if err != nil {
		return domain.User{}, "", err
	}

	return user, token, nil
}

func (as *AccountService) Logout(ctx context.Context, userID int, token string) error {
	return as.users.RemoveToken(ctx, userID, token)
}

func (as *AccountService) LogoutAll(ctx context.Context, userID int) error {
	return as.users.RemoveAllTokens(ctx, userID)
}

func (as *AccountService) UpdateProfile(ctx context.Context, user domain.User, req *request.UpdateUserRequest) (domain.User, error) {
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}

	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	if req.Password != nil {
		hashed, err := util.HashPassword(*req.Password)

		if err != nil {
			return domain.User{}, fmt.Errorf("hashing password: %w", err)
		}

		user.PasswordHash = hashed
	}

	if req.Age != nil {
		user.Age = *req.Age
	}

	user.UpdatedAt = time.Now()

	return as.users.Update(ctx, user)
}

// DeleteAccount fires the cancellation notice, then removes the user's tasks
// and finally the user record. The two deletes are separate store calls: if
// the task sweep fails the account stays and the whole call errors; if the
// user delete fails after the sweep, the tasks stay gone.
func (as *AccountService) DeleteAccount(ctx context.Context, user domain.User) error {
	as.notifyCancellation(user)

	if err := as.tasks.DeleteAllByUser(ctx, user.ID); err != nil {
		return fmt.Errorf("deleting owned tasks: %w", err)
	}

	if err := as.users.DeleteByID(ctx, user.ID); err != nil {
		return err
	}

	as.dropCachedAvatar(ctx, user)

	return nil
}

func (as *AccountService) SetAvatar(ctx context.Context, user domain.User, filename string, data []byte) error {
	if len(data) > maxAvatarBytes {
		return domain.ErrAvatarTooLarge
	}

	if !allowedAvatarExtensions[strings.ToLower(filepath.Ext(filename))] {
		return domain.ErrAvatarUnsupported
	}

	normalized, err := as.images.Normalize(data)

	if err != nil {
		return domain.ErrAvatarUnsupported
	}

	if err := as.users.SetAvatar(ctx, user.ID, normalized); err != nil {
		return err
	}

	as.dropCachedAvatar(ctx, user)

	return nil
}

func (as *AccountService) ClearAvatar(ctx context.Context, user domain.User) error {
	if err := as.users.ClearAvatar(ctx, user.ID); err != nil {
		return err
	}

	as.dropCachedAvatar(ctx, user)

	return nil
}

func (as *AccountService) GetAvatarByUUID(ctx context.Context, uid string) ([]byte, error) {
	key := avatarCacheKey(uid)

	if cached, err := as.cache.Get(ctx, key); err == nil && cached != nil {
		return cached, nil
	}

	avatar, err := as.users.GetAvatarByUUID(ctx, uid)

	if err != nil {
		return nil, err
	}

	if len(avatar) == 0 {
		return nil, domain.ErrNotFound
	}

	if err := as.cache.Set(ctx, key, avatar, avatarCacheTTL); err != nil {
		slog.Error("Account#GetAvatarByUUID", "cache_set", err)
	}

	return avatar, nil
}

func (as *AccountService) issueToken(ctx context.Context, user domain.User) (string, error) {
	token, err := as.tokens.CreateToken(user.UUID.String())

	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}

	if err := as.users.AddToken(ctx, user.ID, token); err != nil {
		return "", err
	}

	return token, nil
}

func (as *AccountService) notifyWelcome(user domain.User) {
	go func() {
		if err := as.notifier.SendWelcome(context.Background(), user.Email, user.Name); err != nil {
			slog.Error("Account#Register", "welcome_notification", err)
		}
	}()
}

func (as *AccountService) notifyCancellation(user domain.User) {
	go func() {
		if err := as.notifier.SendCancellation(context.Background(), user.Email, user.Name); err != nil {
			slog.Error("Account#DeleteAccount", "cancellation_notification", err)
		}
	}()
}

func (as *AccountService) dropCachedAvatar(ctx context.Context, user domain.User) {
	if err := as.cache.Delete(ctx, avatarCacheKey(user.UUID.String())); err != nil {
		slog.Error("Account#dropCachedAvatar", "cache_delete", err)
	}
}

func avatarCacheKey(uid string) string {
	return "avatar:" + uid
}
