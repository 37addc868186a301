package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	sqlite3 "github.com/mattn/go-sqlite3"

	"taskapp/internal/adapter/database/sqlite"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
)

const userColumns = "id, uuid, name, email, password_hash, age, created_at, updated_at"

type UserRepository struct {
	db *sqlite.DB
}

func NewUserRepository(db *sqlite.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "name", "email", "password_hash", "age", "created_at", "updated_at").
		Values(user.UUID.String(), user.Name, user.Email, user.PasswordHash, user.Age, user.CreatedAt, user.UpdatedAt).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	if _, err := ur.db.ExecContext(ctx, stmt, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrEmailTaken
		}

		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	return ur.GetByUUID(ctx, user.UUID.String())
}

func (ur *UserRepository) GetByUUID(ctx context.Context, uid string) (domain.User, error) {
	return ur.getOne(ctx, sq.Eq{"uuid": uid})
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return ur.getOne(ctx, sq.Eq{"email": email})
}

func (ur *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Update("users").
		SetMap(map[string]interface{}{
			"name":          user.Name,
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"age":           user.Age,
			"updated_at":    user.UpdatedAt,
		}).
		Where(sq.Eq{"id": user.ID}).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	result, err := ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrEmailTaken
		}

		slog.Error("Error updating user", "error", err)
		return domain.User{}, err
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return domain.User{}, domain.ErrNotFound
	}

	return ur.GetByUUID(ctx, user.UUID.String())
}

func (ur *UserRepository) DeleteByID(ctx context.Context, id int) error {
	stmt, args, err := ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return err
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (ur *UserRepository) AddToken(ctx context.Context, userID int, token string) error {
	stmt, args, err := ur.db.QueryBuilder.Insert("user_tokens").
		Columns("user_id", "token", "created_at").
		Values(userID, token, time.Now()).
		ToSql()

	if err != nil {
		return err
	}

	_, err = ur.db.ExecContext(ctx, stmt, args...)

	return err
}

func (ur *UserRepository) RemoveToken(ctx context.Context, userID int, token string) error {
	stmt, args, err := ur.db.QueryBuilder.Delete("user_tokens").
		Where(sq.Eq{"user_id": userID, "token": token}).
		ToSql()

	if err != nil {
		return err
	}

	_, err = ur.db.ExecContext(ctx, stmt, args...)

	return err
}

func (ur *UserRepository) RemoveAllTokens(ctx context.Context, userID int) error {
	stmt, args, err := ur.db.QueryBuilder.Delete("user_tokens").
		Where(sq.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return err
	}

	_, err = ur.db.ExecContext(ctx, stmt, args...)

	return err
}

func (ur *UserRepository) GetByToken(ctx context.Context, uid string, token string) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.
		Select("u.id, u.uuid, u.name, u.email, u.password_hash, u.age, u.created_at, u.updated_at").
		From("users u").
		Join("user_tokens t ON t.user_id = u.id").
		Where(sq.Eq{"u.uuid": uid, "t.token": token}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	return ur.scanUser(ur.db.QueryRowContext(ctx, stmt, args...))
}

func (ur *UserRepository) SetAvatar(ctx context.Context, userID int, avatar []byte) error {
	return ur.writeAvatar(ctx, userID, avatar)
}

func (ur *UserRepository) ClearAvatar(ctx context.Context, userID int) error {
	return ur.writeAvatar(ctx, userID, nil)
}

func (ur *UserRepository) GetAvatarByUUID(ctx context.Context, uid string) ([]byte, error) {
	stmt, args, err := ur.db.QueryBuilder.Select("avatar").
		From("users").
		Where(sq.Eq{"uuid": uid}).
		ToSql()

	if err != nil {
		return nil, err
	}

	var avatar []byte

	if err := ur.db.QueryRowContext(ctx, stmt, args...).Scan(&avatar); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}

		return nil, err
	}

	return avatar, nil
}

func (ur *UserRepository) writeAvatar(ctx context.Context, userID int, avatar []byte) error {
	stmt, args, err := ur.db.QueryBuilder.Update("users").
		Set("avatar", avatar).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": userID}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return err
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (ur *UserRepository) getOne(ctx context.Context, pred sq.Eq) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Select(userColumns).
		From("users").
		Where(pred).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	return ur.scanUser(ur.db.QueryRowContext(ctx, stmt, args...))
}

func (ur *UserRepository) scanUser(row *sql.Row) (domain.User, error) {
	var user domain.User

	err := row.Scan(
		&user.ID,
		&user.UUID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Age,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}

		return domain.User{}, err
	}

	return user, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error

	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}
