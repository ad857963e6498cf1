// Package postgres реализует хранение пользователей в Postgres.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"newsnotes/internal/users/domain/entities"
	"newsnotes/internal/users/ports/repositories"
	"newsnotes/pkg/logger"
)

// PgxPoolInterface - подмножество pgxpool.Pool, используемое репозиториями.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// Константы для сообщений logger.
const (
	msgUserNotFound      = "user not found"
	msgUsernameTaken     = "username already taken"
	errFindingUserByID   = "error finding user by id"
	errFindingUserByName = "error finding user by username"
	errCreatingUser      = "error creating user"
	errQueryingUserByID  = "error querying user by id"
	errQueryingUserName  = "error querying user by username"
)

// UserRepository реализует repositories.UserRepository для Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `
        SELECT id, username, password_hash, created_at
        FROM users
        WHERE id = $1
    `

	var user entities.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgUserNotFound, zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, errFindingUserByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errQueryingUserByID, err)
	}

	return &user, nil
}

// FindByUsername находит пользователя по имени.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByUsername"))

	query := `
        SELECT id, username, password_hash, created_at
        FROM users
        WHERE username = $1
    `

	var user entities.User
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, msgUserNotFound, zap.String("username", username))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, errFindingUserByName, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errQueryingUserName, err)
	}

	return &user, nil
}

// Create создает нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (username, password_hash)
        VALUES ($1, $2)
        RETURNING id, username, password_hash, created_at
    `

	var created entities.User
	err := r.pool.QueryRow(ctx, query, user.Username, user.PasswordHash).Scan(
		&created.ID,
		&created.Username,
		&created.PasswordHash,
		&created.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			log.Debug(ctx, msgUsernameTaken, zap.String("username", user.Username))
			return nil, entities.ErrUsernameTaken
		}
		log.Error(ctx, errCreatingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCreatingUser, err)
	}

	return &created, nil
}
