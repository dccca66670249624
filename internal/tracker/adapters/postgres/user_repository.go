// Package postgres хранит документы пользователей в Postgres:
// журнал упражнений лежит в колонке JSONB рядом с полями пользователя.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"exercisetracker/internal/tracker/adapters/document"
	"exercisetracker/internal/tracker/domain/entities"
	"exercisetracker/internal/tracker/ports/repositories"
	"exercisetracker/pkg/logger"
)

// PgxPoolInterface - подмножество pgxpool.Pool, которое использует репозиторий.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

const (
	queryInsertUser = `INSERT INTO users (id, username, exercise_count, log) VALUES ($1, $2, $3, $4) RETURNING id`
	querySelectUser = `SELECT id, username, exercise_count, log FROM users WHERE id = $1`
	queryUpdateUser = `UPDATE users SET username = $2, exercise_count = $3, log = $4 WHERE id = $1`
	queryFindUsers  = `SELECT id, username, exercise_count, log FROM users WHERE ($1 = '' OR username = $1) ORDER BY created_at, id`
)

// Сообщения об ошибках.
const (
	ErrCreateUser  = "failed to create user"
	ErrFindUser    = "failed to find user"
	ErrUpdateUser  = "failed to update user"
	ErrListUsers   = "failed to list users"
	ErrScanUser    = "failed to scan user"
	ErrIterateRows = "error iterating rows"
)

// UserRepository реализует repositories.UserRepository поверх Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает репозиторий.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Create вставляет пользователя с новым UUID.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.Create"))

	payload, err := document.MarshalLog(user.Log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCreateUser, err)
	}

	created := user.Clone()
	err = r.pool.QueryRow(ctx, queryInsertUser,
		uuid.NewString(), user.Username, user.Count, string(payload),
	).Scan(&created.ID)
	if err != nil {
		log.Error(ctx, ErrCreateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreateUser, err)
	}

	log.Debug(ctx, "user created", zap.String("user_id", created.ID))
	return created, nil
}

// FindByID читает документ пользователя.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.FindByID"), zap.String("user_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return nil, entities.ErrInvalidUserID
	}

	user, err := scanUser(r.pool.QueryRow(ctx, querySelectUser, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found")
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, ErrFindUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFindUser, err)
	}

	return user, nil
}

// Save перезаписывает документ пользователя одним UPDATE.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.Save"), zap.String("user_id", user.ID))

	if _, err := uuid.Parse(user.ID); err != nil {
		return nil, entities.ErrInvalidUserID
	}

	payload, err := document.MarshalLog(user.Log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrUpdateUser, err)
	}

	tag, err := r.pool.Exec(ctx, queryUpdateUser, user.ID, user.Username, user.Count, string(payload))
	if err != nil {
		log.Error(ctx, ErrUpdateUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrUpdateUser, err)
	}
	if tag.RowsAffected() == 0 {
		log.Debug(ctx, "user vanished before update")
		return nil, entities.ErrUserNotFound
	}

	return user.Clone(), nil
}

// Find возвращает пользователей в порядке создания.
func (r *UserRepository) Find(ctx context.Context, filter repositories.UserFilter) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "UserRepository.Find"))

	rows, err := r.pool.Query(ctx, queryFindUsers, filter.Username)
	if err != nil {
		log.Error(ctx, ErrListUsers, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListUsers, err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Error(ctx, ErrScanUser, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrScanUser, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrIterateRows, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrIterateRows, err)
	}

	return users, nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var (
		user    entities.User
		payload []byte
	)
	if err := row.Scan(&user.ID, &user.Username, &user.Count, &payload); err != nil {
		return nil, err
	}

	log, err := document.UnmarshalLog(payload)
	if err != nil {
		return nil, err
	}
	user.Log = log
	return &user, nil
}
