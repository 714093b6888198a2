package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/hackathon-platform/internal/domain"
)

// UserRepository реализует repository.UserRepository для PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateIfAbsent создает пользователя при первом входе.
// Конкурентная регистрация одного email разрешается через
// ON CONFLICT: побеждает первая вставка, остальные читают ее результат.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (user_id, display_name, email, role, onboarded)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
		RETURNING user_id, display_name, email, team_id, role, onboarded
	`

	var created domain.User
	err := r.db.QueryRow(ctx, query,
		user.UserID, user.DisplayName, user.Email, user.Role, user.Onboarded,
	).Scan(
		&created.UserID,
		&created.DisplayName,
		&created.Email,
		&created.TeamID,
		&created.Role,
		&created.Onboarded,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Email уже зарегистрирован — возвращаем существующего
			return r.GetByEmail(ctx, user.Email)
		}
		return nil, err
	}

	return &created, nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, display_name, email, team_id, role, onboarded
		FROM users
		WHERE user_id = $1
	`

	return r.scanUser(r.db.QueryRow(ctx, query, userID))
}

// GetByEmail получает пользователя по email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT user_id, display_name, email, team_id, role, onboarded
		FROM users
		WHERE email = $1
	`

	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

// SetOnboarded отмечает завершение онбординга
func (r *UserRepository) SetOnboarded(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET onboarded = true, updated_at = NOW()
		WHERE user_id = $1
	`

	result, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.UserID,
		&user.DisplayName,
		&user.Email,
		&user.TeamID,
		&user.Role,
		&user.Onboarded,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}
