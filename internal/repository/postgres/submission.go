package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/hackathon-platform/internal/domain"
)

// SubmissionRepository реализует repository.SubmissionRepository для PostgreSQL.
// Заявка хранится внутри документа команды; статус и payload фазы
// пишутся одним оператором, поэтому частично отправленная заявка
// не наблюдаема.
type SubmissionRepository struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository создает новый экземпляр SubmissionRepository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// SaveDraft записывает payload черновика по принципу "последняя запись
// побеждает". Возвращает false без ошибки если заявка фазы уже
// отправлена: автосохранение после submit игнорируется.
func (r *SubmissionRepository) SaveDraft(ctx context.Context, teamID string, phase domain.SubmissionPhase, payload any) (bool, error) {
	var query string
	if phase == domain.PhasePrototype {
		query = `
			UPDATE teams SET prototype = $1
			WHERE team_id = $2 AND prototype_status = 'pending' AND status = 'active'
		`
	} else {
		query = `
			UPDATE teams SET idea = $1
			WHERE team_id = $2 AND submission_status = 'pending' AND status = 'active'
		`
	}

	result, err := r.db.Exec(ctx, query, payload, teamID)
	if err != nil {
		return false, err
	}

	if result.RowsAffected() == 0 {
		exists, err := r.teamExists(ctx, teamID)
		if err != nil {
			return false, err
		}
		if !exists {
			return false, domain.ErrTeamNotFound
		}
		// Заявка уже отправлена: payload заморожен
		return false, nil
	}

	return true, nil
}

// Submit одной записью фиксирует payload и статус submitted
func (r *SubmissionRepository) Submit(ctx context.Context, teamID string, phase domain.SubmissionPhase, payload any) error {
	var query string
	if phase == domain.PhasePrototype {
		query = `
			UPDATE teams SET prototype = $1, prototype_status = 'submitted'
			WHERE team_id = $2 AND prototype_status = 'pending' AND status = 'active'
		`
	} else {
		query = `
			UPDATE teams SET idea = $1, submission_status = 'submitted'
			WHERE team_id = $2 AND submission_status = 'pending' AND status = 'active'
		`
	}

	result, err := r.db.Exec(ctx, query, payload, teamID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		exists, err := r.teamExists(ctx, teamID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrTeamNotFound
		}
		return domain.ErrAlreadySubmitted
	}

	return nil
}

// Get получает заявку команды
func (r *SubmissionRepository) Get(ctx context.Context, teamID string) (*domain.Submission, error) {
	query := `
		SELECT team_id, submission_status, prototype_status, idea, prototype, shortlisted
		FROM teams
		WHERE team_id = $1
	`

	var sub domain.Submission
	err := r.db.QueryRow(ctx, query, teamID).Scan(
		&sub.TeamID,
		&sub.Status,
		&sub.PrototypeStatus,
		&sub.Idea,
		&sub.Prototype,
		&sub.Shortlisted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}

	return &sub, nil
}

func (r *SubmissionRepository) teamExists(ctx context.Context, teamID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM teams WHERE team_id = $1)`,
		teamID,
	).Scan(&exists)
	return exists, err
}
