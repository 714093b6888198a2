package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/hackathon-platform/internal/domain"
)

// ScoreRepository реализует repository.ScoreRepository для PostgreSQL.
// Документы оценок секционированы ключом (судья, команда), поэтому
// два судьи никогда не конкурируют за одну строку.
type ScoreRepository struct {
	db *pgxpool.Pool
}

// NewScoreRepository создает новый экземпляр ScoreRepository
func NewScoreRepository(db *pgxpool.Pool) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Upsert вставляет или перезаписывает оценку пары (судья, команда)
func (r *ScoreRepository) Upsert(ctx context.Context, score *domain.Score) error {
	query := `
		INSERT INTO scores (judge_id, team_id, criteria, total, feedback)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (judge_id, team_id) DO UPDATE
		SET criteria = EXCLUDED.criteria,
		    total = EXCLUDED.total,
		    feedback = EXCLUDED.feedback,
		    updated_at = NOW()
	`

	_, err := r.db.Exec(ctx, query,
		score.JudgeID, score.TeamID, score.Criteria, score.Total, score.Feedback,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrTeamNotFound
		}
		return err
	}

	return nil
}

// GetByJudgeAndTeam возвращает оценку конкретного судьи для команды
func (r *ScoreRepository) GetByJudgeAndTeam(ctx context.Context, judgeID, teamID string) (*domain.Score, error) {
	query := `
		SELECT judge_id, team_id, criteria, total, feedback, updated_at
		FROM scores
		WHERE judge_id = $1 AND team_id = $2
	`

	var score domain.Score
	err := r.db.QueryRow(ctx, query, judgeID, teamID).Scan(
		&score.JudgeID,
		&score.TeamID,
		&score.Criteria,
		&score.Total,
		&score.Feedback,
		&score.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrScoreNotFound
		}
		return nil, err
	}

	return &score, nil
}

// ListByTeam возвращает все оценки команды
func (r *ScoreRepository) ListByTeam(ctx context.Context, teamID string) ([]*domain.Score, error) {
	query := `
		SELECT judge_id, team_id, criteria, total, feedback, updated_at
		FROM scores
		WHERE team_id = $1
		ORDER BY judge_id
	`

	rows, err := r.db.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := []*domain.Score{}
	for rows.Next() {
		var score domain.Score
		if err := rows.Scan(
			&score.JudgeID, &score.TeamID, &score.Criteria,
			&score.Total, &score.Feedback, &score.UpdatedAt,
		); err != nil {
			return nil, err
		}
		scores = append(scores, &score)
	}

	return scores, rows.Err()
}
