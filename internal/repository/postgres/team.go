package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/hackathon-platform/internal/domain"
)

// Имена unique-ограничений схемы, используемые для маппинга ошибок
const (
	constraintTeamName   = "teams_name_normalized_key"
	constraintInviteCode = "teams_invite_code_key"
	constraintOneTeam    = "team_members_user_idx"
)

// TeamRepository реализует repository.TeamRepository для PostgreSQL
type TeamRepository struct {
	db *pgxpool.Pool
}

// NewTeamRepository создает новый экземпляр TeamRepository
func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

// CreateWithLeader атомарно создает команду с единственным участником-лидером.
// Проверка занятости названия выполняется внутри транзакции, а unique-индексы
// БД закрывают гонку конкурентных создателей: половина команды никогда не
// наблюдается снаружи.
func (r *TeamRepository) CreateWithLeader(ctx context.Context, team *domain.Team, leaderPosition string) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		// Блокируем строку лидера и проверяем что он без команды
		var currentTeamID *string
		err := tx.QueryRow(ctx,
			`SELECT team_id FROM users WHERE user_id = $1 FOR UPDATE`,
			team.LeaderID,
		).Scan(&currentTeamID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrUserNotFound
			}
			return err
		}
		if currentTeamID != nil {
			return domain.ErrAlreadyMember
		}

		// Проверка занятости названия внутри той же транзакции
		var nameTaken bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM teams WHERE name_normalized = $1)`,
			domain.NormalizeTeamName(team.Name),
		).Scan(&nameTaken)
		if err != nil {
			return err
		}
		if nameTaken {
			return domain.ErrNameTaken
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO teams (team_id, name, name_normalized, invite_code, leader_id, theme, tags, idea)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			team.TeamID,
			team.Name,
			domain.NormalizeTeamName(team.Name),
			team.InviteCode,
			team.LeaderID,
			team.Theme,
			team.Tags,
			team.Idea,
		)
		if err != nil {
			if isUniqueViolation(err, constraintTeamName) {
				return domain.ErrNameTaken
			}
			if isUniqueViolation(err, constraintInviteCode) {
				return domain.ErrInviteCodeCollision
			}
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO team_members (team_id, user_id, position)
			VALUES ($1, $2, $3)
		`, team.TeamID, team.LeaderID, leaderPosition)
		if err != nil {
			if isUniqueViolation(err, constraintOneTeam) {
				return domain.ErrAlreadyMember
			}
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE users SET team_id = $1, updated_at = NOW() WHERE user_id = $2`,
			team.TeamID, team.LeaderID,
		)
		return err
	})
}

// GetByID получает команду со всеми участниками
func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (*domain.Team, error) {
	query := teamSelect + ` WHERE team_id = $1`
	return r.getTeam(ctx, query, teamID)
}

// GetByInviteCode получает команду по инвайт-коду без учета регистра
func (r *TeamRepository) GetByInviteCode(ctx context.Context, code string) (*domain.Team, error) {
	query := teamSelect + ` WHERE UPPER(invite_code) = UPPER($1) AND status = 'active'`

	team, err := r.getTeam(ctx, query, code)
	if err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			return nil, domain.ErrInvalidCode
		}
		return nil, err
	}
	return team, nil
}

// AddMember атомарно добавляет участника в команду. Размер команды
// читается под блокировкой строки команды, поэтому пятый участник
// получает ErrTeamFull даже при конкурентных вступлениях.
func (r *TeamRepository) AddMember(ctx context.Context, teamID, userID, position string) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		var status domain.TeamStatus
		err := tx.QueryRow(ctx,
			`SELECT status FROM teams WHERE team_id = $1 FOR UPDATE`,
			teamID,
		).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrTeamNotFound
			}
			return err
		}
		if status != domain.TeamActive {
			return domain.ErrInvalidCode
		}

		var memberCount int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM team_members WHERE team_id = $1`,
			teamID,
		).Scan(&memberCount)
		if err != nil {
			return err
		}
		if memberCount >= domain.MaxTeamSize {
			return domain.ErrTeamFull
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO team_members (team_id, user_id, position)
			VALUES ($1, $2, $3)
		`, teamID, userID, position)
		if err != nil {
			if isUniqueViolation(err, constraintOneTeam) {
				return domain.ErrAlreadyMember
			}
			if isForeignKeyViolation(err) {
				return domain.ErrUserNotFound
			}
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE users SET team_id = $1, updated_at = NOW() WHERE user_id = $2`,
			teamID, userID,
		)
		return err
	})
}

// RemoveMember атомарно убирает участника и очищает его teamId.
// Правило лидера и решение о роспуске перепроверяются под блокировкой
// строки команды: конкурентное вступление, закоммиченное после чтения
// снимка вызывающим, меняет исход здесь, а не снаружи. Опустевшая
// команда помечается disbanded, ее питч-слот освобождается в той же
// транзакции.
func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID string) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		var leaderID string
		err := tx.QueryRow(ctx,
			`SELECT leader_id FROM teams WHERE team_id = $1 FOR UPDATE`,
			teamID,
		).Scan(&leaderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrTeamNotFound
			}
			return err
		}

		var memberCount int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM team_members WHERE team_id = $1`,
			teamID,
		).Scan(&memberCount)
		if err != nil {
			return err
		}

		if leaderID == userID && memberCount > 1 {
			return domain.ErrLeaderMustTransfer
		}
		disband := memberCount == 1

		result, err := tx.Exec(ctx,
			`DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`,
			teamID, userID,
		)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return domain.ErrNotFound
		}

		_, err = tx.Exec(ctx,
			`UPDATE users SET team_id = NULL, updated_at = NOW() WHERE user_id = $1`,
			userID,
		)
		if err != nil {
			return err
		}

		if disband {
			_, err = tx.Exec(ctx,
				`UPDATE pitch_slots SET status = 'open', team_id = NULL WHERE team_id = $1`,
				teamID,
			)
			if err != nil {
				return err
			}
			_, err = tx.Exec(ctx,
				`UPDATE teams SET status = 'disbanded', pitch_slot_id = NULL WHERE team_id = $1`,
				teamID,
			)
		}
		return err
	})
}

// UpdateLeader передает лидерство другому участнику команды.
// Членство нового лидера проверяется тем же оператором записи:
// участник, вышедший между проверкой и записью, не может стать
// лидером.
func (r *TeamRepository) UpdateLeader(ctx context.Context, teamID, newLeaderID string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE teams SET leader_id = $1
		WHERE team_id = $2 AND status = 'active'
		  AND EXISTS (
			SELECT 1 FROM team_members WHERE team_id = $2 AND user_id = $1
		  )
	`, newLeaderID, teamID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		var exists bool
		err := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM teams WHERE team_id = $1 AND status = 'active')`,
			teamID,
		).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrTeamNotFound
		}
		// Команда на месте, значит цель не состоит в ней
		return domain.ErrUserNotFound
	}

	return nil
}

// SearchByPrefix возвращает команды по префиксу нормализованного названия
func (r *TeamRepository) SearchByPrefix(ctx context.Context, prefix string, limit int) ([]*domain.TeamSummary, error) {
	query := `
		SELECT t.team_id, t.name, t.theme, t.tags, t.created_at,
		       (SELECT COUNT(*) FROM team_members m WHERE m.team_id = t.team_id) AS member_count
		FROM teams t
		WHERE t.name_normalized LIKE $1 || '%' AND t.status = 'active'
		ORDER BY t.name_normalized
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, domain.NormalizeTeamName(prefix), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []*domain.TeamSummary{}
	for rows.Next() {
		var s domain.TeamSummary
		if err := rows.Scan(&s.TeamID, &s.Name, &s.Theme, &s.Tags, &s.CreatedAt, &s.MemberCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, &s)
	}

	return summaries, rows.Err()
}

// SetShortlisted выставляет флаг шортлиста
func (r *TeamRepository) SetShortlisted(ctx context.Context, teamID string, shortlisted bool) error {
	result, err := r.db.Exec(ctx,
		`UPDATE teams SET shortlisted = $1 WHERE team_id = $2`,
		shortlisted, teamID,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTeamNotFound
	}

	return nil
}

const teamSelect = `
	SELECT team_id, name, invite_code, leader_id, status, theme, tags,
	       submission_status, prototype_status, idea, prototype,
	       shortlisted, pitch_slot_id, created_at
	FROM teams
`

func (r *TeamRepository) getTeam(ctx context.Context, query string, arg any) (*domain.Team, error) {
	var team domain.Team
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&team.TeamID,
		&team.Name,
		&team.InviteCode,
		&team.LeaderID,
		&team.Status,
		&team.Theme,
		&team.Tags,
		&team.SubmissionStatus,
		&team.PrototypeStatus,
		&team.Idea,
		&team.Prototype,
		&team.Shortlisted,
		&team.PitchSlotID,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}

	members, err := r.loadMembers(ctx, team.TeamID)
	if err != nil {
		return nil, err
	}
	team.Members = members

	return &team, nil
}

func (r *TeamRepository) loadMembers(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	query := `
		SELECT m.user_id, u.display_name, m.position, m.joined_at
		FROM team_members m
		INNER JOIN users u ON u.user_id = m.user_id
		WHERE m.team_id = $1
		ORDER BY m.joined_at, m.user_id
	`

	rows, err := r.db.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(&m.UserID, &m.DisplayName, &m.Position, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}
