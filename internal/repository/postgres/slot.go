package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/hackathon-platform/internal/domain"
)

// SlotRepository реализует repository.SlotRepository для PostgreSQL
type SlotRepository struct {
	db *pgxpool.Pool
}

// NewSlotRepository создает новый экземпляр SlotRepository
func NewSlotRepository(db *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{db: db}
}

// Seed создает предзаданный инвентарь слотов; существующие слоты
// не перезаписываются
func (r *SlotRepository) Seed(ctx context.Context, slots []domain.PitchSlot) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		for _, slot := range slots {
			_, err := tx.Exec(ctx, `
				INSERT INTO pitch_slots (slot_id, starts_at, ends_at, status)
				VALUES ($1, $2, $3, 'open')
				ON CONFLICT (slot_id) DO NOTHING
			`, slot.SlotID, slot.StartsAt, slot.EndsAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// List возвращает все слоты в порядке начала
func (r *SlotRepository) List(ctx context.Context) ([]*domain.PitchSlot, error) {
	query := `
		SELECT slot_id, starts_at, ends_at, status, team_id
		FROM pitch_slots
		ORDER BY starts_at, slot_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := []*domain.PitchSlot{}
	for rows.Next() {
		var slot domain.PitchSlot
		if err := rows.Scan(&slot.SlotID, &slot.StartsAt, &slot.EndsAt, &slot.Status, &slot.TeamID); err != nil {
			return nil, err
		}
		slots = append(slots, &slot)
	}

	return slots, rows.Err()
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, slotID string) (*domain.PitchSlot, error) {
	query := `
		SELECT slot_id, starts_at, ends_at, status, team_id
		FROM pitch_slots
		WHERE slot_id = $1
	`

	var slot domain.PitchSlot
	err := r.db.QueryRow(ctx, query, slotID).Scan(
		&slot.SlotID, &slot.StartsAt, &slot.EndsAt, &slot.Status, &slot.TeamID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}

	return &slot, nil
}

// Book атомарно бронирует слот за командой. Чтение-проверка-запись
// выполняется под блокировкой строки слота: из N конкурентных вызовов
// на один свободный слот побеждает ровно один, остальные получают
// ErrSlotTaken. Прежний слот команды освобождается в той же
// транзакции (обмен, а не утечка).
func (r *SlotRepository) Book(ctx context.Context, slotID, teamID string) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		var status domain.SlotStatus
		var occupant *string
		err := tx.QueryRow(ctx,
			`SELECT status, team_id FROM pitch_slots WHERE slot_id = $1 FOR UPDATE`,
			slotID,
		).Scan(&status, &occupant)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrSlotNotFound
			}
			return err
		}

		if status == domain.SlotBooked || occupant != nil {
			if occupant != nil && *occupant == teamID {
				// Команда уже занимает этот слот
				return nil
			}
			return domain.ErrSlotTaken
		}

		// Освобождаем прежний слот команды
		_, err = tx.Exec(ctx,
			`UPDATE pitch_slots SET status = 'open', team_id = NULL WHERE team_id = $1`,
			teamID,
		)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE pitch_slots SET status = 'booked', team_id = $1 WHERE slot_id = $2`,
			teamID, slotID,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrTeamNotFound
			}
			return err
		}

		result, err := tx.Exec(ctx,
			`UPDATE teams SET pitch_slot_id = $1 WHERE team_id = $2 AND status = 'active'`,
			slotID, teamID,
		)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return domain.ErrTeamNotFound
		}
		return nil
	})
}

// Release атомарно освобождает слот команды
func (r *SlotRepository) Release(ctx context.Context, teamID string) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx,
			`UPDATE pitch_slots SET status = 'open', team_id = NULL WHERE team_id = $1`,
			teamID,
		)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return domain.ErrSlotNotFound
		}

		_, err = tx.Exec(ctx,
			`UPDATE teams SET pitch_slot_id = NULL WHERE team_id = $1`,
			teamID,
		)
		return err
	})
}
