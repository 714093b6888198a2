package repository

import (
	"context"

	"github.com/aidar/hackathon-platform/internal/domain"
)

// UserRepository определяет методы для работы с данными пользователей
type UserRepository interface {
	// CreateIfAbsent создает пользователя при первом входе;
	// для существующего email возвращает сохраненного пользователя
	CreateIfAbsent(ctx context.Context, user *domain.User) (*domain.User, error)

	// GetByID получает пользователя по ID
	GetByID(ctx context.Context, userID string) (*domain.User, error)

	// GetByEmail получает пользователя по email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// SetOnboarded отмечает завершение онбординга
	SetOnboarded(ctx context.Context, userID string) error
}

// TeamRepository определяет методы для работы с данными команд.
// Все мутации выполняются в одной транзакции: парные документы
// (команда и пользователь) никогда не наблюдаются в полузаписанном
// состоянии.
type TeamRepository interface {
	// CreateWithLeader атомарно создает команду с единственным
	// участником-лидером и проставляет teamId лидеру
	CreateWithLeader(ctx context.Context, team *domain.Team, leaderPosition string) error

	// GetByID получает команду со всеми участниками
	GetByID(ctx context.Context, teamID string) (*domain.Team, error)

	// GetByInviteCode получает команду по инвайт-коду (без учета регистра)
	GetByInviteCode(ctx context.Context, code string) (*domain.Team, error)

	// AddMember атомарно добавляет участника: проверка размера команды
	// выполняется внутри транзакции под блокировкой строки команды
	AddMember(ctx context.Context, teamID, userID, position string) error

	// RemoveMember атомарно убирает участника и очищает его teamId.
	// Правило лидера и решение о роспуске принимаются под блокировкой
	// строки команды: снимок, прочитанный до транзакции, не является
	// авторитетным
	RemoveMember(ctx context.Context, teamID, userID string) error

	// UpdateLeader передает лидерство другому участнику; членство
	// нового лидера проверяется тем же оператором записи
	UpdateLeader(ctx context.Context, teamID, newLeaderID string) error

	// SearchByPrefix возвращает команды по префиксу нормализованного
	// названия, не более limit
	SearchByPrefix(ctx context.Context, prefix string, limit int) ([]*domain.TeamSummary, error)

	// SetShortlisted выставляет флаг шортлиста
	SetShortlisted(ctx context.Context, teamID string, shortlisted bool) error
}

// SubmissionRepository определяет методы для работы с заявками команд
type SubmissionRepository interface {
	// SaveDraft записывает payload черновика если заявка фазы еще не
	// отправлена; возвращает false если статус уже submitted
	SaveDraft(ctx context.Context, teamID string, phase domain.SubmissionPhase, payload any) (bool, error)

	// Submit одной записью фиксирует payload и статус submitted;
	// возвращает ErrAlreadySubmitted при повторной отправке
	Submit(ctx context.Context, teamID string, phase domain.SubmissionPhase, payload any) error

	// Get получает заявку команды
	Get(ctx context.Context, teamID string) (*domain.Submission, error)
}

// SlotRepository определяет методы для работы с питч-слотами
type SlotRepository interface {
	// Seed создает предзаданный инвентарь слотов
	Seed(ctx context.Context, slots []domain.PitchSlot) error

	// List возвращает все слоты в порядке начала
	List(ctx context.Context) ([]*domain.PitchSlot, error)

	// GetByID получает слот по ID
	GetByID(ctx context.Context, slotID string) (*domain.PitchSlot, error)

	// Book атомарно бронирует слот за командой: проверка занятости
	// выполняется под блокировкой строки слота; прежний слот команды
	// освобождается в той же транзакции
	Book(ctx context.Context, slotID, teamID string) error

	// Release атомарно освобождает слот команды
	Release(ctx context.Context, teamID string) error
}

// ScoreRepository определяет методы для работы с оценками жюри
type ScoreRepository interface {
	// Upsert вставляет или перезаписывает оценку пары (судья, команда)
	Upsert(ctx context.Context, score *domain.Score) error

	// GetByJudgeAndTeam возвращает оценку конкретного судьи для команды
	GetByJudgeAndTeam(ctx context.Context, judgeID, teamID string) (*domain.Score, error)

	// ListByTeam возвращает все оценки команды
	ListByTeam(ctx context.Context, teamID string) ([]*domain.Score, error)
}
