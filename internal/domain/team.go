package domain

import (
	"strings"
	"time"
)

// MaxTeamSize максимальный размер команды
const MaxTeamSize = 4

// TeamStatus представляет статус команды
type TeamStatus string

// Возможные статусы команды
const (
	TeamActive    TeamStatus = "active"    // Команда активна, у нее есть лидер
	TeamDisbanded TeamStatus = "disbanded" // Все участники покинули команду
)

// SubmissionStatus представляет статус заявки команды в рамках фазы
type SubmissionStatus string

// Возможные статусы заявки
const (
	SubmissionPending   SubmissionStatus = "pending"   // Черновик, автосохранение разрешено
	SubmissionSubmitted SubmissionStatus = "submitted" // Отправлена, payload заморожен
)

// TeamMember представляет пользователя в составе команды
type TeamMember struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Position    string    `json:"position"`
	JoinedAt    time.Time `json:"joined_at"`
}

// Team представляет команду участников хакатона.
// Команда никогда не удаляется физически: когда последний участник
// уходит, статус меняется на disbanded.
type Team struct {
	TeamID           string           `json:"team_id"`
	Name             string           `json:"name"`
	InviteCode       string           `json:"invite_code"`
	LeaderID         string           `json:"leader_id"`
	Status           TeamStatus       `json:"status"`
	Theme            string           `json:"theme"`
	Tags             []string         `json:"tags"`
	Members          []TeamMember     `json:"members"`
	SubmissionStatus SubmissionStatus `json:"submission_status"`
	PrototypeStatus  SubmissionStatus `json:"prototype_status"`
	Idea             IdeaPayload      `json:"idea"`
	Prototype        *PrototypePayload `json:"prototype,omitempty"`
	Shortlisted      bool             `json:"shortlisted"`
	PitchSlotID      *string          `json:"pitch_slot_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// TeamSummary представляет команду в результатах поиска
type TeamSummary struct {
	TeamID      string    `json:"team_id"`
	Name        string    `json:"name"`
	Theme       string    `json:"theme"`
	Tags        []string  `json:"tags"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// NormalizeTeamName возвращает нормализованное название команды
// для индекса уникальности и префиксного поиска
func NormalizeTeamName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsLeader проверяет, является ли пользователь лидером команды
func (t *Team) IsLeader(userID string) bool {
	return t.LeaderID == userID
}

// HasMember проверяет, состоит ли пользователь в команде
func (t *Team) HasMember(userID string) bool {
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// IsFull возвращает true если в команде уже MaxTeamSize участников
func (t *Team) IsFull() bool {
	return len(t.Members) >= MaxTeamSize
}

// IsSubmitted возвращает true если заявка фазы идеи уже отправлена
func (t *Team) IsSubmitted() bool {
	return t.SubmissionStatus == SubmissionSubmitted
}

// PhaseStatus возвращает статус заявки для указанной фазы
func (t *Team) PhaseStatus(phase SubmissionPhase) SubmissionStatus {
	if phase == PhasePrototype {
		return t.PrototypeStatus
	}
	return t.SubmissionStatus
}
