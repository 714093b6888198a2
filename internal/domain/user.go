package domain

// UserRole представляет роль пользователя на платформе
type UserRole string

// Возможные роли пользователя
const (
	RoleStudent UserRole = "student" // Участник хакатона
	RoleJudge   UserRole = "judge"   // Член жюри
	RoleAdmin   UserRole = "admin"   // Администратор платформы
)

// User представляет участника платформы.
// Создается при первом входе; TeamID меняется только
// транзакциями координатора команд.
type User struct {
	UserID      string   `json:"user_id"`
	DisplayName string   `json:"display_name"`
	Email       string   `json:"email"`
	TeamID      *string  `json:"team_id,omitempty"`
	Role        UserRole `json:"role"`
	Onboarded   bool     `json:"onboarded"`
}

// HasTeam возвращает true если пользователь состоит в команде
func (u *User) HasTeam() bool {
	return u.TeamID != nil && *u.TeamID != ""
}
