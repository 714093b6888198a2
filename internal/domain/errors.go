package domain

import "errors"

// Доменные ошибки, транслируемые в коды API
var (
	// ErrNameTaken возвращается при попытке создать команду с занятым названием
	ErrNameTaken = errors.New("team name already taken")

	// ErrInvalidCode возвращается когда инвайт-код не найден
	ErrInvalidCode = errors.New("invalid invite code")

	// ErrAlreadyMember возвращается когда пользователь уже состоит в команде
	ErrAlreadyMember = errors.New("user already belongs to a team")

	// ErrTeamFull возвращается при попытке вступить в команду из 4 участников
	ErrTeamFull = errors.New("team is full")

	// ErrNotLeader возвращается когда операция доступна только лидеру команды
	ErrNotLeader = errors.New("operation requires team leader")

	// ErrLeaderMustTransfer возвращается когда лидер пытается покинуть
	// команду с другими участниками без передачи лидерства
	ErrLeaderMustTransfer = errors.New("leader must transfer leadership before leaving")

	// ErrSlotTaken возвращается когда питч-слот уже занят другой командой
	ErrSlotTaken = errors.New("pitch slot already taken")

	// ErrNotEligible возвращается когда команда не прошла в шортлист
	ErrNotEligible = errors.New("team is not shortlisted")

	// ErrAlreadySubmitted возвращается при повторной отправке заявки
	ErrAlreadySubmitted = errors.New("submission already submitted")

	// ErrInviteCodeCollision возвращается когда сгенерированный
	// инвайт-код уже занят; генератор пробует снова
	ErrInviteCodeCollision = errors.New("invite code collision")

	// ErrTransactionConflict возвращается когда транзакция не прошла
	// из-за конкурентной записи (после одного повтора)
	ErrTransactionConflict = errors.New("transaction conflict")

	// ErrNotFound возвращается когда ресурс не найден
	ErrNotFound = errors.New("resource not found")

	// ErrUserNotFound возвращается когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrTeamNotFound возвращается когда команда не найдена
	ErrTeamNotFound = errors.New("team not found")

	// ErrSlotNotFound возвращается когда слот не найден
	ErrSlotNotFound = errors.New("pitch slot not found")

	// ErrScoreNotFound возвращается когда оценка не найдена
	ErrScoreNotFound = errors.New("score not found")

	// ErrNotAuthenticated возвращается при неудачной аутентификации
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForbidden возвращается когда роль пользователя не дает доступа
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidToken возвращается когда JWT токен невалиден
	ErrInvalidToken = errors.New("invalid token")
)

// ErrorCode представляет коды ошибок API
type ErrorCode string

// Коды ошибок API
const (
	CodeNameTaken           ErrorCode = "NAME_TAKEN"           // Название команды занято
	CodeInvalidCode         ErrorCode = "INVALID_CODE"         // Инвайт-код не найден
	CodeAlreadyMember       ErrorCode = "ALREADY_MEMBER"       // Пользователь уже в команде
	CodeTeamFull            ErrorCode = "TEAM_FULL"            // В команде уже 4 участника
	CodeNotLeader           ErrorCode = "NOT_LEADER"           // Требуются права лидера
	CodeLeaderMustTransfer  ErrorCode = "LEADER_MUST_TRANSFER" // Нужна передача лидерства
	CodeSlotTaken           ErrorCode = "SLOT_TAKEN"           // Слот занят
	CodeNotEligible         ErrorCode = "NOT_ELIGIBLE"         // Команда не в шортлисте
	CodeAlreadySubmitted    ErrorCode = "ALREADY_SUBMITTED"    // Заявка уже отправлена
	CodeTransactionConflict ErrorCode = "TRANSACTION_CONFLICT" // Конфликт транзакций
	CodeNotFound            ErrorCode = "NOT_FOUND"            // Ресурс не найден
	CodeForbidden           ErrorCode = "FORBIDDEN"            // Недостаточно прав
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrNameTaken):
		return CodeNameTaken
	case errors.Is(err, ErrInvalidCode):
		return CodeInvalidCode
	case errors.Is(err, ErrAlreadyMember):
		return CodeAlreadyMember
	case errors.Is(err, ErrTeamFull):
		return CodeTeamFull
	case errors.Is(err, ErrNotLeader):
		return CodeNotLeader
	case errors.Is(err, ErrLeaderMustTransfer):
		return CodeLeaderMustTransfer
	case errors.Is(err, ErrSlotTaken):
		return CodeSlotTaken
	case errors.Is(err, ErrNotEligible):
		return CodeNotEligible
	case errors.Is(err, ErrAlreadySubmitted):
		return CodeAlreadySubmitted
	case errors.Is(err, ErrTransactionConflict):
		return CodeTransactionConflict
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrTeamNotFound), errors.Is(err, ErrSlotNotFound),
		errors.Is(err, ErrScoreNotFound):
		return CodeNotFound
	default:
		return CodeNotFound
	}
}
