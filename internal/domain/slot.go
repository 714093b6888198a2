package domain

import "time"

// JoinWindow за сколько до начала слота открывается вход на питч
const JoinWindow = 5 * time.Minute

// SlotStatus представляет статус питч-слота
type SlotStatus string

// Возможные статусы слота
const (
	SlotOpen   SlotStatus = "open"   // Слот свободен
	SlotBooked SlotStatus = "booked" // Слот занят командой
)

// PitchSlot представляет фиксированное временное окно для питча.
// Инвариант: не более одной команды на слот, не более одного слота
// на команду.
type PitchSlot struct {
	SlotID   string     `json:"slot_id"`
	StartsAt time.Time  `json:"starts_at"`
	EndsAt   time.Time  `json:"ends_at"`
	Status   SlotStatus `json:"status"`
	TeamID   *string    `json:"team_id,omitempty"`
}

// SlotPhase представляет производное состояние слота во времени
type SlotPhase string

// Фазы слота относительно текущего момента
const (
	SlotUpcoming SlotPhase = "upcoming" // До начала слота
	SlotJoinable SlotPhase = "joinable" // Окно входа перед началом
	SlotLive     SlotPhase = "live"     // Питч идет
	SlotEnded    SlotPhase = "ended"    // Слот в прошлом
)

// SlotView представляет слот с производными полями для отображения.
// Чистая проекция без побочных эффектов.
type SlotView struct {
	PitchSlot
	Phase      SlotPhase     `json:"phase"`
	TimeToLive time.Duration `json:"time_to_live"`
}

// View вычисляет производное состояние слота на момент now
func (s *PitchSlot) View(now time.Time) SlotView {
	view := SlotView{PitchSlot: *s}

	switch {
	case now.After(s.EndsAt) || now.Equal(s.EndsAt):
		view.Phase = SlotEnded
	case now.After(s.StartsAt) || now.Equal(s.StartsAt):
		view.Phase = SlotLive
	case s.StartsAt.Sub(now) <= JoinWindow:
		view.Phase = SlotJoinable
		view.TimeToLive = s.StartsAt.Sub(now)
	default:
		view.Phase = SlotUpcoming
		view.TimeToLive = s.StartsAt.Sub(now)
	}

	return view
}

// IsBooked возвращает true если слот занят
func (s *PitchSlot) IsBooked() bool {
	return s.Status == SlotBooked || s.TeamID != nil
}
