package domain

import "time"

// Критерии рубрики жюри с максимальными баллами.
// Итог считается на сервере: неизвестные критерии отбрасываются,
// значения ограничиваются диапазоном [0, max].
var RubricMaxima = map[string]int{
	"innovation":   25,
	"impact":       25,
	"feasibility":  25,
	"presentation": 25,
}

// Score представляет оценку жюри для команды.
// Не более одной оценки на пару (судья, команда); повторная отправка
// перезаписывает предыдущую.
type Score struct {
	JudgeID   string         `json:"judge_id"`
	TeamID    string         `json:"team_id"`
	Criteria  map[string]int `json:"criteria"`
	Total     int            `json:"total"`
	Feedback  string         `json:"feedback"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ClampRubric приводит оценки к рубрике: отбрасывает неизвестные
// критерии, ограничивает баллы диапазоном [0, max] и возвращает
// пересчитанный итог.
func ClampRubric(criteria map[string]int) (map[string]int, int) {
	clamped := make(map[string]int, len(RubricMaxima))
	total := 0

	for criterion, max := range RubricMaxima {
		points, ok := criteria[criterion]
		if !ok {
			continue
		}
		if points < 0 {
			points = 0
		}
		if points > max {
			points = max
		}
		clamped[criterion] = points
		total += points
	}

	return clamped, total
}
