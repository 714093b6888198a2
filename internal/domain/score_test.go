package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampRubric_WithinMaxima(t *testing.T) {
	criteria := map[string]int{
		"innovation":   20,
		"impact":       15,
		"feasibility":  25,
		"presentation": 12,
	}

	clamped, total := ClampRubric(criteria)

	assert.Equal(t, criteria, clamped)
	assert.Equal(t, 72, total)
}

func TestClampRubric_ClampsOverMaximum(t *testing.T) {
	clamped, total := ClampRubric(map[string]int{
		"innovation": 999,
		"impact":     26,
	})

	assert.Equal(t, 25, clamped["innovation"])
	assert.Equal(t, 25, clamped["impact"])
	assert.Equal(t, 50, total)
}

func TestClampRubric_NegativeBecomesZero(t *testing.T) {
	clamped, total := ClampRubric(map[string]int{
		"innovation": -10,
		"impact":     10,
	})

	assert.Equal(t, 0, clamped["innovation"])
	assert.Equal(t, 10, total)
}

func TestClampRubric_DropsUnknownCriteria(t *testing.T) {
	clamped, total := ClampRubric(map[string]int{
		"bribery":    100,
		"innovation": 5,
	})

	assert.NotContains(t, clamped, "bribery")
	assert.Equal(t, 5, total)
}

func TestClampRubric_MissingCriteriaAreNotInvented(t *testing.T) {
	clamped, total := ClampRubric(map[string]int{"impact": 7})

	assert.Len(t, clamped, 1)
	assert.Equal(t, 7, total)
}
