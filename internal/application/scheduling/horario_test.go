package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMinutosDe(t *testing.T) {
	casos := []struct {
		hora    string
		minutos int
		ok      bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"9:00", 0, false},  // sem zero à esquerda
		{"0900", 0, false},  // sem separador
		{"09-00", 0, false}, // separador errado
		{"", 0, false},
	}
	for _, c := range casos {
		min, ok := minutosDe(c.hora)
		assert.Equal(t, c.ok, ok, c.hora)
		if c.ok {
			assert.Equal(t, c.minutos, min, c.hora)
		}
	}
}

func TestHoraDe(t *testing.T) {
	assert.Equal(t, "00:00", horaDe(0))
	assert.Equal(t, "09:30", horaDe(570))
	assert.Equal(t, "23:59", horaDe(1439))
}

func TestHoraDe_IdaEVolta(t *testing.T) {
	// horaDe(minutosDe(h)) preserva o formato com zero à esquerda.
	for _, h := range []string{"00:05", "08:00", "12:45", "23:00"} {
		min, ok := minutosDe(h)
		assert.True(t, ok, h)
		assert.Equal(t, h, horaDe(min))
	}
}

func TestMesmoDia(t *testing.T) {
	a := time.Date(2026, 3, 11, 0, 0, 0, 0, time.Local)
	b := time.Date(2026, 3, 11, 23, 59, 0, 0, time.Local)
	c := time.Date(2026, 3, 12, 0, 0, 0, 0, time.Local)

	assert.True(t, mesmoDia(a, b))
	assert.False(t, mesmoDia(a, c))
}

func TestParseData(t *testing.T) {
	d, err := parseData("2026-03-11")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.Local), d)

	_, err = parseData("11/03/2026")
	assert.Error(t, err)
}
