package scheduling

import (
	"fmt"
	"time"
)

// minutosDe converte "HH:MM" em minutos desde a meia-noite.
func minutosDe(hora string) (int, bool) {
	if len(hora) != 5 || hora[2] != ':' {
		return 0, false
	}
	var hh, mm int
	if _, err := fmt.Sscanf(hora, "%d:%d", &hh, &mm); err != nil {
		return 0, false
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, false
	}
	return hh*60 + mm, true
}

// horaDe converte minutos desde a meia-noite em "HH:MM" com zero à esquerda.
func horaDe(minutos int) string {
	return fmt.Sprintf("%02d:%02d", minutos/60, minutos%60)
}

// parseData interpreta "2006-01-02" no fuso local.
func parseData(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// mesmoDia compara só a parte de data de dois instantes.
func mesmoDia(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
