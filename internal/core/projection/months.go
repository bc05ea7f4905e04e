package projection

import (
	"fmt"
	"time"

	"github.com/SscSPs/finai_backend/internal/core/domain"
)

var monthNamesPtBR = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// MonthLabel renders m the way the client shows it, e.g. "março de 2024".
func MonthLabel(m domain.Month) string {
	return fmt.Sprintf("%s de %d", monthNamesPtBR[m.Month-1], m.Year)
}

// MonthOptions lists count months starting at the month of today. Only the first one
// is not in the future.
func MonthOptions(count int, today time.Time) []domain.MonthOption {
	if count <= 0 {
		return []domain.MonthOption{}
	}
	current := domain.MonthOf(today)
	options := make([]domain.MonthOption, count)
	for i := range options {
		m := current.AddMonths(i)
		options[i] = domain.MonthOption{
			Value:    m.String(),
			Label:    MonthLabel(m),
			IsFuture: IsFutureMonth(m, today),
		}
	}
	return options
}
