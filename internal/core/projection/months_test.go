package projection_test

import (
	"testing"
	"time"

	"github.com/SscSPs/finai_backend/internal/core/domain"
	"github.com/SscSPs/finai_backend/internal/core/projection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthOptions(t *testing.T) {
	today := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	got := projection.MonthOptions(3, today)

	require.Len(t, got, 3)
	values := []string{got[0].Value, got[1].Value, got[2].Value}
	future := []bool{got[0].IsFuture, got[1].IsFuture, got[2].IsFuture}
	assert.Equal(t, []string{"2024-03", "2024-04", "2024-05"}, values)
	assert.Equal(t, []bool{false, true, true}, future)
	assert.Equal(t, "março de 2024", got[0].Label)
}

func TestMonthOptions_CrossesYear(t *testing.T) {
	today := time.Date(2024, time.November, 30, 23, 59, 0, 0, time.UTC)

	got := projection.MonthOptions(4, today)

	require.Len(t, got, 4)
	assert.Equal(t, "2025-02", got[3].Value)
	assert.Equal(t, "fevereiro de 2025", got[3].Label)
	assert.Equal(t, "dezembro de 2024", got[1].Label)
}

func TestMonthOptions_AgreesWithProjector(t *testing.T) {
	today := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	ledger := sampleLedger()

	for _, opt := range projection.MonthOptions(6, today) {
		m, err := domain.ParseMonth(opt.Value)
		require.NoError(t, err)
		entries := projection.ProjectMonth(ledger, m, today)
		for _, e := range entries {
			assert.Equal(t, opt.IsFuture, e.Projected(), opt.Value)
		}
	}
}

func TestMonthOptions_NonPositiveCount(t *testing.T) {
	assert.Empty(t, projection.MonthOptions(0, time.Now()))
	assert.Empty(t, projection.MonthOptions(-2, time.Now()))
}
