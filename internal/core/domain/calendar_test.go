package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/finai_backend/internal/apperrors"
	"github.com/SscSPs/finai_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Month
		wantErr bool
	}{
		{in: "2024-03", want: domain.Month{Year: 2024, Month: time.March}},
		{in: "1999-12", want: domain.Month{Year: 1999, Month: time.December}},
		{in: "2024-3", wantErr: true},
		{in: "2024-13", wantErr: true},
		{in: "2024-03-01", wantErr: true},
		{in: "24-03", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseMonth(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestMonth_Arithmetic(t *testing.T) {
	jan := domain.Month{Year: 2024, Month: time.January}

	assert.Equal(t, domain.Month{Year: 2023, Month: time.December}, jan.AddMonths(-1))
	assert.Equal(t, domain.Month{Year: 2025, Month: time.February}, jan.AddMonths(13))
	assert.Equal(t, 14, domain.Month{Year: 2025, Month: time.March}.MonthsSince(jan))
	assert.Equal(t, -1, domain.Month{Year: 2023, Month: time.December}.MonthsSince(jan))
	assert.True(t, jan.Before(jan.AddMonths(1)))
	assert.True(t, jan.AddMonths(1).After(jan))
	assert.False(t, jan.After(jan))
}

func TestMonth_ClampedDate(t *testing.T) {
	feb2024 := domain.Month{Year: 2024, Month: time.February}
	feb2023 := domain.Month{Year: 2023, Month: time.February}
	apr := domain.Month{Year: 2024, Month: time.April}

	assert.Equal(t, "2024-02-29", feb2024.ClampedDate(31).String())
	assert.Equal(t, "2023-02-28", feb2023.ClampedDate(30).String())
	assert.Equal(t, "2024-04-30", apr.ClampedDate(31).String())
	assert.Equal(t, "2024-04-04", apr.ClampedDate(4).String())
}

func TestDate_JSON(t *testing.T) {
	var d domain.Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-04"`), &d))
	assert.Equal(t, domain.NewDate(2024, time.January, 4), d)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-01-04"`, string(out))

	err = json.Unmarshal([]byte(`"04/01/2024"`), &d)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestMonth_Contains(t *testing.T) {
	m := domain.Month{Year: 2024, Month: time.March}
	assert.True(t, m.Contains(domain.NewDate(2024, time.March, 31)))
	assert.False(t, m.Contains(domain.NewDate(2023, time.March, 1)))
}
