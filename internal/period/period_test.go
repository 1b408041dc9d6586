package period_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jtmarsh/budgeteer/internal/period"
)

func TestPeriod_Next_RollsYear(t *testing.T) {
	p := period.Period{Month: 11, Year: 2025}

	got := p.Next()

	assert.Equal(t, period.Period{Month: 0, Year: 2026}, got)
}

func TestPeriod_Prev_RollsYear(t *testing.T) {
	p := period.Period{Month: 0, Year: 2026}

	got := p.Prev()

	assert.Equal(t, period.Period{Month: 11, Year: 2025}, got)
}

func TestPeriod_TwelveIncrementsEqualOneYear(t *testing.T) {
	start := period.Period{Month: 0, Year: 2024}

	stepped := start
	for range 12 {
		stepped = stepped.Next()
	}

	assert.Equal(t, start.Add(12), stepped)
	assert.Equal(t, period.Period{Month: 0, Year: 2025}, stepped)
}

func TestPeriod_Add_Negative(t *testing.T) {
	type testCase struct {
		name  string
		start period.Period
		n     int
		want  period.Period
	}

	tests := []testCase{
		{
			name:  "BackOneWithinYear",
			start: period.Period{Month: 5, Year: 2025},
			n:     -1,
			want:  period.Period{Month: 4, Year: 2025},
		},
		{
			name:  "BackAcrossYear",
			start: period.Period{Month: 1, Year: 2025},
			n:     -3,
			want:  period.Period{Month: 10, Year: 2024},
		},
		{
			name:  "BackTwoFullYears",
			start: period.Period{Month: 6, Year: 2025},
			n:     -24,
			want:  period.Period{Month: 6, Year: 2023},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.start.Add(tt.n))
		})
	}
}

func TestPeriod_String(t *testing.T) {
	p := period.Period{Month: 0, Year: 2026}
	assert.Equal(t, "January 2026", p.String())
}
