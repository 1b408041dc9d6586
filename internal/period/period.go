package period

import (
	"fmt"
	"time"
)

// Period identifies a reporting window: a month (0-11) within a year.
// Months are zero-indexed to match the wire format the API uses.
type Period struct {
	Month int
	Year  int
}

// Current returns the period containing the local current time.
func Current() Period {
	now := time.Now()
	return Period{Month: int(now.Month()) - 1, Year: now.Year()}
}

// Add returns the period n months away, rolling the year as needed.
// n may be negative.
func (p Period) Add(n int) Period {
	total := p.Year*12 + p.Month + n

	year := total / 12
	month := total % 12

	if month < 0 {
		month += 12
		year--
	}

	return Period{Month: month, Year: year}
}

// Next returns the following month; December rolls into January of the
// next year.
func (p Period) Next() Period {
	return p.Add(1)
}

// Prev returns the preceding month; January rolls into December of the
// previous year.
func (p Period) Prev() Period {
	return p.Add(-1)
}

func (p Period) String() string {
	return fmt.Sprintf("%s %d", time.Month(p.Month+1).String(), p.Year)
}
