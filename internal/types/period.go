package types

import (
	"fmt"
	"time"
)

const periodLayout = "2006-01"

// Period is a calendar month. Verification and reward distribution are both
// bucketed by period.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the period containing t, evaluated in t's location.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

func (p Period) Previous() Period {
	if p.Month == time.January {
		return Period{Year: p.Year - 1, Month: time.December}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(periodLayout, s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q, expected YYYY-MM", s)
	}
	return PeriodOf(t), nil
}
