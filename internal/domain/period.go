package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// PeriodKind names a calendar unit over which averages are computed.
type PeriodKind string

// The supported calendar units.
const (
	PeriodWeek    PeriodKind = "week"
	PeriodMonth   PeriodKind = "month"
	PeriodQuarter PeriodKind = "quarter"
	PeriodYear    PeriodKind = "year"
)

// ErrInvalidPeriod indicates a period locator outside its valid range.
var ErrInvalidPeriod = errors.New("invalid period")

// Period locates one calendar unit: a week, month or quarter of a year, or
// a whole year. Num is the unit number within the year and is ignored for
// PeriodYear.
type Period struct {
	Kind PeriodKind
	Year int
	Num  int
}

// Dates resolves the period to its ordered list of calendar days, each
// formatted as DayFormat, with no gaps and no duplicates. Out-of-range
// locators return ErrInvalidPeriod.
//
// Weeks are ISO-8601: Monday-start, week 1 is the week containing
// January 4th.
func (p Period) Dates() ([]string, error) {
	switch p.Kind {
	case PeriodWeek:
		if p.Num < 1 || p.Num > 53 {
			return nil, fmt.Errorf("%w: week %d", ErrInvalidPeriod, p.Num)
		}
		return daySpan(weekStart(p.Year, p.Num), 7), nil

	case PeriodMonth:
		if p.Num < 1 || p.Num > 12 {
			return nil, fmt.Errorf("%w: month %d", ErrInvalidPeriod, p.Num)
		}
		return monthDates(p.Year, time.Month(p.Num)), nil

	case PeriodQuarter:
		if p.Num < 1 || p.Num > 4 {
			return nil, fmt.Errorf("%w: quarter %d", ErrInvalidPeriod, p.Num)
		}
		first := time.Month((p.Num-1)*3 + 1)
		out := make([]string, 0, 92)
		for m := first; m < first+3; m++ {
			out = append(out, monthDates(p.Year, m)...)
		}
		return out, nil

	case PeriodYear:
		out := make([]string, 0, 366)
		for m := time.January; m <= time.December; m++ {
			out = append(out, monthDates(p.Year, m)...)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: kind %q", ErrInvalidPeriod, p.Kind)
}

// AverageSteps computes the zero-fill mean over the full date list: days
// without a record contribute zero and the denominator is always
// len(dates). Rounded to 2 decimal places. An empty date list yields 0.
func AverageSteps(records map[string]int64, dates []string) float64 {
	if len(dates) == 0 {
		return 0
	}
	var total int64
	for _, d := range dates {
		total += records[d]
	}
	return math.Round(float64(total)/float64(len(dates))*100) / 100
}

// CurrentWeek returns the ISO week containing now.
func CurrentWeek(now time.Time) Period {
	year, week := now.ISOWeek()
	return Period{Kind: PeriodWeek, Year: year, Num: week}
}

// CurrentMonth returns the month containing now.
func CurrentMonth(now time.Time) Period {
	return Period{Kind: PeriodMonth, Year: now.Year(), Num: int(now.Month())}
}

// CurrentQuarter returns the calendar quarter containing now.
func CurrentQuarter(now time.Time) Period {
	return Period{Kind: PeriodQuarter, Year: now.Year(), Num: (int(now.Month())-1)/3 + 1}
}

// CurrentYear returns the year containing now.
func CurrentYear(now time.Time) Period {
	return Period{Kind: PeriodYear, Year: now.Year()}
}

// weekStart returns the Monday of ISO week num in year. January 4th is
// always in week 1.
func weekStart(year, num int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	wd := int(jan4.Weekday())
	if wd == 0 {
		wd = 7
	}
	monday := jan4.AddDate(0, 0, 1-wd)
	return monday.AddDate(0, 0, (num-1)*7)
}

func daySpan(start time.Time, n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, start.AddDate(0, 0, i).Format(DayFormat))
	}
	return out
}

func monthDates(year int, month time.Month) []string {
	// Day 0 of the next month is the last day of this one.
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	out := make([]string, 0, last)
	for d := 1; d <= last; d++ {
		out = append(out, time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Format(DayFormat))
	}
	return out
}
