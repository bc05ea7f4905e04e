package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/finai_backend/internal/apperrors"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Date is a calendar date without time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date. Out of range values are normalized the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a strict YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", apperrors.ErrInvalidArgument, s)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// YearMonth returns the calendar month the date falls in.
func (d Date) YearMonth() Month {
	return Month{Year: d.Year, Month: d.Month}
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: date must be a string", apperrors.ErrInvalidArgument)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Month is a calendar month, written YYYY-MM on the wire.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month of t in t's own location.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a strict, zero padded YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: month %q is not YYYY-MM", apperrors.ErrInvalidArgument, s)
	}
	return MonthOf(t), nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) index() int {
	return m.Year*12 + int(m.Month) - 1
}

// Before reports whether m is an earlier month than o.
func (m Month) Before(o Month) bool { return m.index() < o.index() }

// After reports whether m is a later month than o.
func (m Month) After(o Month) bool { return m.index() > o.index() }

// MonthsSince returns the signed number of months from o to m.
func (m Month) MonthsSince(o Month) int {
	return m.index() - o.index()
}

// AddMonths returns the month n months after m (n may be negative).
func (m Month) AddMonths(n int) Month {
	i := m.index() + n
	y := i / 12
	mo := i % 12
	if mo < 0 {
		mo += 12
		y--
	}
	return Month{Year: y, Month: time.Month(mo + 1)}
}

// DaysIn returns the number of days in the month.
func (m Month) DaysIn() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Contains reports whether d falls inside the month.
func (m Month) Contains(d Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

// ClampedDate returns the given day of the month, moved back to the month's last day
// when the month is shorter (day 31 in April becomes April 30).
func (m Month) ClampedDate(day int) Date {
	if last := m.DaysIn(); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return Date{Year: m.Year, Month: m.Month, Day: day}
}

// FirstDay returns the first day of the month.
func (m Month) FirstDay() Date {
	return Date{Year: m.Year, Month: m.Month, Day: 1}
}

func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Month) UnmarshalText(text []byte) error {
	parsed, err := ParseMonth(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
