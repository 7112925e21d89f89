package journal

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrBadDate = errors.New("malformed date, want YYYY-MM-DD")
	ErrDecode  = errors.New("entry record cannot be decoded")
)

// dateLayout is the canonical form used for file names and the API.
const dateLayout = "2006-01-02"

// Date identifies a diary entry at day granularity, no time of day.
// The zero value is not a valid date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	return DateOf(t), nil
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// Today returns the current date in local time.
func Today() Date {
	return DateOf(time.Now())
}

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

// Time returns midnight local time on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

// Before reports whether d falls before other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(data []byte) error {
	parsed, err := ParseDate(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Entry is the text content associated with one calendar date.
type Entry struct {
	Date Date   `json:"date"`
	Text string `json:"text"`
}

// entryRecord is the on-disk shape of a single entry file.
type entryRecord struct {
	Text string `json:"text"`
}
