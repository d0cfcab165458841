package domain

import "time"

// Day represents a puzzle day
type Day struct {
	Date time.Time
}

// DayOf returns the puzzle day containing t in the given location
func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return Day{Date: time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)}
}

// ParseDay parses a date key in YYYYMMDD format
func ParseDay(key string) (Day, error) {
	date, err := time.Parse("20060102", key)
	if err != nil {
		return Day{}, err
	}
	return Day{Date: date}, nil
}

// Seed returns the daily seed: year*10000 + month*100 + day
func (d Day) Seed() int {
	return d.Date.Year()*10000 + int(d.Date.Month())*100 + d.Date.Day()
}

// DateString returns date in YYYYMMDD format
func (d Day) DateString() string {
	return d.Date.Format("20060102")
}
