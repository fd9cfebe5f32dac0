package service

import (
	"fmt"
	"regexp"
	"time"

	"github.com/Bessima/food-dispatch/internal/customerror"
	"github.com/Bessima/food-dispatch/internal/models"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Clock defines "today" for dispatch operations in one configured location.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func NewClock(location *time.Location) Clock {
	if location == nil {
		location = time.UTC
	}
	return Clock{Now: time.Now, Location: location}
}

func (clock Clock) now() time.Time {
	if clock.Now == nil {
		return time.Now().In(clock.location())
	}
	return clock.Now().In(clock.location())
}

func (clock Clock) location() *time.Location {
	if clock.Location == nil {
		return time.UTC
	}
	return clock.Location
}

func (clock Clock) startOf(t time.Time) time.Time {
	year, month, day := t.In(clock.location()).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, clock.location())
}

// Today returns the half-open range [start, next day start) of the current day.
func (clock Clock) Today() (time.Time, time.Time) {
	start := clock.startOf(clock.now())
	return start, start.AddDate(0, 0, 1)
}

// EndOfToday is 23:59:59.999 of the current day.
func (clock Clock) EndOfToday() time.Time {
	_, next := clock.Today()
	return next.Add(-time.Millisecond)
}

// ParseDay validates a YYYY-MM-DD date and returns its day range. An empty date means today.
func (clock Clock) ParseDay(date string) (time.Time, time.Time, error) {
	if date == "" {
		start, end := clock.Today()
		return start, end, nil
	}
	if !isoDatePattern.MatchString(date) {
		return time.Time{}, time.Time{}, customerror.NewValidationError(fmt.Sprintf("date %q must be in YYYY-MM-DD format", date))
	}
	start, err := time.ParseInLocation(models.DateLayout, date, clock.location())
	if err != nil {
		return time.Time{}, time.Time{}, customerror.NewValidationError(fmt.Sprintf("date %q is not a calendar date", date))
	}
	return start, start.AddDate(0, 0, 1), nil
}

// StartOfDate places a calendar date at midnight of the configured location.
func (clock Clock) StartOfDate(date models.Date) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, clock.location())
}
