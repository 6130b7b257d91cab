package timezone

import (
	"sync"
	"time"
)

const (
	DefaultTimezone = "America/Sao_Paulo"

	DateLayout = "2006-01-02"
	SlotLayout = "15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// Clock returns "now" in the single configured scheduling timezone.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type SystemClock struct {
	loc *time.Location
}

func NewSystemClock(tz string) *SystemClock {
	return &SystemClock{loc: Location(tz)}
}

func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *SystemClock) Location() *time.Location {
	return c.loc
}

// FixedClock is a settable clock used by sweeps and tests.
type FixedClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *FixedClock) Location() *time.Location {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now.Location()
}

func (c *FixedClock) Set(now time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// DateOf returns the YYYY-MM-DD label of t in its own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// SlotOf returns the HH:MM label of t, truncated to the minute.
func SlotOf(t time.Time) string {
	return t.Format(SlotLayout)
}

func ParseDate(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, loc)
}

func ParseSlot(slot string) (time.Time, error) {
	return time.Parse(SlotLayout, slot)
}

// At combines a date label and a slot label into an instant in loc.
func At(date, slot string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+SlotLayout, date+" "+slot, loc)
}
