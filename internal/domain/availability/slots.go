package availability

import (
	"sort"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// IsBookable reports whether slot on date is still ahead of now. Past dates
// are never bookable; on today's date only slots after the current minute
// are. now must be in the scheduling timezone.
func IsBookable(date, slot string, now time.Time) bool {
	today := timezone.DateOf(now)
	switch {
	case date < today:
		return false
	case date > today:
		return true
	default:
		return slot > timezone.SlotOf(now)
	}
}

// FilterBookable keeps the slots of date that are still bookable at now.
// It returns nil for past dates.
func FilterBookable(date string, slots []string, now time.Time) []string {
	if date < timezone.DateOf(now) {
		return nil
	}

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if IsBookable(date, s, now) {
			out = append(out, s)
		}
	}
	return out
}

// NormalizeSlots validates HH:MM labels and returns them de-duplicated and
// sorted.
func NormalizeSlots(slots []string) ([]string, error) {
	if len(slots) == 0 {
		return nil, ErrEmptySlots
	}

	seen := make(map[string]bool, len(slots))
	out := make([]string, 0, len(slots))
	for _, raw := range slots {
		s := strings.TrimSpace(raw)
		if !ValidSlot(s) {
			return nil, ErrInvalidSlot
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}

	sort.Strings(out)
	return out, nil
}

// ValidSlot accepts zero-padded 24h labels only, so lexical order is time order.
func ValidSlot(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := timezone.ParseSlot(s)
	return err == nil
}

func ValidDate(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse(timezone.DateLayout, s)
	return err == nil
}

// ValidateDate checks the format and rejects dates before today.
func ValidateDate(date string, now time.Time) error {
	if !ValidDate(date) {
		return ErrInvalidDate
	}
	if date < timezone.DateOf(now) {
		return ErrPastDate
	}
	return nil
}
