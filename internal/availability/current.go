package availability

import "time"

// ResolveCurrentSlot maps a local wall-clock reading to the slot containing
// its hour and the weekday name. slot is "" outside 8:00 AM - 8:00 PM.
// The clock is always supplied by the caller.
func ResolveCurrentSlot(now time.Time) (slot string, day string) {
	day = WeekdayName(now.Weekday())
	if s, ok := SlotForHour(now.Hour()); ok {
		slot = s.Label
	}
	return slot, day
}

// WithCurrent applies the "check presently available" action: when now
// falls inside a slot, Day and TimeSlot are replaced by the current ones.
// Otherwise c is returned unchanged.
func (c Criteria) WithCurrent(now time.Time) Criteria {
	slot, day := ResolveCurrentSlot(now)
	if slot == "" {
		return c
	}
	c.Day = day
	c.TimeSlot = slot
	return c
}
