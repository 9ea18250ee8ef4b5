// Package availability decides which classrooms are free: it owns the fixed
// one-hour slot table, the block/floor layout, and the pure filtering and
// current-slot functions the HTTP layer calls on every request.
package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMalformedSlot     = errors.New("malformed time slot")
	ErrUnalignedInterval = errors.New("interval must start and end on whole hours of the same day")
	ErrOutsideSlots      = errors.New("interval falls outside the bookable hours")
)

// slotLabels is the only slot vocabulary used by records, filters and the UI.
var slotLabels = [...]string{
	"8:00 AM - 9:00 AM",
	"9:00 AM - 10:00 AM",
	"10:00 AM - 11:00 AM",
	"11:00 AM - 12:00 PM",
	"12:00 PM - 1:00 PM",
	"1:00 PM - 2:00 PM",
	"2:00 PM - 3:00 PM",
	"3:00 PM - 4:00 PM",
	"4:00 PM - 5:00 PM",
	"5:00 PM - 6:00 PM",
	"6:00 PM - 7:00 PM",
	"7:00 PM - 8:00 PM",
}

// TimeSlot is a half-open hour interval [StartHour, EndHour) on a 24-hour clock.
type TimeSlot struct {
	Label     string `json:"label"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
}

// Contains reports whether hour falls inside the slot.
func (s TimeSlot) Contains(hour int) bool {
	return hour >= s.StartHour && hour < s.EndHour
}

// slots is built once and never written afterwards.
var slots = mustBuildSlots()

func mustBuildSlots() []TimeSlot {
	out := make([]TimeSlot, len(slotLabels))
	for i, label := range slotLabels {
		s, err := ParseSlot(label)
		if err != nil {
			panic(err)
		}
		out[i] = s
	}
	return out
}

// Slots returns the 12 slots in ascending order.
func Slots() []TimeSlot {
	out := make([]TimeSlot, len(slots))
	copy(out, slots)
	return out
}

// Labels returns the slot labels in ascending order.
func Labels() []string {
	out := make([]string, len(slotLabels))
	copy(out, slotLabels[:])
	return out
}

// IsSlotLabel reports whether s is exactly one of the 12 labels.
func IsSlotLabel(s string) bool {
	for _, l := range slotLabels {
		if l == s {
			return true
		}
	}
	return false
}

// SlotForHour returns the first slot, scanning ascending, that contains hour.
func SlotForHour(hour int) (TimeSlot, bool) {
	for _, s := range slots {
		if s.Contains(hour) {
			return s, true
		}
	}
	return TimeSlot{}, false
}

// ParseSlot parses a "<start> - <end>" label such as "12:00 PM - 1:00 PM".
func ParseSlot(label string) (TimeSlot, error) {
	start, end, ok := strings.Cut(label, " - ")
	if !ok {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrMalformedSlot, label)
	}
	startHour, err := ParseClockHour(start)
	if err != nil {
		return TimeSlot{}, err
	}
	endHour, err := ParseClockHour(end)
	if err != nil {
		return TimeSlot{}, err
	}
	return TimeSlot{Label: label, StartHour: startHour, EndHour: endHour}, nil
}

// ParseClockHour converts a 12-hour clock reading ("9:00 AM", "12:00 PM")
// to an hour of the day. Minutes are ignored. 12 PM is noon, any other PM
// hour adds 12, and 12 AM is midnight.
func ParseClockHour(clock string) (int, error) {
	hm, suffix, ok := strings.Cut(strings.TrimSpace(clock), " ")
	if !ok {
		return 0, fmt.Errorf("%w: missing AM/PM in %q", ErrMalformedSlot, clock)
	}
	hourPart, _, _ := strings.Cut(hm, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("%w: bad hour in %q", ErrMalformedSlot, clock)
	}

	switch strings.ToUpper(strings.TrimSpace(suffix)) {
	case "AM":
		if hour == 12 {
			return 0, nil
		}
		return hour, nil
	case "PM":
		if hour == 12 {
			return 12, nil
		}
		return hour + 12, nil
	default:
		return 0, fmt.Errorf("%w: bad suffix in %q", ErrMalformedSlot, clock)
	}
}

// SlotsCovering returns the labels of the slots occupied by [start, end).
// Both ends must sit on whole hours of the same calendar day and inside the
// slot table.
func SlotsCovering(start, end time.Time) ([]string, error) {
	if !onTheHour(start) || !onTheHour(end) || !end.After(start) {
		return nil, ErrUnalignedInterval
	}
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if sy != ey || sm != em || sd != ed {
		return nil, ErrUnalignedInterval
	}

	first, last := slots[0].StartHour, slots[len(slots)-1].EndHour
	if start.Hour() < first || end.Hour() > last {
		return nil, ErrOutsideSlots
	}

	var covered []string
	for _, s := range slots {
		if s.StartHour >= start.Hour() && s.EndHour <= end.Hour() {
			covered = append(covered, s.Label)
		}
	}
	return covered, nil
}

func onTheHour(t time.Time) bool {
	return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
