package availability

import "time"

var weekdayNames = [...]string{
	time.Sunday:    "Sunday",
	time.Monday:    "Monday",
	time.Tuesday:   "Tuesday",
	time.Wednesday: "Wednesday",
	time.Thursday:  "Thursday",
	time.Friday:    "Friday",
	time.Saturday:  "Saturday",
}

// WeekdayName maps 0=Sunday..6=Saturday to its English name.
// Out-of-range values yield "".
func WeekdayName(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return weekdayNames[d]
}

// ParseWeekday is the inverse of WeekdayName.
func ParseWeekday(name string) (time.Weekday, bool) {
	for i, n := range weekdayNames {
		if n == name {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// IsWeekdayName reports whether s is one of the seven English weekday names.
func IsWeekdayName(s string) bool {
	_, ok := ParseWeekday(s)
	return ok
}

// TeachingDays is the day vocabulary of catalog records.
func TeachingDays() []string {
	return []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
}

// IsTeachingDay reports whether s may appear as a record's day.
func IsTeachingDay(s string) bool {
	for _, d := range TeachingDays() {
		if d == s {
			return true
		}
	}
	return false
}

// FilterDays is the day list the browser's filter offers. It is narrower
// than TeachingDays; ResolveCurrentSlot may still return any weekday.
func FilterDays() []string {
	return []string{"Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
}
