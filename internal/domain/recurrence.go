package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTimeLocal parses a wall-clock time in "HH:MM" format.
func ParseTimeLocal(timeLocal string) (hour, minute int, err error) {
	parts := strings.Split(timeLocal, ":")
	if len(parts) != 2 {
		return 0, 0, NewValidationError("time_local", "must be in HH:MM format, got %q", timeLocal)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, NewValidationError("time_local", "hour must be between 00 and 23, got %q", parts[0])
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, NewValidationError("time_local", "minute must be between 00 and 59, got %q", parts[1])
	}

	return hour, minute, nil
}

// ValidWeekday reports whether weekday is within the 0=Monday..6=Sunday range.
func ValidWeekday(weekday int) bool {
	return weekday >= Monday && weekday <= Sunday
}

// LoadTimezone validates an IANA zone name against the timezone database.
func LoadTimezone(name string) (*time.Location, error) {
	if name == "" {
		return nil, NewValidationError("timezone", "must not be empty")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, NewValidationError("timezone", "timezone not recognized: %q", name)
	}
	return loc, nil
}

// ToGoWeekday converts a 0=Monday weekday to Go's 0=Sunday time.Weekday.
func ToGoWeekday(weekday int) time.Weekday {
	return time.Weekday((weekday + 1) % 7)
}

// FromGoWeekday converts Go's time.Weekday to the 0=Monday numbering.
func FromGoWeekday(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// resolveLocal maps a local calendar date and wall-clock reading to an
// absolute instant.
//
// DST makes this mapping non-trivial twice a year:
//   - a skipped reading (spring forward) does not exist; time.Date lands just
//     before the gap with a wall clock short of the requested one, and rolling
//     forward by the shortfall crosses the gap to the next valid instant;
//   - a repeated reading (fall back) maps to two instants; we keep the LATER
//     one, found by probing forward across the usual 30/60 minute shifts for
//     an instant with the same wall-clock reading.
func resolveLocal(year int, month time.Month, day, hour, minute int, loc *time.Location) time.Time {
	t := time.Date(year, month, day, hour, minute, 0, 0, loc)

	if got, want := t.Hour()*60+t.Minute(), hour*60+minute; got != want {
		// DST gaps are at most two hours; a larger shortfall means time.Date
		// already normalized past the gap and t is the next valid instant.
		if short := (want - got + 24*60) % (24 * 60); short > 0 && short <= 120 {
			return t.Add(time.Duration(short) * time.Minute)
		}
		return t
	}

	for _, shift := range []time.Duration{30 * time.Minute, time.Hour} {
		if later := t.Add(shift); later.Hour() == hour && later.Minute() == minute {
			return later
		}
	}
	return t
}

// ComputeFirstRun returns the earliest UTC instant at or after "after" whose
// local projection in tz reads timeLocal on a day matching weekday. Used when
// a schedule is created or its timing fields are edited.
func ComputeFirstRun(weekday int, timeLocal, tz string, after time.Time) (time.Time, error) {
	if !ValidWeekday(weekday) {
		return time.Time{}, NewValidationError("weekday", "must be between 0 (Monday) and 6 (Sunday), got %d", weekday)
	}
	hour, minute, err := ParseTimeLocal(timeLocal)
	if err != nil {
		return time.Time{}, err
	}
	loc, err := LoadTimezone(tz)
	if err != nil {
		return time.Time{}, err
	}

	localAfter := after.In(loc)
	offset := (weekday - FromGoWeekday(localAfter.Weekday()) + 7) % 7

	// First candidate is the matching weekday in the current week; if its
	// wall-clock moment has already passed, the one a week later cannot have.
	for _, days := range []int{offset, offset + 7} {
		day := localAfter.AddDate(0, 0, days)
		candidate := resolveLocal(day.Year(), day.Month(), day.Day(), hour, minute, loc)
		if !candidate.Before(after) {
			return candidate.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("no occurrence of weekday %d %s found after %s", weekday, timeLocal, after)
}

// AdvanceByOneWeek returns the UTC instant for the same weekday and
// wall-clock time one calendar week after previousNominalUTC. The date
// arithmetic happens in local time with the wall clock held fixed, so a DST
// transition inside the week is absorbed by the final UTC conversion; adding
// 168 hours in UTC would not be.
func AdvanceByOneWeek(previousNominalUTC time.Time, weekday int, timeLocal, tz string) (time.Time, error) {
	if !ValidWeekday(weekday) {
		return time.Time{}, NewValidationError("weekday", "must be between 0 (Monday) and 6 (Sunday), got %d", weekday)
	}
	hour, minute, err := ParseTimeLocal(timeLocal)
	if err != nil {
		return time.Time{}, err
	}
	loc, err := LoadTimezone(tz)
	if err != nil {
		return time.Time{}, err
	}

	next := previousNominalUTC.In(loc).AddDate(0, 0, 7)
	// Re-pin to the schedule's weekday in case the stored nominal drifted.
	if d := (weekday - FromGoWeekday(next.Weekday()) + 7) % 7; d != 0 {
		next = next.AddDate(0, 0, d)
	}

	return resolveLocal(next.Year(), next.Month(), next.Day(), hour, minute, loc).UTC(), nil
}

// EffectiveFireTime returns the instant dispatch should actually occur:
// the nominal instant minus the advance-notice offset. Both ends are UTC,
// so this is plain arithmetic with no zone resolution.
func EffectiveFireTime(nominalUTC time.Time, advanceMinutes int) time.Time {
	return nominalUTC.Add(-time.Duration(advanceMinutes) * time.Minute)
}
