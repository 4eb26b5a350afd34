package domain

// Weekday numbering used across the schedule tables, API payloads and the
// recurrence functions: 0 = Monday through 6 = Sunday. This differs from Go's
// time.Weekday (0 = Sunday); conversions live in recurrence.go.
const (
	Monday    = 0
	Tuesday   = 1
	Wednesday = 2
	Thursday  = 3
	Friday    = 4
	Saturday  = 5
	Sunday    = 6
)

// WeekdayNames maps weekday numbers to their English names
var WeekdayNames = map[int]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// MaxAdvanceMinutes bounds how far before the nominal local time a reminder
// may fire (24 hours).
const MaxAdvanceMinutes = 1440

// Placeholder names every template may reference.
const (
	FieldSystemName = "system_name"
	FieldRoleID     = "role_id"
)
