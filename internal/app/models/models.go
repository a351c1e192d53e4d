package models

// Day identifies a canonical day of the week in schedule data.
type Day string

// Canonical day identifiers, stored lowercase in the database and in
// exported JSON.
const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// Week lists the seven canonical days in order. Free-time reports cover
// every entry, even when a day has no qualifying periods.
var Week = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// IsValidDay reports whether d is one of the seven canonical days.
func IsValidDay(d Day) bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}
