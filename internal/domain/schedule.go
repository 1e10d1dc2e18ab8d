package domain

import "time"

// WorkDay describes one weekday of the work schedule. Hours are [StartHour, EndHour).
type WorkDay struct {
	IsWorkDay bool
	StartHour int
	EndHour   int
}

// WorkSchedule is indexed by time.Weekday (Sunday = 0).
type WorkSchedule [7]WorkDay

// DefaultWorkSchedule is Monday to Friday, 9:00 to 18:00.
func DefaultWorkSchedule() WorkSchedule {
	var s WorkSchedule
	for d := time.Monday; d <= time.Friday; d++ {
		s[d] = WorkDay{IsWorkDay: true, StartHour: 9, EndHour: 18}
	}
	return s
}

// InWorkWindow reports whether t falls on a work day inside its work hours.
func (s WorkSchedule) InWorkWindow(t time.Time) bool {
	day := s[t.Weekday()]
	if !day.IsWorkDay {
		return false
	}
	h := t.Hour()
	return h >= day.StartHour && h < day.EndHour
}
