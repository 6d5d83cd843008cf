package recur

import "time"

// horizonBuffer keeps expansion comfortably past every window currently in
// view, so the horizon never depends on which view asked first.
const horizonBuffer = 60 // days

// Horizon returns the expansion end date: the latest of the overview window
// end, the projection window end, and two months past the calendar month in
// view, plus a 60-day buffer.
func Horizon(overviewEnd, projectionEnd, calendarMonth time.Time) time.Time {
	latest := overviewEnd
	if projectionEnd.After(latest) {
		latest = projectionEnd
	}
	if cal := calendarMonth.AddDate(0, 2, 0); cal.After(latest) {
		latest = cal
	}
	return latest.AddDate(0, 0, horizonBuffer)
}
