package calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
)

var (
	propTZOffsetFrom = ics.ComponentProperty(ics.PropertyTzoffsetfrom)
	propTZOffsetTo   = ics.ComponentProperty(ics.PropertyTzoffsetto)
	propTZName       = ics.ComponentProperty(ics.PropertyTzname)
)

// transition is a change of UTC offset in a location
type transition struct {
	at   time.Time
	from int
	to   int
	name string
	dst  bool
}

// addTimezone adds the VTIMEZONE for tzid. Observances cover every offset
// change of loc from the year before first through last, so DTSTART values
// in those years resolve without the reader's own zone database.
func addTimezone(cal *ics.Calendar, tzid string, loc *time.Location, first, last int) {
	tz := cal.AddTimezone(tzid)

	changes := zoneTransitions(loc, first-1, last)
	if len(changes) == 0 {
		name, offset := time.Date(first, time.January, 1, 0, 0, 0, 0, loc).Zone()
		tz.Components = append(tz.Components, observance(transition{
			at:   time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC),
			from: offset,
			to:   offset,
			name: name,
		}))
		return
	}

	for _, tr := range changes {
		tz.Components = append(tz.Components, observance(tr))
	}
}

// observance renders one STANDARD or DAYLIGHT sub-component.
// DTSTART is the wall clock in effect just before the change.
func observance(tr transition) ics.Component {
	var cb ics.ComponentBase
	cb.SetProperty(ics.ComponentPropertyDtStart, formatLocalTime(tr.at.In(time.FixedZone("", tr.from))))
	cb.SetProperty(propTZOffsetFrom, formatOffset(tr.from))
	cb.SetProperty(propTZOffsetTo, formatOffset(tr.to))
	if tr.name != "" {
		cb.SetProperty(propTZName, tr.name)
	}

	if tr.dst {
		return &ics.Daylight{ComponentBase: cb}
	}
	return &ics.Standard{ComponentBase: cb}
}

// zoneTransitions lists loc's offset changes between the start of fromYear and
// the end of toYear. Days are scanned in order, so at most one change per day is found.
func zoneTransitions(loc *time.Location, fromYear, toYear int) []transition {
	var out []transition

	t := time.Date(fromYear, time.January, 1, 0, 0, 0, 0, loc)
	end := time.Date(toYear+1, time.January, 1, 0, 0, 0, 0, loc)
	_, prev := t.Zone()

	for t.Before(end) {
		next := t.Add(24 * time.Hour)
		if _, off := next.Zone(); off != prev {
			at := firstChange(t, next, loc)
			name, to := at.Zone()
			out = append(out, transition{at: at, from: prev, to: to, name: name, dst: at.IsDST()})
			prev = to
		}
		t = next
	}

	return out
}

// firstChange returns the first whole second in (lo, hi] whose offset differs from lo's
func firstChange(lo, hi time.Time, loc *time.Location) time.Time {
	_, off := lo.Zone()
	a, b := lo.Unix(), hi.Unix()
	for b-a > 1 {
		mid := a + (b-a)/2
		if _, o := time.Unix(mid, 0).In(loc).Zone(); o == off {
			a = mid
		} else {
			b = mid
		}
	}
	return time.Unix(b, 0).In(loc)
}

// formatOffset formats seconds east of UTC as an iCalendar UTC offset (+hhmm)
func formatOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("%c%02d%02d", sign, seconds/3600, seconds%3600/60)
}
