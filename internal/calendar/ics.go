package calendar

import (
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

const (
	prodID    = "-//BIS Academy//bis-schedules//EN"
	uidDomain = "bis-schedules"
)

// GenerateICS serializes the calendar as iCalendar (.ics) text
func GenerateICS(cal *Calendar) string {
	return toICal(cal).Serialize(ics.WithNewLineWindows)
}

// WriteTo writes the calendar's iCalendar text to w
func (c *Calendar) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, GenerateICS(c))
	return int64(n), err
}

// toICal converts the calendar into a golang-ical document.
// Values are passed unescaped; the library escapes and folds them.
func toICal(cal *Calendar) *ics.Calendar {
	out := ics.NewCalendar()
	out.SetProductId(prodID)
	out.SetCalscale("GREGORIAN")
	out.SetMethod(ics.MethodPublish)
	out.SetXWRCalName(textValue(cal.Name))
	out.SetXWRCalDesc(textValue(cal.Description))
	out.SetXWRTimezone(cal.Timezone)

	if len(cal.Events) == 0 {
		return out
	}

	first, last := eventYears(cal.Events)
	addTimezone(out, cal.Timezone, cal.Events[0].Start.Location(), first, last)

	stamp := cal.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}

	for _, evt := range cal.Events {
		e := out.AddEvent(evt.UID + "@" + uidDomain)
		e.SetDtStampTime(stamp)
		e.SetProperty(ics.ComponentPropertyDtStart, formatLocalTime(evt.Start), ics.WithTZID(cal.Timezone))
		e.SetProperty(ics.ComponentPropertyDtEnd, formatLocalTime(evt.End), ics.WithTZID(cal.Timezone))
		e.SetSummary(textValue(evt.Summary))
		e.SetLocation(textValue(evt.Location))
		e.SetDescription(textValue(evt.Description))
	}

	return out
}

// eventYears returns the first and last calendar year any event starts in
func eventYears(events []Event) (int, int) {
	first, last := events[0].Start.Year(), events[0].Start.Year()
	for _, evt := range events[1:] {
		y := evt.Start.Year()
		if y < first {
			first = y
		}
		if y > last {
			last = y
		}
	}
	return first, last
}

// formatLocalTime formats the wall clock of t for use with a TZID parameter
func formatLocalTime(t time.Time) string {
	return t.Format("20060102T150405")
}

// textValue prepares scraped text for a TEXT property.
// Invalid UTF-8 is replaced and every line break becomes a single newline.
func textValue(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
