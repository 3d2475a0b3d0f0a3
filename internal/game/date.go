package game

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ErrUnparseableDate is returned when no parser understands a date/time text
var ErrUnparseableDate = errors.New("unparseable date")

// Layouts tried first, against upper-cased text with collapsed whitespace.
// Month and weekday names match case-insensitively; AM/PM does not.
var dateTimeLayouts = []string{
	"January 2, 2006 3:04 PM",
	"January 2, 2006 3:04PM",
	"January 2, 2006 3 PM",
	"January 2 2006 3:04 PM",
	"Jan 2, 2006 3:04 PM",
	"Jan 2 2006 3:04 PM",
	"Monday, January 2, 2006 3:04 PM",
	"Mon, January 2, 2006 3:04 PM",
	"Monday, Jan 2, 2006 3:04 PM",
	"Mon, Jan 2, 2006 3:04 PM",
	"1/2/2006 3:04 PM",
	"1/2/06 3:04 PM",
	"2006-01-02 15:04",
	"2006-01-02 3:04 PM",
}

var naturalParser = newNaturalParser()

// dateWords are the only words the fallback parsers may see. Anything else,
// such as "TBD" or "Rainout", makes the text unparseable.
var dateWords = map[string]bool{
	"am": true, "pm": true, "a": true, "m": true, "p": true,
	"at": true, "of": true, "t": true, "z": true,
	"st": true, "nd": true, "rd": true, "th": true,
	"noon": true, "midnight": true,
}

var letterRun = regexp.MustCompile(`[A-Za-z]+`)

func init() {
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		dateWords[name] = true
		dateWords[name[:3]] = true
	}
	dateWords["sept"] = true
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		dateWords[name] = true
		dateWords[name[:3]] = true
	}
	for _, abbr := range []string{"tues", "thur", "thurs"} {
		dateWords[abbr] = true
	}
}

func newNaturalParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ParseDateTime parses a schedule date cell and time cell into a time in loc.
// Fixed layouts are tried first, then dateparse, then natural language rules.
// Text that holds no digit or any word outside month names, weekday names and
// meridiem markers is rejected before the fallbacks run, and a natural language
// match must cover the whole text.
func ParseDateTime(dateText, timeText string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	text := strings.Join(strings.Fields(dateText+" "+timeText), " ")
	if text == "" {
		return time.Time{}, fmt.Errorf("%w: empty text", ErrUnparseableDate)
	}

	upper := strings.ToUpper(text)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, upper, loc); err == nil {
			return standardIfAmbiguous(t), nil
		}
	}

	if !onlyDateWords(text) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, text)
	}

	if t, err := dateparse.ParseIn(text, loc); err == nil {
		return localize(t, loc), nil
	}

	// The reference time only fills fields the text leaves out; midnight keeps
	// the clock from leaking into the result.
	now := time.Now().In(loc)
	base := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	r, err := naturalParser.Parse(text, base)
	if err == nil && r != nil && r.Index == 0 && len(r.Text) == len(text) {
		return localize(r.Time, loc), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, text)
}

// onlyDateWords reports whether text has a digit and every word in it is a
// known date or time word
func onlyDateWords(text string) bool {
	if !strings.ContainsAny(text, "0123456789") {
		return false
	}
	for _, word := range letterRun.FindAllString(text, -1) {
		if !dateWords[strings.ToLower(word)] {
			return false
		}
	}
	return true
}

// localize reinterprets the wall clock of t in loc
func localize(t time.Time, loc *time.Location) time.Time {
	return standardIfAmbiguous(time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc))
}

// standardIfAmbiguous resolves a wall clock that occurs twice, when clocks
// fall back, to its standard time reading.
func standardIfAmbiguous(t time.Time) time.Time {
	if !t.IsDST() {
		return t
	}
	for _, shift := range []time.Duration{30 * time.Minute, time.Hour, 2 * time.Hour} {
		later := t.Add(shift)
		if !later.IsDST() && sameWallClock(t, later) {
			return later
		}
	}
	return t
}

func sameWallClock(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd &&
		a.Hour() == b.Hour() && a.Minute() == b.Minute() && a.Second() == b.Second()
}
