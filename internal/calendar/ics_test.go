package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func testCalendar(t *testing.T, team string) *Calendar {
	t.Helper()

	b, err := NewBuilder(testSourceURL, DefaultTimezone)
	if err != nil {
		t.Fatalf("NewBuilder() error: %v", err)
	}
	b.now = func() time.Time { return time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC) }

	cal, err := b.Build(team, scheduleOf(sharksEagles(false), sharksEagles(true)))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return cal
}

func TestGenerateICS(t *testing.T) {
	ics := GenerateICS(testCalendar(t, "Sharks"))

	requiredFields := []string{
		"BEGIN:VCALENDAR\r\n",
		"VERSION:2.0\r\n",
		"PRODID:-//BIS Academy//bis-schedules//EN\r\n",
		"X-WR-CALNAME:BIS Academy: Sharks\r\n",
		"X-WR-CALDESC:extracted from https://test.example.com/bis-schedules/\r\n",
		"X-WR-TIMEZONE:America/Denver\r\n",
		"BEGIN:VEVENT\r\n",
		"UID:",
		"DTSTAMP:20240501T120000Z\r\n",
		"DTSTART;TZID=America/Denver:20240601T180000\r\n",
		"DTEND;TZID=America/Denver:20240601T190000\r\n",
		"SUMMARY:⚽️ Eagles @ Sharks\r\n",
		"LOCATION:Foothills Community Park\r\n",
		"LOCATION:Boulder Indoor Soccer\r\n",
		"DESCRIPTION:field: Field 3\\njersey: blue\r\n",
		"END:VEVENT\r\n",
		"END:VCALENDAR\r\n",
	}

	for _, field := range requiredFields {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing required field: %q", field)
		}
	}

	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("Expected 2 BEGIN:VEVENT, got %d", got)
	}
	if got := strings.Count(ics, "END:VEVENT"); got != 2 {
		t.Errorf("Expected 2 END:VEVENT, got %d", got)
	}

	if !strings.HasPrefix(ics, "BEGIN:VCALENDAR") || !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Error("ICS should start with BEGIN:VCALENDAR and end with END:VCALENDAR")
	}

	if strings.Contains(strings.ReplaceAll(ics, "\r\n", ""), "\n") {
		t.Error("ICS should only use \\r\\n line endings")
	}
}

func TestGenerateICS_AwayTeam(t *testing.T) {
	ics := GenerateICS(testCalendar(t, "Eagles"))

	if !strings.Contains(ics, "DESCRIPTION:field: Field 3\\njersey: white\r\n") {
		t.Error("away team's calendar should list the white jersey")
	}
	if !strings.Contains(ics, "X-WR-CALNAME:BIS Academy: Eagles\r\n") {
		t.Error("calendar name should use the away team")
	}
}

func TestGenerateICS_NoEvents(t *testing.T) {
	ics := GenerateICS(&Calendar{Name: "BIS Academy: Nobody", Timezone: DefaultTimezone})

	if strings.Contains(ics, "BEGIN:VEVENT") {
		t.Error("calendar without events should have no VEVENT")
	}
	if !strings.Contains(ics, "BEGIN:VCALENDAR") || !strings.Contains(ics, "END:VCALENDAR") {
		t.Error("calendar without events should still be a VCALENDAR")
	}
}

func TestGenerateICS_LineFolding(t *testing.T) {
	team := strings.Repeat("Boulder Rapids Juniors ⚽️ ", 6)
	cal := &Calendar{
		Name:     "BIS Academy: " + team,
		Timezone: DefaultTimezone,
		Stamp:    time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC),
	}

	ics := GenerateICS(cal)

	assertFolded(t, ics)

	unfolded := strings.ReplaceAll(ics, "\r\n ", "")
	if !strings.Contains(unfolded, "X-WR-CALNAME:BIS Academy: "+team+"\r\n") {
		t.Error("unfolded calendar name should equal the original")
	}
}

func TestGenerateICS_InvalidUTF8(t *testing.T) {
	denver, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		t.Fatalf("LoadLocation() error: %v", err)
	}
	start := time.Date(2024, time.June, 1, 18, 0, 0, 0, denver)

	tests := []struct {
		name    string
		summary string
	}{
		{"run of continuation bytes", "SUMMARY:" + strings.Repeat("\x80", 100)},
		{"interleaved invalid bytes", strings.Repeat("\x80a", 60)},
		{"truncated rune at end", strings.Repeat("x", 80) + "\xe2\x9a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := &Calendar{
				Name:     "BIS Academy: Sharks",
				Timezone: DefaultTimezone,
				Events: []Event{{
					UID:     "test",
					Summary: tt.summary,
					Start:   start,
					End:     start.Add(GameDuration),
				}},
			}

			ics := GenerateICS(cal)

			if !utf8.ValidString(ics) {
				t.Error("output should be valid UTF-8")
			}
			assertFolded(t, ics)
			if !strings.Contains(ics, "\uFFFD") {
				t.Error("invalid bytes should be replaced with U+FFFD")
			}
		})
	}
}

func TestGenerateICS_LineBreaksInText(t *testing.T) {
	cal := testCalendar(t, "Sharks")
	cal.Events[0].Description = "field: Field 3\r\njersey: blue\rnote, bring water; snacks"

	ics := strings.ReplaceAll(GenerateICS(cal), "\r\n ", "")

	want := "DESCRIPTION:field: Field 3\\njersey: blue\\nnote\\, bring water\\; snacks\r\n"
	if !strings.Contains(ics, want) {
		t.Errorf("ICS missing %q", want)
	}
}

func TestGenerateICS_Timezone(t *testing.T) {
	ics := GenerateICS(testCalendar(t, "Sharks"))

	want := []string{
		"BEGIN:VTIMEZONE\r\nTZID:America/Denver\r\n",
		"BEGIN:DAYLIGHT\r\nDTSTART:20240310T020000\r\nTZOFFSETFROM:-0700\r\nTZOFFSETTO:-0600\r\nTZNAME:MDT\r\nEND:DAYLIGHT\r\n",
		"BEGIN:STANDARD\r\nDTSTART:20241103T020000\r\nTZOFFSETFROM:-0600\r\nTZOFFSETTO:-0700\r\nTZNAME:MST\r\nEND:STANDARD\r\n",
		"BEGIN:STANDARD\r\nDTSTART:20231105T020000\r\n",
		"END:VTIMEZONE\r\n",
	}
	for _, s := range want {
		if !strings.Contains(ics, s) {
			t.Errorf("ICS missing %q", s)
		}
	}

	if strings.Index(ics, "BEGIN:VTIMEZONE") > strings.Index(ics, "BEGIN:VEVENT") {
		t.Error("VTIMEZONE should come before the events that reference it")
	}
}

func TestGenerateICS_FixedOffsetTimezone(t *testing.T) {
	b, err := NewBuilder(testSourceURL, "America/Phoenix")
	if err != nil {
		t.Fatalf("NewBuilder() error: %v", err)
	}

	cal, err := b.Build("Sharks", scheduleOf(sharksEagles(false)))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	ics := GenerateICS(cal)

	want := "BEGIN:STANDARD\r\nDTSTART:19700101T000000\r\nTZOFFSETFROM:-0700\r\nTZOFFSETTO:-0700\r\nTZNAME:MST\r\nEND:STANDARD\r\n"
	if !strings.Contains(ics, want) {
		t.Errorf("ICS missing %q", want)
	}
	if strings.Contains(ics, "BEGIN:DAYLIGHT") {
		t.Error("a zone without DST should have no DAYLIGHT observance")
	}
}

func TestFormatOffset(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "+0000"},
		{-7 * 3600, "-0700"},
		{5*3600 + 30*60, "+0530"},
		{-(3*3600 + 30*60), "-0330"},
	}

	for _, tt := range tests {
		if got := formatOffset(tt.seconds); got != tt.want {
			t.Errorf("formatOffset(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestCalendar_WriteTo(t *testing.T) {
	cal := testCalendar(t, "Sharks")

	var buf bytes.Buffer
	n, err := cal.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d, wrote %d bytes", n, buf.Len())
	}
	if buf.String() != GenerateICS(cal) {
		t.Error("WriteTo() output should equal GenerateICS()")
	}
}

func TestFormatLocalTime(t *testing.T) {
	denver, err := time.LoadLocation("America/Denver")
	if err != nil {
		t.Fatalf("LoadLocation() error: %v", err)
	}

	testTime := time.Date(2024, 6, 1, 18, 0, 0, 0, denver)

	if got := formatLocalTime(testTime); got != "20240601T180000" {
		t.Errorf("formatLocalTime() = %q, want %q", got, "20240601T180000")
	}
}

func TestTextValue(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Simple text", "Simple text"},
		{"Text with\r\ncrlf", "Text with\ncrlf"},
		{"Text with\rcr", "Text with\ncr"},
		{"bad \xff byte", "bad \uFFFD byte"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := textValue(tt.input); got != tt.expected {
				t.Errorf("textValue(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// assertFolded checks every physical line is at most 75 octets and valid UTF-8
func assertFolded(t *testing.T, ics string) {
	t.Helper()

	for _, line := range strings.Split(strings.TrimSuffix(ics, "\r\n"), "\r\n") {
		if len(line) > 75 {
			t.Errorf("line longer than 75 octets: %q", line)
		}
		if !utf8.ValidString(line) {
			t.Errorf("fold split a UTF-8 sequence: %q", line)
		}
	}
}
