package main

import (
	"fmt"
	"os"

	"github.com/pfrederiksen/bis-schedules/internal/calendar"
	"github.com/pfrederiksen/bis-schedules/internal/game"
	"github.com/pfrederiksen/bis-schedules/internal/scraper"
)

func main() {
	// Create a sample schedule
	schedule := game.NewSchedule()
	for _, row := range [][]string{
		{"Saturday, June 1, 2024", "9:00 AM", "Sharks", "Eagles", "Field 2"},
		{"Saturday, June 8, 2024", "10:30 AM", "Hawks", "Sharks", "Field 1"},
	} {
		rec, err := game.NewGameRecord(row[0], row[1], row[2], row[3], false, row[4])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			os.Exit(1)
		}
		schedule.Add(rec)
	}

	cal, err := calendar.Build("Sharks", schedule, scraper.ScheduleURL, calendar.DefaultTimezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building calendar: %v\n", err)
		os.Exit(1)
	}

	icsContent := calendar.GenerateICS(cal)

	filename := "sample-Sharks.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
