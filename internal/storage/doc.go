// Package storage writes team calendars to disk.
//
// Each team's calendar is stored as <team>.ics in the output directory. Path
// separators in team names are replaced so every calendar lands directly in that
// directory.
package storage
