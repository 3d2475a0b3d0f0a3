// Package game provides types for the games scraped from the BIS Academy schedule page.
//
// A GameRecord is one data row of a schedule table. A Schedule groups records by team
// name, keeping both the order in which teams were discovered and the document order of
// each team's games. The package also parses the free-form date and time cells of the
// source page into localized timestamps.
package game
