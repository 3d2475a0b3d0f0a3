// Package scraper provides HTTP fetching and HTML table extraction for the BIS Academy
// schedule page.
//
// The page renders each schedule as a TablePress table. Every element carrying the
// "tablepress" class token must hold exactly one tbody, and each data row holds five
// cells in fixed order: date, time, home team, away team, field. Rows whose date cell
// has no text node are separators and are skipped. Tables that also carry the
// "badweathertable" token list games moved indoors.
package scraper
