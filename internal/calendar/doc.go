// Package calendar builds per-team iCalendar documents from scraped games.
//
// Each game becomes a one hour event localized to the league's timezone. The event
// location depends on whether the game was listed in a bad weather table, and the
// description names the field and the jersey color the team wears (blue at home,
// white away).
package calendar
