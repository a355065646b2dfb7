package calendar

import "time"

// Weeks organizes the month into Monday-first rows of exactly seven
// days. Leading and trailing slots are filled with bare padding days
// from the adjacent months; padding days never carry entry, holiday or
// non-working overlays.
func (c *Monthly) Weeks() [][]*Day {
	first := c.Days[0].Date
	last := c.Days[len(c.Days)-1].Date

	var all []*Day

	lead := mondayOffset(first)
	for i := lead; i > 0; i-- {
		all = append(all, newDay(first.AddDate(0, 0, -i), c.Owner, PaddingBefore))
	}

	all = append(all, c.Days...)

	trail := 6 - mondayOffset(last)
	for i := 1; i <= trail; i++ {
		all = append(all, newDay(last.AddDate(0, 0, i), c.Owner, PaddingAfter))
	}

	weeks := make([][]*Day, 0, len(all)/7)
	for i := 0; i < len(all); i += 7 {
		weeks = append(weeks, all[i:i+7])
	}
	return weeks
}

// mondayOffset is the number of days since the most recent Monday,
// 0 for Monday through 6 for Sunday.
func mondayOffset(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}
