package ordersearch

import "time"

const dateLayout = "2006-01-02"

// lastWeekRange returns the previous calendar week as an inclusive
// [Monday, Sunday] pair of date strings, relative to now.
func lastWeekRange(now time.Time) (string, string) {
	sinceMonday := (int(now.Weekday()) + 6) % 7

	start := now.AddDate(0, 0, -(sinceMonday + 7))
	end := start.AddDate(0, 0, 6)

	return start.Format(dateLayout), end.Format(dateLayout)
}
