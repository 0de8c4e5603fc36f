package preferences

import (
	"regexp"
	"strconv"
	"time"
)

// isoTime is the optional time of day of an ISO 8601 date-time. The time
// separators may be extended (12:00:00) or basic (120000), independent of
// the date form.
var isoTime = `(?:[T\s](?:` + isoTimeBody(":") + `|` + isoTimeBody("") + `))?`

func isoTimeBody(sep string) string {
	return `(?:(?:[01]\d|2[0-3])(?:` + sep + `[0-5]\d(?:` + sep + `[0-5]\d)?)?|24` + sep + `00)` +
		`(?:[.,]\d+)?` +
		`(?:[zZ]|[+-](?:[01]\d|2[0-3]):?(?:[0-5]\d)?)?`
}

var (
	// 2024, 2024-06, 2024-06-01, 2024-W23, 2024-W23-1, 2024-153
	isoExtendedDate = regexp.MustCompile(`^[+-]?(?P<year>\d{4})(?:-(?:` +
		`(?P<month>0[1-9]|1[0-2])(?:-(?P<day>0[1-9]|[12]\d|3[01]))?` +
		`|W(?:[0-4]\d|5[0-3])(?:-?[1-7])?` +
		`|(?:00[1-9]|0[1-9]\d|[12]\d{2}|3(?:[0-5]\d|6[0-6]))` +
		`)` + isoTime + `)?$`)

	// 20240601, 2024W23, 2024W231, 2024153. A bare 202406 is not valid.
	isoBasicDate = regexp.MustCompile(`^[+-]?(?P<year>\d{4})(?:` +
		`(?P<month>0[1-9]|1[0-2])(?P<day>0[1-9]|[12]\d|3[01])` +
		`|W(?:[0-4]\d|5[0-3])(?:-?[1-7])?` +
		`|(?:00[1-9]|0[1-9]\d|[12]\d{2}|3(?:[0-5]\d|6[0-6]))` +
		`)` + isoTime + `$`)
)

// isISODate reports whether s is an ISO 8601 date or date-time. Calendar
// dates must name a day that exists in their month.
func isISODate(s string) bool {
	for _, re := range []*regexp.Regexp{isoExtendedDate, isoBasicDate} {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		return calendarDayExists(m[re.SubexpIndex("year")], m[re.SubexpIndex("month")], m[re.SubexpIndex("day")])
	}
	return false
}

func calendarDayExists(year, month, day string) bool {
	if month == "" || day == "" {
		return true
	}
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	return t.Day() == d
}
