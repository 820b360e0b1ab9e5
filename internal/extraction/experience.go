package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spigell/resume-parser/internal/resume"
)

const (
	rangeSeparator = `\s*(?:-|–|—|to)\s*`
	monthName      = `\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sept?(?:ember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\b`
)

var (
	monthYearRange = regexp.MustCompile(`(?i)` + monthName + `\.?,?\s*(\d{4})` + rangeSeparator +
		`(?:` + monthName + `\.?,?\s*(\d{4})|(present|current|now))\b`)
	numericRange = regexp.MustCompile(`(?i)\b(\d{1,2})/(\d{4})` + rangeSeparator +
		`(?:(\d{1,2})/(\d{4})|(present|current|now))\b`)
)

var monthPrefixes = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

type yearMonth struct {
	year  int
	month time.Month
}

func (a yearMonth) monthsUntil(b yearMonth) int {
	return (b.year-a.year)*12 + int(b.month) - int(a.month)
}

// ExperienceMonths sums the months of every date range found in lines. An
// open range ends at now. Ranges ending before they start count as zero.
func ExperienceMonths(lines []string, now time.Time) int {
	total := 0
	for _, line := range lines {
		for _, r := range dateRanges(line, now) {
			if months := r[0].monthsUntil(r[1]); months > 0 {
				total += months
			}
		}
	}
	return total
}

// TotalExperience converts the summed ranges to years. It is always present:
// no parseable range means zero years.
func TotalExperience(lines []string, now time.Time) resume.Field[float64] {
	return resume.Present(resume.Years(ExperienceMonths(lines, now)))
}

func dateRanges(line string, now time.Time) [][2]yearMonth {
	current := yearMonth{year: now.Year(), month: now.Month()}

	var out [][2]yearMonth
	for _, m := range monthYearRange.FindAllStringSubmatch(line, -1) {
		start, ok := parseMonthYear(m[1], m[2])
		if !ok {
			continue
		}
		end := current
		if m[5] == "" {
			if end, ok = parseMonthYear(m[3], m[4]); !ok {
				continue
			}
		}
		out = append(out, [2]yearMonth{start, end})
	}

	for _, m := range numericRange.FindAllStringSubmatch(line, -1) {
		start, ok := parseNumericMonth(m[1], m[2])
		if !ok {
			continue
		}
		end := current
		if m[5] == "" {
			if end, ok = parseNumericMonth(m[3], m[4]); !ok {
				continue
			}
		}
		out = append(out, [2]yearMonth{start, end})
	}

	return out
}

func parseMonthYear(month, year string) (yearMonth, bool) {
	month = strings.ToLower(month)
	if len(month) < 3 {
		return yearMonth{}, false
	}
	m, ok := monthPrefixes[month[:3]]
	if !ok {
		return yearMonth{}, false
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return yearMonth{}, false
	}
	return yearMonth{year: y, month: m}, true
}

func parseNumericMonth(month, year string) (yearMonth, bool) {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return yearMonth{}, false
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return yearMonth{}, false
	}
	return yearMonth{year: y, month: time.Month(m)}, true
}
