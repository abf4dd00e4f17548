package daybook

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rmaia/daybook/date"
)

// Date is the day-granularity date type used as the identity of a daily
// record throughout the journal.
type Date = date.Date

// Today returns the current date.
func Today() Date { return date.Today() }

// NewDate returns a normalized Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date { return date.New(year, month, day) }

var (
	relativeDateRE = regexp.MustCompile(`^([+-])(\d+)([dwmy])$`)
	monthDayDateRE = regexp.MustCompile(`^(?:(\d+)-)?(\d+)$`)
)

// ParseDate parses a Date from a string. On top of the canonical
// "YYYY-MM-DD" form it accepts convenient shorthands for command-line use:
//
//	"0d"        today
//	"-2d" "+1w" relative to today (days, weeks, months, years)
//	"27"        the 27th of the current month
//	"8-27"      August 27th of the current year
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)

	if str == "0d" {
		return Today(), nil
	}

	if match := relativeDateRE.FindStringSubmatch(str); match != nil {
		num, err := strconv.Atoi(match[2])
		if err != nil {
			return Date{}, fmt.Errorf("invalid number in relative date %q: %w", str, err)
		}
		if match[1] == "-" {
			num = -num
		}
		today := Today()
		switch match[3] {
		case "d":
			return today.Add(num), nil
		case "w":
			return today.Add(num * 7), nil
		case "m":
			return NewDate(today.Year(), today.Month()+time.Month(num), today.Day()), nil
		case "y":
			return NewDate(today.Year()+num, today.Month(), today.Day()), nil
		}
	}

	if match := monthDayDateRE.FindStringSubmatch(str); match != nil {
		day, err := strconv.Atoi(match[2])
		if err != nil {
			return Date{}, fmt.Errorf("invalid day in date %q: %w", str, err)
		}
		today := Today()
		year, month := today.Year(), today.Month()
		if match[1] != "" {
			m, err := strconv.Atoi(match[1])
			if err != nil {
				return Date{}, fmt.Errorf("invalid month in date %q: %w", str, err)
			}
			month = time.Month(m)
		}
		return NewDate(year, month, day), nil
	}

	return date.Parse(str)
}

// MustParseDate is like ParseDate but panics on error. For tests and constants.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}
