package calendar

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strings"
	"time"
)

// dateLayout is the wire format for holiday dates.
const dateLayout = "2006-01-02"

// Calendar computes business-day arithmetic against an injected
// public-holiday set. The zero value is not usable; build one with New.
type Calendar struct {
	holidays map[string]struct{}
}

// New creates a Calendar from a list of YYYY-MM-DD holiday dates.
// Malformed entries are rejected so a bad holiday file fails loudly
// instead of silently miscounting business days.
func New(holidays []string) (*Calendar, error) {
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, h); err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", h, err)
		}
		set[h] = struct{}{}
	}
	return &Calendar{holidays: set}, nil
}

// LoadFile reads a newline-separated holiday file and builds a Calendar.
// Blank lines and lines starting with '#' are skipped.
func LoadFile(path string) (*Calendar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open holidays file: %w", err)
	}
	defer f.Close()

	var dates []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		dates = append(dates, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read holidays file: %w", err)
	}

	return New(dates)
}

// IsBusinessDay reports whether the date is a weekday that is not a holiday.
func (c *Calendar) IsBusinessDay(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := c.holidays[date.Format(dateLayout)]
	return !holiday
}

// BusinessDaysBetween counts business days strictly after start up to
// and including end. Both times are truncated to midnight before the
// walk; start >= end yields 0.
func (c *Calendar) BusinessDaysBetween(start, end time.Time) int {
	cursor := truncateToDay(start)
	last := truncateToDay(end)

	count := 0
	for cursor.Before(last) {
		cursor = cursor.AddDate(0, 0, 1)
		if c.IsBusinessDay(cursor) {
			count++
		}
	}
	return count
}

// DaysBetween returns the calendar-day distance between two instants,
// rounded up. The result is symmetric and never negative.
func DaysBetween(a, b time.Time) int {
	diff := b.Sub(a)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// truncateToDay zeroes the time-of-day component, keeping the location.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
