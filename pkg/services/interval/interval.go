package interval

import (
	"fmt"
	"strings"
	"time"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
)

// MaxWeeks bounds the week candidates offered for a month.
const MaxWeeks = 5

func ParseGranularity(s string) (domain.Granularity, error) {
	switch g := domain.Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case domain.Day, domain.Week, domain.Month:
		return g, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidInterval, s)
	}
}

// ParseDate reads a yyyy-MM-dd date as a local wall-clock date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

func Format(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// Heading is the report title used on screen and in export filenames.
func Heading(g domain.Granularity) string {
	switch g {
	case domain.Day:
		return "Daily Report"
	case domain.Week:
		return "Weekly Report"
	case domain.Month:
		return "Monthly Report"
	default:
		return "Billing Report"
	}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekStart returns the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return dateOf(t).AddDate(0, 0, -offset)
}

func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// WeeksInMonth lists the Mondays that fall inside the calendar month of ref.
func WeeksInMonth(ref time.Time) []time.Time {
	first := MonthStart(ref)
	monday := WeekStart(first)
	if monday.Before(first) {
		monday = monday.AddDate(0, 0, 7)
	}

	weeks := make([]time.Time, 0, MaxWeeks)
	for d := monday; d.Month() == first.Month() && len(weeks) < MaxWeeks; d = d.AddDate(0, 0, 7) {
		weeks = append(weeks, d)
	}
	return weeks
}

// CanonicalDate maps a granularity and reference date to the query date.
// A non-nil week overrides the default week start for week granularity.
func CanonicalDate(g domain.Granularity, ref time.Time, week *time.Time) (string, error) {
	switch g {
	case domain.Day:
		return Format(ref), nil
	case domain.Week:
		if week != nil {
			return Format(*week), nil
		}
		return Format(WeekStart(ref)), nil
	case domain.Month:
		return Format(MonthStart(ref)), nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidInterval, g)
	}
}
