package interval

import (
	"fmt"
	"time"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
)

// Selection is the interval picker state of a report screen.
type Selection struct {
	granularity domain.Granularity
	date        time.Time
	week        *time.Time
}

func NewSelection(g domain.Granularity, date time.Time) *Selection {
	return &Selection{granularity: g, date: dateOf(date)}
}

func (s *Selection) Granularity() domain.Granularity {
	return s.granularity
}

func (s *Selection) Date() time.Time {
	return s.date
}

// Week returns the resolved week, if one was picked.
func (s *Selection) Week() (time.Time, bool) {
	if s.week == nil {
		return time.Time{}, false
	}
	return *s.week, true
}

// SetGranularity switches the interval and drops any picked week.
func (s *Selection) SetGranularity(g domain.Granularity) {
	s.granularity = g
	s.week = nil
}

func (s *Selection) SetDate(date time.Time) {
	s.date = dateOf(date)
}

// SelectWeek picks one of the candidates returned by Weeks.
func (s *Selection) SelectWeek(start time.Time) error {
	start = dateOf(start)
	for _, w := range s.Weeks() {
		if w.Equal(start) {
			s.week = &w
			return nil
		}
	}
	return fmt.Errorf("%w: %s is not a week of %s", domain.ErrInvalidInterval, Format(start), s.date.Format("January 2006"))
}

// SelectWeekIndex picks the n-th (1-based) week candidate.
func (s *Selection) SelectWeekIndex(n int) error {
	weeks := s.Weeks()
	if n < 1 || n > len(weeks) {
		return fmt.Errorf("%w: week %d of %d", domain.ErrInvalidInterval, n, len(weeks))
	}
	w := weeks[n-1]
	s.week = &w
	return nil
}

func (s *Selection) Weeks() []time.Time {
	return WeeksInMonth(s.date)
}

func (s *Selection) CanonicalDate() (string, error) {
	return CanonicalDate(s.granularity, s.date, s.week)
}

func (s *Selection) Heading() string {
	return Heading(s.granularity)
}
