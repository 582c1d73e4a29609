package models

import (
	"fmt"
	"time"

	"github.com/neilberkman/scjournal/internal/core/format"
)

// now is the clock used when a session is ended without an explicit time.
var now = time.Now

// Session is one play session: when it ran, where, in which ship, what
// happened and how much was earned and spent. A nil EndTime means the
// session is still in progress.
type Session struct {
	StartTime  time.Time
	EndTime    *time.Time
	Location   string
	Ship       string
	Activities []string
	Earnings   float64
	Expenses   float64
	Notes      string
}

// NewSession starts a session. Nothing is validated; use
// format.ValidateShipName and format.ValidateLocation at the boundary.
func NewSession(start time.Time, location, ship string) *Session {
	return &Session{
		StartTime:  start,
		Location:   location,
		Ship:       ship,
		Activities: []string{},
	}
}

// End marks the session finished at at, or now when at is zero. Calling End
// again overwrites the previous end time.
func (s *Session) End(at time.Time) {
	if at.IsZero() {
		at = now()
	}
	s.EndTime = &at
}

// InProgress reports whether the session has not been ended.
func (s *Session) InProgress() bool {
	return s.EndTime == nil
}

// AddActivity appends an entry to the activity log.
func (s *Session) AddActivity(activity string) {
	s.Activities = append(s.Activities, activity)
}

// AddEarnings adds amount to the running earnings. A non-empty description
// is also logged as an activity. Negative amounts are accepted as-is.
func (s *Session) AddEarnings(amount float64, description string) {
	s.Earnings += amount
	if description != "" {
		s.AddActivity(fmt.Sprintf("Earned %s %s: %s", format.Amount(amount), format.CurrencyUnit, description))
	}
}

// AddExpense adds amount to the running expenses. A non-empty description
// is also logged as an activity.
func (s *Session) AddExpense(amount float64, description string) {
	s.Expenses += amount
	if description != "" {
		s.AddActivity(fmt.Sprintf("Spent %s %s: %s", format.Amount(amount), format.CurrencyUnit, description))
	}
}

// NetProfit returns earnings minus expenses.
func (s *Session) NetProfit() float64 {
	return s.Earnings - s.Expenses
}

// Elapsed returns the time between start and end. ok is false while the
// session is in progress. An end before the start yields a negative value.
func (s *Session) Elapsed() (d time.Duration, ok bool) {
	if s.EndTime == nil {
		return 0, false
	}
	return s.EndTime.Sub(s.StartTime), true
}

// Duration returns the elapsed time as "{H}h {M}m", or ok=false while the
// session is in progress.
func (s *Session) Duration() (string, bool) {
	d, ok := s.Elapsed()
	if !ok {
		return "", false
	}
	return format.HM(d), true
}

// DescribeShort is the one-line summary used by session listings.
func (s *Session) DescribeShort() string {
	duration, ok := s.Duration()
	if !ok {
		duration = "In progress"
	}
	return fmt.Sprintf("Session on %s (%s) - %s at %s",
		s.StartTime.Format("2006-01-02 15:04"), duration, s.Ship, s.Location)
}

func (s *Session) String() string {
	return s.DescribeShort()
}

// GoString is the developer representation used by %#v.
func (s *Session) GoString() string {
	return fmt.Sprintf("Session(start=%s, ship=%s, location=%s)",
		s.StartTime.Format("2006-01-02 15:04:05.999999999"), s.Ship, s.Location)
}
