package models

import (
	"fmt"
	"time"
)

// Record is the serialized form of a Session. Field order is the key order
// of the JSON object. NetProfit is derived and ignored when decoding.
type Record struct {
	StartTime  string   `json:"start_time" yaml:"start_time"`
	EndTime    *string  `json:"end_time" yaml:"end_time"`
	Location   string   `json:"location" yaml:"location"`
	Ship       string   `json:"ship" yaml:"ship"`
	Activities []string `json:"activities" yaml:"activities"`
	Earnings   float64  `json:"earnings" yaml:"earnings"`
	Expenses   float64  `json:"expenses" yaml:"expenses"`
	NetProfit  float64  `json:"net_profit" yaml:"net_profit"`
	Notes      string   `json:"notes" yaml:"notes"`
}

// recordLayouts are accepted when decoding. The naive forms are what
// journals written by other tools carry; they are read in local time.
var recordLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Record converts the session to its serialized form.
func (s *Session) Record() Record {
	activities := make([]string, len(s.Activities))
	copy(activities, s.Activities)

	r := Record{
		StartTime:  s.StartTime.Format(time.RFC3339Nano),
		Location:   s.Location,
		Ship:       s.Ship,
		Activities: activities,
		Earnings:   s.Earnings,
		Expenses:   s.Expenses,
		NetProfit:  s.NetProfit(),
		Notes:      s.Notes,
	}
	if s.EndTime != nil {
		end := s.EndTime.Format(time.RFC3339Nano)
		r.EndTime = &end
	}
	return r
}

// SessionFromRecord rebuilds a Session from its serialized form.
func SessionFromRecord(r Record) (*Session, error) {
	start, err := parseRecordTime(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("start_time: %w", err)
	}

	s := NewSession(start, r.Location, r.Ship)
	if r.EndTime != nil {
		end, err := parseRecordTime(*r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("end_time: %w", err)
		}
		s.EndTime = &end
	}
	s.Activities = append(s.Activities, r.Activities...)
	s.Earnings = r.Earnings
	s.Expenses = r.Expenses
	s.Notes = r.Notes
	return s, nil
}

func parseRecordTime(v string) (time.Time, error) {
	for _, layout := range recordLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", v)
}
