package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/neilberkman/scjournal/internal/core/format"
)

// NoShip is reported as the most used ship when no session names one.
const NoShip = "N/A"

// Journal is the ordered list of sessions. Order is the order sessions were
// added, which is not necessarily start time order.
type Journal struct {
	sessions []*Session
}

// Statistics are derived from the journal's sessions on every call.
type Statistics struct {
	TotalSessions int            `json:"total_sessions"`
	TotalPlaytime string         `json:"total_playtime"`
	MostUsedShip  string         `json:"most_used_ship"`
	ShipUsage     map[string]int `json:"ship_usage"`
}

type statisticsJSON Statistics

// MarshalJSON leaves out ship_usage for an empty journal only. A journal
// whose sessions name no ship reports an empty map.
func (s Statistics) MarshalJSON() ([]byte, error) {
	if s.TotalSessions == 0 {
		return json.Marshal(struct {
			TotalSessions int    `json:"total_sessions"`
			TotalPlaytime string `json:"total_playtime"`
			MostUsedShip  string `json:"most_used_ship"`
		}{s.TotalSessions, s.TotalPlaytime, s.MostUsedShip})
	}

	out := statisticsJSON(s)
	if out.ShipUsage == nil {
		out.ShipUsage = map[string]int{}
	}
	return json.Marshal(out)
}

// Totals are the journal wide money figures.
type Totals struct {
	Earnings  float64 `json:"earnings"`
	Expenses  float64 `json:"expenses"`
	NetProfit float64 `json:"net_profit"`
}

// NewJournal returns an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Add appends a session. Sessions in any state are accepted.
func (j *Journal) Add(s *Session) {
	j.sessions = append(j.sessions, s)
}

// Len returns the number of sessions.
func (j *Journal) Len() int {
	return len(j.sessions)
}

// At returns the i-th session in add order.
func (j *Journal) At(i int) *Session {
	return j.sessions[i]
}

// Sessions returns every session, or only the last limit of them in add
// order when limit is positive. A limit of zero or less means no limit.
// The slice is fresh; the sessions are shared with the journal.
func (j *Journal) Sessions(limit int) []*Session {
	list := j.sessions
	if limit > 0 && limit < len(list) {
		list = list[len(list)-limit:]
	}
	out := make([]*Session, len(list))
	copy(out, list)
	return out
}

// Statistics aggregates the journal.
//
// Only ended sessions contribute to playtime. Every session with a
// non-empty ship counts towards ship usage, finished or not. When two ships
// tie, the one whose count reached the maximum first wins.
func (j *Journal) Statistics() Statistics {
	if len(j.sessions) == 0 {
		return Statistics{
			TotalSessions: 0,
			TotalPlaytime: format.HM(0),
			MostUsedShip:  NoShip,
		}
	}

	var total time.Duration
	usage := make(map[string]int)
	mostUsed, best := NoShip, 0

	for _, s := range j.sessions {
		if d, ok := s.Elapsed(); ok {
			total += d
		}

		if s.Ship == "" {
			continue
		}
		usage[s.Ship]++
		if usage[s.Ship] > best {
			mostUsed, best = s.Ship, usage[s.Ship]
		}
	}

	return Statistics{
		TotalSessions: len(j.sessions),
		TotalPlaytime: format.HM(total),
		MostUsedShip:  mostUsed,
		ShipUsage:     usage,
	}
}

// Totals sums earnings and expenses over all sessions.
func (j *Journal) Totals() Totals {
	var t Totals
	for _, s := range j.sessions {
		t.Earnings += s.Earnings
		t.Expenses += s.Expenses
	}
	t.NetProfit = t.Earnings - t.Expenses
	return t
}

// Records serializes every session in add order.
func (j *Journal) Records() []Record {
	records := make([]Record, 0, len(j.sessions))
	for _, s := range j.sessions {
		records = append(records, s.Record())
	}
	return records
}

// JournalFromRecords rebuilds a journal from serialized sessions.
func JournalFromRecords(records []Record) (*Journal, error) {
	j := NewJournal()
	for i, r := range records {
		s, err := SessionFromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("session %d: %w", i, err)
		}
		j.Add(s)
	}
	return j, nil
}

// SaveToFile writes the journal as a JSON array of session records.
func (j *Journal) SaveToFile(path string) error {
	return format.SaveJSON(path, j.Records())
}

// LoadFromFile replaces the journal's sessions with those in path. On error
// the journal is left unchanged.
func (j *Journal) LoadFromFile(path string) error {
	var records []Record
	if err := format.LoadJSON(path, &records); err != nil {
		return err
	}
	loaded, err := JournalFromRecords(records)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	j.sessions = loaded.sessions
	return nil
}
