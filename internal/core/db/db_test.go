package db

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/neilberkman/scjournal/internal/core/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(tmpfile.Name()) })
	_ = tmpfile.Close()

	database, err := New(tmpfile.Name())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

var base = time.Date(2025, 5, 1, 19, 0, 0, 0, time.UTC)

func endedSession(ship, location string, start time.Time, d time.Duration) *models.Session {
	s := models.NewSession(start, location, ship)
	s.End(start.Add(d))
	return s
}

func TestNew(t *testing.T) {
	database := newTestDB(t)

	var count int
	err := database.conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query schema: %v", err)
	}

	// Should have: sessions, activities, import_log, activities_fts (+ shadow tables)
	if count < 4 {
		t.Errorf("Expected at least 4 tables, got %d", count)
	}
}

func TestNew_WALMode(t *testing.T) {
	database := newTestDB(t)

	var journalMode string
	err := database.conn.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}

	if journalMode != "wal" {
		t.Errorf("Expected WAL mode, got %s", journalMode)
	}
}

func TestInsertAndGetSession(t *testing.T) {
	database := newTestDB(t)

	s := endedSession("Cutlass Black", "Lorville", base, 90*time.Minute)
	s.AddActivity("Bounty hunting")
	s.AddEarnings(15000, "VLRT contract")
	s.AddExpense(1200, "")
	s.Notes = "good run"

	sessionID, err := database.InsertSession(s)
	if err != nil {
		t.Fatalf("InsertSession() error = %v", err)
	}

	got, err := database.GetSession(sessionID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}

	if got.ID != sessionID {
		t.Errorf("ID = %s, want %s", got.ID, sessionID)
	}
	if !got.Session.StartTime.Equal(s.StartTime) {
		t.Errorf("StartTime = %v, want %v", got.Session.StartTime, s.StartTime)
	}
	if got.Session.EndTime == nil || !got.Session.EndTime.Equal(*s.EndTime) {
		t.Errorf("EndTime = %v, want %v", got.Session.EndTime, s.EndTime)
	}
	if got.Session.Ship != "Cutlass Black" || got.Session.Location != "Lorville" {
		t.Errorf("ship/location = %q/%q", got.Session.Ship, got.Session.Location)
	}
	if got.Session.Earnings != 15000 || got.Session.Expenses != 1200 {
		t.Errorf("earnings/expenses = %v/%v", got.Session.Earnings, got.Session.Expenses)
	}
	if got.Session.Notes != "good run" {
		t.Errorf("Notes = %q", got.Session.Notes)
	}

	want := []string{"Bounty hunting", "Earned 15000.0 aUEC: VLRT contract"}
	if len(got.Session.Activities) != len(want) {
		t.Fatalf("Activities = %v, want %v", got.Session.Activities, want)
	}
	for i := range want {
		if got.Session.Activities[i] != want[i] {
			t.Errorf("Activities[%d] = %q, want %q", i, got.Session.Activities[i], want[i])
		}
	}
}

func TestGetSessionByPrefix(t *testing.T) {
	database := newTestDB(t)

	first, err := database.InsertSession(models.NewSession(base, "Area18", "Freelancer"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := database.InsertSession(models.NewSession(base, "Area18", "Cutlass"))
	if err != nil {
		t.Fatal(err)
	}

	// IDs minted together share their leading timestamp characters
	_, err = database.GetSession(first[:2])
	if !errors.Is(err, ErrAmbiguousID) {
		t.Errorf("GetSession(short prefix) error = %v, want ErrAmbiguousID", err)
	}

	got, err := database.GetSession(second)
	if err != nil {
		t.Fatalf("GetSession(full) error = %v", err)
	}
	if got.Session.Ship != "Cutlass" {
		t.Errorf("Ship = %q, want Cutlass", got.Session.Ship)
	}

	// Lower case works too
	if _, err := database.GetSession(strings.ToLower(first)); err != nil {
		t.Errorf("GetSession(lower) error = %v", err)
	}

	_, err = database.GetSession("ZZZZZZ")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSession(missing) error = %v, want ErrNotFound", err)
	}

	_, err = database.GetSession("  ")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSession(blank) error = %v, want ErrNotFound", err)
	}
}

func TestGetSessionWildcardsAreLiteral(t *testing.T) {
	database := newTestDB(t)

	sessionID, err := database.InsertSession(models.NewSession(base, "Lorville", "Cutlass"))
	if err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"%", "_", "0_", sessionID[:1] + "%"} {
		if _, err := database.GetSession(key); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetSession(%q) error = %v, want ErrNotFound", key, err)
		}
	}

	if _, err := database.GetSession(sessionID[:4]); err != nil {
		t.Errorf("GetSession(prefix) error = %v", err)
	}
}

func TestUpdateSession(t *testing.T) {
	database := newTestDB(t)

	s := models.NewSession(base, "Port Olisar", "Prospector")
	s.AddActivity("Mining")
	sessionID, err := database.InsertSession(s)
	if err != nil {
		t.Fatal(err)
	}

	s.AddEarnings(42000, "Quantanium")
	s.End(base.Add(2 * time.Hour))
	if err := database.UpdateSession(sessionID, s); err != nil {
		t.Fatalf("UpdateSession() error = %v", err)
	}

	got, err := database.GetSession(sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Session.InProgress() {
		t.Error("expected session to be ended")
	}
	if len(got.Session.Activities) != 2 {
		t.Errorf("Activities = %v", got.Session.Activities)
	}
	if got.Session.Earnings != 42000 {
		t.Errorf("Earnings = %v", got.Session.Earnings)
	}

	err = database.UpdateSession("01NOPE", s)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateSession(missing) error = %v, want ErrNotFound", err)
	}
}

func TestLatestOpenSession(t *testing.T) {
	database := newTestDB(t)

	if _, err := database.LatestOpenSession(); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty store error = %v, want ErrNotFound", err)
	}

	openID, err := database.InsertSession(models.NewSession(base, "Lorville", "Cutlass"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := database.InsertSession(endedSession("Titan", "Area18", base, time.Hour)); err != nil {
		t.Fatal(err)
	}

	got, err := database.LatestOpenSession()
	if err != nil {
		t.Fatalf("LatestOpenSession() error = %v", err)
	}
	if got.ID != openID {
		t.Errorf("LatestOpenSession() = %s, want %s", got.ID, openID)
	}
}

func TestListSessionsOrderAndLimit(t *testing.T) {
	database := newTestDB(t)

	// Inserted out of start-time order on purpose
	ships := []string{"A", "B", "C", "D", "E"}
	for i, ship := range ships {
		start := base.Add(time.Duration(len(ships)-i) * time.Hour)
		if _, err := database.InsertSession(models.NewSession(start, "Lorville", ship)); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		limit int
		want  []string
	}{
		{0, ships},
		{-1, ships},
		{2, []string{"D", "E"}},
		{5, ships},
		{10, ships},
	}

	for _, tt := range tests {
		got, err := database.ListSessions(tt.limit)
		if err != nil {
			t.Fatalf("ListSessions(%d) error = %v", tt.limit, err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("ListSessions(%d) returned %d sessions, want %d", tt.limit, len(got), len(tt.want))
		}
		for i := range tt.want {
			if got[i].Session.Ship != tt.want[i] {
				t.Errorf("ListSessions(%d)[%d] = %s, want %s", tt.limit, i, got[i].Session.Ship, tt.want[i])
			}
		}
	}
}

func TestLoadJournalStatistics(t *testing.T) {
	database := newTestDB(t)

	for _, s := range []*models.Session{
		endedSession("Cutlass", "Lorville", base, 90*time.Minute),
		endedSession("Cutlass", "Area18", base.Add(24*time.Hour), 45*time.Minute),
		models.NewSession(base.Add(48*time.Hour), "Area18", "Freelancer"),
	} {
		if _, err := database.InsertSession(s); err != nil {
			t.Fatal(err)
		}
	}

	journal, err := database.LoadJournal()
	if err != nil {
		t.Fatalf("LoadJournal() error = %v", err)
	}

	stats := journal.Statistics()
	if stats.TotalSessions != 3 {
		t.Errorf("TotalSessions = %d, want 3", stats.TotalSessions)
	}
	if stats.TotalPlaytime != "2h 15m" {
		t.Errorf("TotalPlaytime = %s, want 2h 15m", stats.TotalPlaytime)
	}
	if stats.MostUsedShip != "Cutlass" {
		t.Errorf("MostUsedShip = %s, want Cutlass", stats.MostUsedShip)
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	database := newTestDB(t)

	s := models.NewSession(base, "Lorville", "Cutlass")
	s.AddActivity("Cargo run to Hurston")
	sessionID, err := database.InsertSession(s)
	if err != nil {
		t.Fatal(err)
	}

	if err := database.DeleteSession(sessionID); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}

	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM activities").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("Expected activities to cascade, got %d", count)
	}

	if err := database.DeleteSession(sessionID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestGetStats(t *testing.T) {
	database := newTestDB(t)

	stats, err := database.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.TotalSessions != 0 || !stats.OldestSession.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	a := endedSession("Cutlass", "Lorville", base.Add(2*time.Hour), time.Hour)
	a.AddEarnings(1000, "Delivery")
	b := models.NewSession(base, "Lorville", "Titan")
	b.AddExpense(250, "Fuel")
	c := models.NewSession(base.Add(time.Hour), "Area18", "Titan")
	for _, s := range []*models.Session{a, b, c} {
		if _, err := database.InsertSession(s); err != nil {
			t.Fatal(err)
		}
	}

	stats, err = database.GetStats()
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.TotalSessions != 3 || stats.OpenSessions != 2 {
		t.Errorf("sessions = %d open = %d", stats.TotalSessions, stats.OpenSessions)
	}
	if stats.TotalActivities != 2 {
		t.Errorf("TotalActivities = %d, want 2", stats.TotalActivities)
	}
	if stats.TotalEarnings != 1000 || stats.TotalExpenses != 250 {
		t.Errorf("earnings/expenses = %v/%v", stats.TotalEarnings, stats.TotalExpenses)
	}
	if !stats.OldestSession.Equal(base) || !stats.NewestSession.Equal(base.Add(2*time.Hour)) {
		t.Errorf("range = %v .. %v", stats.OldestSession, stats.NewestSession)
	}
	if stats.MostVisitedLocation != "Lorville" || stats.MostVisitedCount != 2 {
		t.Errorf("most visited = %s (%d)", stats.MostVisitedLocation, stats.MostVisitedCount)
	}
}
