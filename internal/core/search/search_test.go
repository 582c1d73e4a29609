package search

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/neilberkman/scjournal/internal/core/db"
	"github.com/neilberkman/scjournal/internal/core/models"
)

var base = time.Date(2025, 5, 1, 19, 0, 0, 0, time.UTC)

func setupDB(t *testing.T) *db.DB {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(tmpfile.Name()) })
	_ = tmpfile.Close()

	database, err := db.New(tmpfile.Name())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	older := models.NewSession(base, "Lorville", "Cutlass Black")
	older.AddActivity("Bounty hunting around Hurston")
	older.AddEarnings(15000, "VLRT bounty")
	older.AddActivity("Ran into a pirate-infested station")

	newer := models.NewSession(base.Add(48*time.Hour), "New Babbage", "Prospector")
	newer.AddActivity("Mining quantanium on Daymar")
	newer.AddActivity("Another bounty, this time at microTech")

	for _, s := range []*models.Session{older, newer} {
		if _, err := database.InsertSession(s); err != nil {
			t.Fatalf("Failed to insert session: %v", err)
		}
	}
	return database
}

func TestActivities(t *testing.T) {
	database := setupDB(t)

	tests := []struct {
		name      string
		query     string
		wantCount int
		wantFirst string
	}{
		{"single word", "bounty", 3, "Prospector"},
		{"stemmed", "mine", 1, "Prospector"},
		{"phrase", `"Bounty hunting"`, 1, "Cutlass Black"},
		{"currency line", "aUEC", 1, "Cutlass Black"},
		{"hyphen falls back to LIKE", "pirate-infested", 1, "Cutlass Black"},
		{"no match", "salvage", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := Activities(database, tt.query, 0)
			if err != nil {
				t.Fatalf("Activities(%q) error = %v", tt.query, err)
			}
			if len(results) != tt.wantCount {
				t.Fatalf("Activities(%q) = %d results, want %d", tt.query, len(results), tt.wantCount)
			}
			if tt.wantCount > 0 && results[0].Ship != tt.wantFirst {
				t.Errorf("first result ship = %s, want %s", results[0].Ship, tt.wantFirst)
			}
		})
	}
}

func TestActivitiesResultFields(t *testing.T) {
	database := setupDB(t)

	results, err := Activities(database, "quantanium", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	r := results[0]
	if r.SessionID == "" {
		t.Error("expected session ID")
	}
	if r.Location != "New Babbage" {
		t.Errorf("Location = %s", r.Location)
	}
	if r.StartTime != "2025-05-03T19:00:00Z" {
		t.Errorf("StartTime = %s", r.StartTime)
	}
	if !strings.Contains(strings.ToLower(r.ActivityText), "quantanium") {
		t.Errorf("ActivityText = %s", r.ActivityText)
	}
}

func TestActivitiesLimit(t *testing.T) {
	database := setupDB(t)

	results, err := Activities(database, "bounty", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Errorf("expected limit to cap results at 1, got %d", len(results))
	}
}

func TestWithOptions(t *testing.T) {
	database := setupDB(t)

	results, err := WithOptions(database, "bounty", Options{Ship: "cutlass"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("ship filter: expected 2 results, got %d", len(results))
	}

	results, err = WithOptions(database, "bounty", Options{Since: base.Add(24 * time.Hour)})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Ship != "Prospector" {
		t.Errorf("since filter: got %+v", results)
	}

	results, err = WithOptions(database, "bounty", Options{Location: "Lorville", Since: base.Add(24 * time.Hour)})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("combined filters: expected 0 results, got %d", len(results))
	}
}

func TestActivitiesEmptyQuery(t *testing.T) {
	database := setupDB(t)

	if _, err := Activities(database, "   ", 10); err == nil {
		t.Error("expected error for empty query")
	}
}
