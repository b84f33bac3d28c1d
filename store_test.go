package main

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := openStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordVisitAndStats(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	visits := []struct {
		ip, path string
		at       time.Time
	}{
		{"aaaa", "/", now},
		{"aaaa", "/work-content", now},
		{"bbbb", "/", now.Add(-3 * 24 * time.Hour)},
		{"cccc", "/", now.Add(-30 * 24 * time.Hour)},
	}
	for _, v := range visits {
		if err := s.RecordVisit(v.ip, "test-agent", v.path, v.at); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}

	stats, err := s.AdminStats()
	if err != nil {
		t.Fatalf("AdminStats: %v", err)
	}
	if stats.TotalVisitors != 4 {
		t.Errorf("TotalVisitors: got %d, want 4", stats.TotalVisitors)
	}
	if stats.UniqueVisitors != 3 {
		t.Errorf("UniqueVisitors: got %d, want 3", stats.UniqueVisitors)
	}
	if stats.VisitorsThisWeek != 3 {
		t.Errorf("VisitorsThisWeek: got %d, want 3", stats.VisitorsThisWeek)
	}
	if stats.VisitorsToday < 1 || stats.VisitorsToday > 2 {
		t.Errorf("VisitorsToday: got %d, want 1-2", stats.VisitorsToday)
	}
	if len(stats.TopPaths) == 0 || stats.TopPaths[0].Path != "/" || stats.TopPaths[0].Visits != 3 {
		t.Errorf("TopPaths: got %+v", stats.TopPaths)
	}
	if len(stats.RecentVisitors) != 4 {
		t.Fatalf("RecentVisitors: got %d, want 4", len(stats.RecentVisitors))
	}
	if got := stats.RecentVisitors[len(stats.RecentVisitors)-1]; got.HashedIP != "cccc" || got.Timestamp.IsZero() {
		t.Errorf("oldest visitor: got %+v", got)
	}
}

func TestStore_CleanupOldVisits(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	s.RecordVisit("old", "", "/", now.Add(-400*24*time.Hour))
	s.RecordVisit("new", "", "/", now)

	n, err := s.CleanupOldVisits(365 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("CleanupOldVisits: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d rows, want 1", n)
	}
	visitors, _ := s.RecentVisitors(10)
	if len(visitors) != 1 || visitors[0].HashedIP != "new" {
		t.Errorf("remaining visitors: %+v", visitors)
	}
}

func TestStore_Messages(t *testing.T) {
	s := newTestStore(t)

	id, err := s.SaveMessage("Ada", "ada@example.com", "hello", time.Now())
	if err != nil {
		t.Fatalf("SaveMessage: %v", err)
	}
	if _, err := s.SaveMessage("Bob", "bob@example.com", "hi", time.Now()); err != nil {
		t.Fatalf("SaveMessage: %v", err)
	}
	if err := s.MarkDelivered(id); err != nil {
		t.Fatalf("MarkDelivered: %v", err)
	}

	stats, err := s.AdminStats()
	if err != nil {
		t.Fatalf("AdminStats: %v", err)
	}
	if stats.TotalMessages != 2 || stats.UndeliveredMessages != 1 {
		t.Errorf("messages: got %d total, %d undelivered", stats.TotalMessages, stats.UndeliveredMessages)
	}

	msgs, err := s.Messages(10)
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	var ada ContactMessage
	for _, m := range msgs {
		if m.ID == int(id) {
			ada = m
		}
	}
	if !ada.Delivered || ada.Body != "hello" || ada.CreatedAt.IsZero() {
		t.Errorf("saved message: got %+v", ada)
	}

	if err := s.DeleteMessage(id); err != nil {
		t.Fatalf("DeleteMessage: %v", err)
	}
	if err := s.DeleteMessage(id); !errors.Is(err, errMessageNotFound) {
		t.Errorf("second DeleteMessage: got %v, want errMessageNotFound", err)
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	for _, s := range []string{"2026-03-01 12:30:00", "2026-03-01T12:30:00Z"} {
		if got := parseTimestamp(s); !got.Equal(want) {
			t.Errorf("parseTimestamp(%q) = %v, want %v", s, got, want)
		}
	}
	if !parseTimestamp("garbage").IsZero() {
		t.Error("garbage parsed")
	}
}
