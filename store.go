package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02 15:04:05"

var errMessageNotFound = errors.New("message not found")

// Privacy-conscious visitor tracking record
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"` // Hashed instead of raw IP for privacy
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// ContactMessage is a contact form submission.
type ContactMessage struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Delivered bool      `json:"delivered"`
}

type PathStat struct {
	Path   string `json:"path"`
	Visits int64  `json:"visits"`
}

type AdminStats struct {
	TotalVisitors       int64            `json:"total_visitors"`
	UniqueVisitors      int64            `json:"unique_visitors"`
	VisitorsToday       int64            `json:"visitors_today"`
	VisitorsThisWeek    int64            `json:"visitors_this_week"`
	TotalMessages       int64            `json:"total_messages"`
	UndeliveredMessages int64            `json:"undelivered_messages"`
	TopPaths            []PathStat       `json:"top_paths"`
	RecentVisitors      []VisitorMetric  `json:"recent_visitors"`
	RecentMessages      []ContactMessage `json:"recent_messages"`
}

// Store is the sqlite database behind visitor tracking and the contact form.
type Store struct {
	db *sql.DB
}

func openStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// sqlite allows one writer at a time
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,  -- Store hashed IP instead of raw IP
			user_agent TEXT,
			path TEXT,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors (timestamp)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			delivered INTEGER NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}
	return nil
}

func (s *Store) RecordVisit(hashedIP, userAgent, path string, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, hashedIP, userAgent, path, at.UTC().Format(timeLayout))
	return err
}

// CleanupOldVisits deletes visitor records older than retention.
func (s *Store) CleanupOldVisits(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).UTC().Format(timeLayout)
	result, err := s.db.Exec(`DELETE FROM visitors WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *Store) RecentVisitors(limit int) ([]VisitorMetric, error) {
	rows, err := s.db.Query(`
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		var ts string
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, err
		}
		v.Timestamp = parseTimestamp(ts)
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

func (s *Store) SaveMessage(name, email, body string, at time.Time) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO messages (name, email, body, created_at)
		VALUES (?, ?, ?, ?)
	`, name, email, body, at.UTC().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *Store) MarkDelivered(id int64) error {
	_, err := s.db.Exec(`UPDATE messages SET delivered = 1 WHERE id = ?`, id)
	return err
}

func (s *Store) Messages(limit int) ([]ContactMessage, error) {
	rows, err := s.db.Query(`
		SELECT id, name, email, body, created_at, delivered
		FROM messages
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []ContactMessage
	for rows.Next() {
		var m ContactMessage
		var ts string
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &ts, &m.Delivered); err != nil {
			return nil, err
		}
		m.CreatedAt = parseTimestamp(ts)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *Store) DeleteMessage(id int64) error {
	result, err := s.db.Exec(`DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errMessageNotFound
	}
	return nil
}

// AdminStats gathers the dashboard numbers.
func (s *Store) AdminStats() (*AdminStats, error) {
	stats := &AdminStats{}
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour).Format(timeLayout)
	weekAgo := now.Add(-7 * 24 * time.Hour).Format(timeLayout)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{today}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{weekAgo}},
		{&stats.TotalMessages, `SELECT COUNT(*) FROM messages`, nil},
		{&stats.UndeliveredMessages, `SELECT COUNT(*) FROM messages WHERE delivered = 0`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("admin stats: %w", err)
		}
	}

	rows, err := s.db.Query(`
		SELECT COALESCE(path, ''), COUNT(*) AS visits
		FROM visitors
		GROUP BY path
		ORDER BY visits DESC, path
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p PathStat
		if err := rows.Scan(&p.Path, &p.Visits); err != nil {
			return nil, fmt.Errorf("admin stats: %w", err)
		}
		stats.TopPaths = append(stats.TopPaths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}

	if stats.RecentVisitors, err = s.RecentVisitors(50); err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}
	if stats.RecentMessages, err = s.Messages(10); err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}
	return stats, nil
}

// parseTimestamp reads the stored layout; rows written by sqlite's own
// CURRENT_TIMESTAMP default use the same layout.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{timeLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
