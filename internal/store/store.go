// Package store keeps the site's privacy-conscious analytics in SQLite:
// hashed visitor records, outbound link clicks and the topics visitors ask
// the assistant about. Chat text is never stored.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Timestamps are stored as Unix milliseconds.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return newStore(db)
}

// OpenMemory creates an in-memory database (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every pooled connection would get its own empty :memory: database.
	db.SetMaxOpenConns(1)
	return newStore(db)
}

func newStore(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);

CREATE TABLE IF NOT EXISTS link_clicks (
	name TEXT PRIMARY KEY,
	target TEXT NOT NULL,
	clicks INTEGER NOT NULL DEFAULT 0,
	last_click INTEGER
);

CREATE TABLE IF NOT EXISTS chat_topics (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	rule TEXT NOT NULL,
	timestamp INTEGER NOT NULL
);
`

type Visitor struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type LinkStat struct {
	Name      string     `json:"name"`
	Target    string     `json:"target"`
	Clicks    int64      `json:"clicks"`
	LastClick *time.Time `json:"last_click,omitempty"`
}

type TopicStat struct {
	Rule  string `json:"rule"`
	Count int64  `json:"count"`
}

type Stats struct {
	TotalVisitors    int64       `json:"total_visitors"`
	UniqueVisitors   int64       `json:"unique_visitors"`
	VisitorsToday    int64       `json:"visitors_today"`
	VisitorsThisWeek int64       `json:"visitors_this_week"`
	TotalClicks      int64       `json:"total_clicks"`
	TotalQuestions   int64       `json:"total_questions"`
	TopLinks         []LinkStat  `json:"top_links"`
	TopTopics        []TopicStat `json:"top_topics"`
	RecentVisitors   []Visitor   `json:"recent_visitors"`
}

func (s *Store) RecordVisit(hashedIP, userAgent, path string, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, hashedIP, userAgent, path, at.UnixMilli())
	if err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	return nil
}

func (s *Store) RecordClick(name, target string, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO link_clicks (name, target, clicks, last_click)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(name) DO UPDATE SET
			target = excluded.target,
			clicks = clicks + 1,
			last_click = excluded.last_click
	`, name, target, at.UnixMilli())
	if err != nil {
		return fmt.Errorf("recording click on %s: %w", name, err)
	}
	return nil
}

// RecordTopic counts one answered question under the rule that matched it.
func (s *Store) RecordTopic(rule string, at time.Time) error {
	_, err := s.db.Exec(`INSERT INTO chat_topics (rule, timestamp) VALUES (?, ?)`, rule, at.UnixMilli())
	if err != nil {
		return fmt.Errorf("recording topic %s: %w", rule, err)
	}
	return nil
}

// CleanupVisitors deletes visitor records older than the cutoff and returns
// how many were removed.
func (s *Store) CleanupVisitors(olderThan time.Time) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM visitors WHERE timestamp < ?`, olderThan.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("cleaning up visitors: %w", err)
	}
	return result.RowsAffected()
}

func (s *Store) RecentVisitors(limit int) ([]Visitor, error) {
	rows, err := s.db.Query(`
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying visitors: %w", err)
	}
	defer rows.Close()

	var visitors []Visitor
	for rows.Next() {
		var v Visitor
		var ts int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scanning visitor: %w", err)
		}
		v.Timestamp = time.UnixMilli(ts).UTC()
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

func (s *Store) Links() ([]LinkStat, error) {
	return s.links(-1)
}

func (s *Store) links(limit int) ([]LinkStat, error) {
	rows, err := s.db.Query(`
		SELECT name, target, clicks, last_click
		FROM link_clicks
		ORDER BY clicks DESC, name
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying links: %w", err)
	}
	defer rows.Close()

	var links []LinkStat
	for rows.Next() {
		var l LinkStat
		var last sql.NullInt64
		if err := rows.Scan(&l.Name, &l.Target, &l.Clicks, &last); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		if last.Valid {
			t := time.UnixMilli(last.Int64).UTC()
			l.LastClick = &t
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (s *Store) topics(limit int) ([]TopicStat, error) {
	rows, err := s.db.Query(`
		SELECT rule, COUNT(*) AS n
		FROM chat_topics
		GROUP BY rule
		ORDER BY n DESC, rule
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying topics: %w", err)
	}
	defer rows.Close()

	var topics []TopicStat
	for rows.Next() {
		var t TopicStat
		if err := rows.Scan(&t.Rule, &t.Count); err != nil {
			return nil, fmt.Errorf("scanning topic: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// Stats aggregates the admin dashboard numbers relative to now.
func (s *Store) Stats(now time.Time) (*Stats, error) {
	stats := &Stats{}
	now = now.UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{startOfDay.UnixMilli()}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.Add(-7 * 24 * time.Hour).UnixMilli()}},
		{&stats.TotalClicks, `SELECT COALESCE(SUM(clicks), 0) FROM link_clicks`, nil},
		{&stats.TotalQuestions, `SELECT COUNT(*) FROM chat_topics`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats query %q: %w", c.query, err)
		}
	}

	var err error
	if stats.TopLinks, err = s.links(10); err != nil {
		return nil, err
	}
	if stats.TopTopics, err = s.topics(10); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.RecentVisitors(50); err != nil {
		return nil, err
	}
	return stats, nil
}
