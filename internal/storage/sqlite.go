package storage

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// problemMeta is the lightweight index entry for a problem.
type problemMeta struct {
	ID        string
	CreatedAt time.Time
}

// solutionMeta is the lightweight index entry for a solution.
type solutionMeta struct {
	ID        string
	ProblemID string
	Language  string
	CreatedAt time.Time
}

// feedbackMeta is the lightweight index entry for a feedback record.
type feedbackMeta struct {
	ID         string
	SolutionID string
	IsPositive bool
	CreatedAt  time.Time
}

// SQLiteStore implements the Store interface using SQLite.
//
// The in-memory index mirrors the tables and is authoritative at runtime for
// lookups and similarity scans. All mutation goes through methods that
// commit the full record first and only then update the index, under mu.
type SQLiteStore struct {
	db        *sql.DB
	dbPath    string
	mu        sync.RWMutex
	problems  map[string]problemMeta
	solutions map[string]solutionMeta
	feedback  map[string]feedbackMeta
	features  map[string]FeatureSet
}

// DefaultDBPath returns the path to ~/.codecoach/feedback.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".codecoach", "feedback.db"), nil
}

// Open opens (or creates) the feedback store at dbPath, runs migrations,
// and rebuilds the in-memory index from the full records.
func Open(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{
		db:        db,
		dbPath:    dbPath,
		problems:  make(map[string]problemMeta),
		solutions: make(map[string]solutionMeta),
		feedback:  make(map[string]feedbackMeta),
		features:  make(map[string]FeatureSet),
	}

	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := s.loadIndex(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load index: %w", err)
	}

	return s, nil
}

// Close closes the database connection. The handle is left in place so a
// query racing Close gets the driver's closed-connection error instead of
// a nil dereference; closing twice is a no-op.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// migration represents a single database migration.
type migration struct {
	version int
	name    string
	up      func() error
}

// runMigrations executes database schema migrations.
func (s *SQLiteStore) runMigrations() error {
	if err := s.createMigrationsTable(); err != nil {
		return err
	}

	version, err := s.getCurrentMigrationVersion()
	if err != nil {
		return err
	}

	migrations := []migration{
		{version: 1, name: "initial_schema", up: s.migration001InitialSchema},
	}

	for _, m := range migrations {
		if version < m.version {
			log.Printf("Running migration %d: %s", m.version, m.name)
			if err := m.up(); err != nil {
				return fmt.Errorf("migration %d failed: %w", m.version, err)
			}
			if err := s.setMigrationVersion(m.version); err != nil {
				return err
			}
		}
	}

	return nil
}

// createMigrationsTable creates the schema_migrations table.
func (s *SQLiteStore) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`
	_, err := s.db.Exec(query)
	return err
}

// getCurrentMigrationVersion returns the highest applied migration version.
func (s *SQLiteStore) getCurrentMigrationVersion() (int, error) {
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")

	var version int
	if err := row.Scan(&version); err != nil {
		return 0, err
	}

	return version, nil
}

// setMigrationVersion records a migration as applied.
func (s *SQLiteStore) setMigrationVersion(version int) error {
	_, err := s.db.Exec(
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
		version, fmt.Sprintf("migration_%d", version),
	)
	return err
}

// migration001InitialSchema creates the initial database schema.
func (s *SQLiteStore) migration001InitialSchema() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS problems (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			problem_type TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			data_structures TEXT NOT NULL,
			algorithms TEXT NOT NULL,
			created_at TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("failed to create problems table: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS solutions (
			id TEXT PRIMARY KEY,
			problem_id TEXT NOT NULL,
			code TEXT NOT NULL,
			language TEXT NOT NULL,
			reasoning TEXT NOT NULL,
			created_at TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("failed to create solutions table: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_solutions_problem
		ON solutions(problem_id)
	`); err != nil {
		return fmt.Errorf("failed to create solutions problem index: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS feedback (
			id TEXT PRIMARY KEY,
			solution_id TEXT NOT NULL,
			is_positive INTEGER NOT NULL,
			comment TEXT,
			created_at TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("failed to create feedback table: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_feedback_solution
		ON feedback(solution_id)
	`); err != nil {
		return fmt.Errorf("failed to create feedback solution index: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS query_history (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			query_hash TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			result_count INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("failed to create query_history table: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_query_history_timestamp
		ON query_history(timestamp DESC)
	`); err != nil {
		return fmt.Errorf("failed to create query_history timestamp index: %w", err)
	}

	return nil
}

// loadIndex rebuilds the in-memory index from the full records. This is the
// crash-recovery path: whatever committed is what the index sees.
func (s *SQLiteStore) loadIndex() error {
	rows, err := s.db.Query(`
		SELECT id, problem_type, difficulty, data_structures, algorithms, created_at
		FROM problems
	`)
	if err != nil {
		return fmt.Errorf("failed to load problems: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, problemType, difficulty, dsJSON, algoJSON, createdStr string
		if err := rows.Scan(&id, &problemType, &difficulty, &dsJSON, &algoJSON, &createdStr); err != nil {
			return fmt.Errorf("failed to scan problem row: %w", err)
		}

		createdAt, err := parseTime(createdStr)
		if err != nil {
			return fmt.Errorf("failed to parse problem timestamp: %w", err)
		}

		features := FeatureSet{ProblemType: problemType, Difficulty: difficulty}
		if err := unmarshalStrings(dsJSON, &features.DataStructures); err != nil {
			return fmt.Errorf("failed to parse data structures: %w", err)
		}
		if err := unmarshalStrings(algoJSON, &features.Algorithms); err != nil {
			return fmt.Errorf("failed to parse algorithms: %w", err)
		}

		s.problems[id] = problemMeta{ID: id, CreatedAt: createdAt}
		s.features[id] = features
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate problems: %w", err)
	}

	solRows, err := s.db.Query("SELECT id, problem_id, language, created_at FROM solutions")
	if err != nil {
		return fmt.Errorf("failed to load solutions: %w", err)
	}
	defer solRows.Close()

	for solRows.Next() {
		var id, problemID, language, createdStr string
		if err := solRows.Scan(&id, &problemID, &language, &createdStr); err != nil {
			return fmt.Errorf("failed to scan solution row: %w", err)
		}

		createdAt, err := parseTime(createdStr)
		if err != nil {
			return fmt.Errorf("failed to parse solution timestamp: %w", err)
		}

		s.solutions[id] = solutionMeta{ID: id, ProblemID: problemID, Language: language, CreatedAt: createdAt}
	}
	if err := solRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate solutions: %w", err)
	}

	fbRows, err := s.db.Query("SELECT id, solution_id, is_positive, created_at FROM feedback")
	if err != nil {
		return fmt.Errorf("failed to load feedback: %w", err)
	}
	defer fbRows.Close()

	for fbRows.Next() {
		var id, solutionID, createdStr string
		var isPositive int
		if err := fbRows.Scan(&id, &solutionID, &isPositive, &createdStr); err != nil {
			return fmt.Errorf("failed to scan feedback row: %w", err)
		}

		createdAt, err := parseTime(createdStr)
		if err != nil {
			return fmt.Errorf("failed to parse feedback timestamp: %w", err)
		}

		s.feedback[id] = feedbackMeta{ID: id, SolutionID: solutionID, IsPositive: isPositive == 1, CreatedAt: createdAt}
	}
	return fbRows.Err()
}

// parseTime parses a stored timestamp. Nanosecond precision is required so
// that feedback ordering survives round trips within the same second.
func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}

// formatTime formats a timestamp for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
