// Package runstore provides SQLite-based storage of completed simulation
// runs. The simulation engine never touches it; the CLI wires it in behind
// a flag so runs can be archived and listed later.
package runstore

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	json "github.com/goccy/go-json"

	"github.com/epidemic-sim/epidemic-sim/sim"
)

// Run is one archived simulation or policy ranking run.
type Run struct {
	ID        string    `db:"id"`
	Kind      string    `db:"kind"` // "simulation" or "policy"
	City      string    `db:"city"`
	CreatedAt time.Time `db:"created_at"`
	Request   []byte    `db:"request_json"`
	Summary   []byte    `db:"summary_json"`
}

// Store wraps a SQLite connection for run persistence.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		city TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		request_json TEXT NOT NULL,
		summary_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SaveRun inserts one archived run.
func (s *Store) SaveRun(r Run) error {
	_, err := s.conn.Exec(
		`INSERT INTO runs (id, kind, city, created_at, request_json, summary_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Kind, r.City, r.CreatedAt, string(r.Request), string(r.Summary),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.ID, err)
	}
	return nil
}

// SaveSimulation archives a finished outbreak report.
func (s *Store) SaveSimulation(req *sim.SimulationRequest, report *sim.Report) error {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	summaryJSON, err := json.Marshal(report.Summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	return s.SaveRun(Run{
		ID:        report.ID,
		Kind:      "simulation",
		City:      report.CityName,
		CreatedAt: report.CreatedAt,
		Request:   reqJSON,
		Summary:   summaryJSON,
	})
}

// SavePolicyRun archives a finished policy ranking report.
func (s *Store) SavePolicyRun(report *sim.PolicyReport) error {
	best, err := json.Marshal(report.OptimalStrategy)
	if err != nil {
		return fmt.Errorf("marshal optimal strategy: %w", err)
	}
	summaryJSON, err := json.Marshal(struct {
		Candidates int             `json:"candidates"`
		Best       json.RawMessage `json:"optimal_strategy"`
	}{Candidates: len(report.PolicyOutcomes), Best: best})
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	return s.SaveRun(Run{
		ID:        report.ID,
		Kind:      "policy",
		City:      report.CityName,
		CreatedAt: report.CreatedAt,
		Request:   []byte("{}"),
		Summary:   summaryJSON,
	})
}

// GetRun retrieves one archived run by ID.
func (s *Store) GetRun(id string) (*Run, error) {
	var r Run
	err := s.conn.Get(&r,
		"SELECT id, kind, city, created_at, request_json, summary_json FROM runs WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return &r, nil
}

// RecentRuns returns the most recent N archived runs.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	err := s.conn.Select(&runs,
		"SELECT id, kind, city, created_at, request_json, summary_json FROM runs ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	return runs, err
}
