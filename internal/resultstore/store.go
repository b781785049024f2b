package resultstore

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/i5heu/GoRingQueue/internal/report"
)

//go:embed schema.sql
var schemaSQL string

// Store keeps bench sessions in a SQLite database.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("enabling WAL mode: %v; closing database: %w", err, closeErr)
		}
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := conn.Exec(schemaSQL); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("executing schema: %v; closing database: %w", err, closeErr)
		}
		return nil, fmt.Errorf("executing schema: %w", err)
	}

	return &Store{conn: conn}, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// SaveSession stores a session and all of its results in one transaction.
func (s *Store) SaveSession(ctx context.Context, fr report.FullReport) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	sys := fr.SystemInfo
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (id, session_time, num_cpu, true_cpu, cpu_model, cpu_speed_mhz, go_arch, total_memory)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		fr.SessionID, fr.SessionTime, sys.CPUs(), sys.TrueCPU, sys.CPUModel, sys.CPUSpeedMHz, sys.GOARCH, int64(sys.TotalMemory),
	); err != nil {
		return fmt.Errorf("inserting session %s: %w", fr.SessionID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (session_id, implementation, capacity, num_producers, num_consumers,
		   num_messages, num_consumed, num_rejected, test_duration, actual_elapsed, throughput, timestamp, go_version)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing result insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range fr.Benchmarks {
		if _, err := stmt.ExecContext(ctx,
			fr.SessionID, b.Implementation, b.Capacity, b.NumProducers, b.NumConsumers,
			b.NumMessages, b.NumMessagesConsumed, b.NumRejected, b.TestDuration, b.ActualElapsed,
			b.Throughput, b.Timestamp, b.GoVersion,
		); err != nil {
			return fmt.Errorf("inserting result for %s: %w", b.Implementation, err)
		}
	}

	return tx.Commit()
}

// Sessions returns every stored session, oldest first, with its results.
func (s *Store) Sessions(ctx context.Context) ([]report.FullReport, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id, session_time, num_cpu, true_cpu, cpu_model, cpu_speed_mhz, go_arch, total_memory
		 FROM sessions ORDER BY session_time, rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var out []report.FullReport
	for rows.Next() {
		var fr report.FullReport
		var mem int64
		if err := rows.Scan(&fr.SessionID, &fr.SessionTime, &fr.SystemInfo.NumCPU, &fr.SystemInfo.TrueCPU,
			&fr.SystemInfo.CPUModel, &fr.SystemInfo.CPUSpeedMHz, &fr.SystemInfo.GOARCH, &mem); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		fr.SystemInfo.TotalMemory = uint64(mem)
		out = append(out, fr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}

	for i := range out {
		results, err := s.results(ctx, out[i].SessionID)
		if err != nil {
			return nil, err
		}
		out[i].Benchmarks = results
	}
	return out, nil
}

func (s *Store) results(ctx context.Context, sessionID string) ([]report.BenchmarkResult, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT implementation, capacity, num_producers, num_consumers, num_messages, num_consumed,
		   num_rejected, test_duration, actual_elapsed, throughput, timestamp, go_version
		 FROM results WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying results for %s: %w", sessionID, err)
	}
	defer rows.Close()

	var out []report.BenchmarkResult
	for rows.Next() {
		var b report.BenchmarkResult
		if err := rows.Scan(&b.Implementation, &b.Capacity, &b.NumProducers, &b.NumConsumers,
			&b.NumMessages, &b.NumMessagesConsumed, &b.NumRejected, &b.TestDuration, &b.ActualElapsed,
			&b.Throughput, &b.Timestamp, &b.GoVersion); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
