// Package history ведёт журнал сгенерированных Custom.ini в SQLite.
//
// Журнал нужен чтобы видеть, какие архивы попали в ini при прошлых запусках
// (например, после обновления модов в режиме -watch).
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at  INTEGER NOT NULL,
	output_path TEXT    NOT NULL,
	data_folder TEXT    NOT NULL,
	archives    INTEGER NOT NULL,
	buckets     TEXT    NOT NULL
);`

// Run - одна запись журнала.
type Run struct {
	ID         int64
	CreatedAt  time.Time
	OutputPath string
	DataFolder string
	Archives   int            // Всего архивов в ini
	Buckets    map[string]int // [секция] -> количество архивов
}

// Store - журнал запусков поверх *sql.DB.
type Store struct {
	db *sql.DB
}

// Open открывает (или создаёт) базу и применяет схему.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	// SQLite не любит конкурентных писателей
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close закрывает базу.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record сохраняет запуск и возвращает его ID.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	if run.Buckets == nil {
		run.Buckets = map[string]int{}
	}

	buckets, err := json.Marshal(run.Buckets)
	if err != nil {
		return 0, fmt.Errorf("history: encode buckets: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (created_at, output_path, data_folder, archives, buckets) VALUES (?, ?, ?, ?, ?)`,
		run.CreatedAt.UnixNano(), run.OutputPath, run.DataFolder, run.Archives, string(buckets),
	)
	if err != nil {
		return 0, fmt.Errorf("history: insert run: %w", err)
	}
	return res.LastInsertId()
}

// Recent возвращает последние limit запусков, новые первыми.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, output_path, data_folder, archives, buckets
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run     Run
			created int64
			buckets string
		)
		if err := rows.Scan(&run.ID, &created, &run.OutputPath, &run.DataFolder, &run.Archives, &buckets); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		run.CreatedAt = time.Unix(0, created)
		if err := json.Unmarshal([]byte(buckets), &run.Buckets); err != nil {
			return nil, fmt.Errorf("history: decode buckets of run %d: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
