package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/shopintel/competitor-xray/internal/model"
)

// SQLiteStore implements Store on an in-memory SQLite database. Like
// MemoryStore, history lives only for the process lifetime; SQLite buys
// SQL-queryable traces during debugging sessions.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS executions (
	seq     INTEGER PRIMARY KEY AUTOINCREMENT,
	id      TEXT NOT NULL UNIQUE,
	payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_executions_id ON executions(id);
`

// NewSQLite opens an in-memory SQLite database and creates the schema.
// A single connection is enforced so every statement sees the same database.
func NewSQLite() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteMigration); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "sqlite: migrate")
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, exec *model.Execution) error {
	if exec == nil {
		return eris.New("sqlite: nil execution")
	}
	payload, err := json.Marshal(exec)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal execution")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO executions (id, payload) VALUES (?, ?)`,
		exec.ID, string(payload),
	)
	return eris.Wrapf(err, "sqlite: insert execution %s", exec.ID)
}

func (s *SQLiteStore) List(ctx context.Context) ([]model.Execution, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM executions ORDER BY seq DESC`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list executions")
	}
	defer rows.Close()

	executions := []model.Execution{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan execution")
		}
		var exec model.Execution
		if err := json.Unmarshal([]byte(payload), &exec); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal execution")
		}
		executions = append(executions, exec)
	}
	return executions, eris.Wrap(rows.Err(), "sqlite: list executions iterate")
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Execution, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT payload FROM executions WHERE id = ?`, id,
	)

	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: get %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get %s", id)
	}

	var exec model.Execution
	if err := json.Unmarshal([]byte(payload), &exec); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal execution")
	}
	return &exec, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM executions`)
	return eris.Wrap(err, "sqlite: clear executions")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
