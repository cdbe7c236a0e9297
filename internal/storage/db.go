package storage

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

// DB is a read-only handle on an inventory database of already ingested
// items.
type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(`PRAGMA query_only = ON;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &DB{conn: conn}, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

// ListUIDs runs query and returns the first column of every row as text.
// NULL and blank values are skipped.
func (d *DB) ListUIDs(query string) ([]string, error) {
	rows, err := d.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("inventory query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("inventory query returned no columns")
	}

	var out []string
	dest := make([]any, len(cols))
	for i := range dest {
		dest[i] = new(sql.RawBytes)
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		raw := *dest[0].(*sql.RawBytes)
		if raw == nil {
			continue
		}
		if v := strings.TrimSpace(string(raw)); v != "" {
			out = append(out, v)
		}
	}

	return out, rows.Err()
}
