package storage

import (
	"database/sql"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteBackend stores every collection as one row of a key-value table.
type SQLiteBackend struct {
	conn *sql.DB
}

// NewSQLiteBackend opens the database file and runs migrations.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		return nil, err
	}

	b := &SQLiteBackend{conn: conn}
	if err := b.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return b, nil
}

func (b *SQLiteBackend) migrate() error {
	_, err := b.conn.Exec(`CREATE TABLE IF NOT EXISTS collections (
		key TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

func (b *SQLiteBackend) Load(key string) ([]byte, error) {
	var data []byte
	err := b.conn.QueryRow("SELECT data FROM collections WHERE key = ?", key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *SQLiteBackend) Store(key string, data []byte) error {
	_, err := b.conn.Exec(
		`INSERT INTO collections (key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		key, data,
	)
	return err
}

func (b *SQLiteBackend) Delete(key string) error {
	_, err := b.conn.Exec("DELETE FROM collections WHERE key = ?", key)
	return err
}

func (b *SQLiteBackend) Keys() ([]string, error) {
	rows, err := b.conn.Query("SELECT key FROM collections")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (b *SQLiteBackend) Close() error {
	return b.conn.Close()
}
