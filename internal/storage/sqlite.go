package storage

import (
	"database/sql"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"libretranslate/internal/models"
)

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	storage := &SQLiteStorage{db: db}
	if err := storage.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return storage, nil
}

func (s *SQLiteStorage) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS translations (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		target TEXT NOT NULL,
		input TEXT NOT NULL DEFAULT '',
		output TEXT NOT NULL DEFAULT '',
		endpoint TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_translations_created ON translations(created_at);
	CREATE INDEX IF NOT EXISTS idx_translations_pair ON translations(source, target);
	`
	_, err := s.db.Exec(query)
	return err
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// InsertRecord stores a record, assigning an ID when it has none.
func (s *SQLiteStorage) InsertRecord(record *models.Record) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := `
	INSERT INTO translations (id, source, target, input, output, endpoint, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		record.ID,
		record.Source,
		record.Target,
		record.Input,
		record.Output,
		record.Endpoint,
		record.CreatedAt,
	)
	return errors.Wrap(err, "insert translation")
}

// GetRecordByID returns sql.ErrNoRows (wrapped) when nothing matches.
func (s *SQLiteStorage) GetRecordByID(id string) (*models.Record, error) {
	query := `
	SELECT id, source, target, input, output, endpoint, created_at
	FROM translations WHERE id = ?
	`
	var r models.Record
	err := s.db.QueryRow(query, id).Scan(
		&r.ID, &r.Source, &r.Target, &r.Input, &r.Output, &r.Endpoint, &r.CreatedAt,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "get translation %s", id)
	}
	return &r, nil
}

// GetRecentRecords returns the newest records first
func (s *SQLiteStorage) GetRecentRecords(limit int) ([]*models.Record, error) {
	query := `
	SELECT id, source, target, input, output, endpoint, created_at
	FROM translations
	ORDER BY created_at DESC
	LIMIT ?
	`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query translations")
	}
	defer rows.Close()

	var records []*models.Record
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(
			&r.ID, &r.Source, &r.Target, &r.Input, &r.Output, &r.Endpoint, &r.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan translation")
		}
		records = append(records, &r)
	}

	return records, rows.Err()
}

// GetStats returns the total count and counts per "src->tgt" pair.
func (s *SQLiteStorage) GetStats() (total int, pairs map[string]int, err error) {
	err = s.db.QueryRow("SELECT COUNT(*) FROM translations").Scan(&total)
	if err != nil {
		return 0, nil, errors.Wrap(err, "count translations")
	}

	rows, err := s.db.Query("SELECT source, target, COUNT(*) FROM translations GROUP BY source, target")
	if err != nil {
		return 0, nil, errors.Wrap(err, "count pairs")
	}
	defer rows.Close()

	pairs = make(map[string]int)
	for rows.Next() {
		var src, tgt string
		var n int
		if err := rows.Scan(&src, &tgt, &n); err != nil {
			return 0, nil, errors.Wrap(err, "scan pair")
		}
		pairs[src+"->"+tgt] = n
	}
	return total, pairs, rows.Err()
}

// ClearHistory deletes every record and reports how many were removed.
func (s *SQLiteStorage) ClearHistory() (int64, error) {
	res, err := s.db.Exec("DELETE FROM translations")
	if err != nil {
		return 0, errors.Wrap(err, "clear translations")
	}
	return res.RowsAffected()
}
