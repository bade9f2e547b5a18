// Package activitylog persists one audit record per successful generation.
// The table is append-only: the core never updates or deletes records.
package activitylog

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	apperrors "github.com/askillindva/XmlTemplateGenerator/internal/common/errors"
	"github.com/askillindva/XmlTemplateGenerator/internal/common/logger"
)

// Record is one persisted generation.
type Record struct {
	ID                int64  `json:"id"`
	CreatedAt         string `json:"createdAt"`
	TemplateName      string `json:"templateName"`
	SubmittedData     string `json:"submittedData"`
	GeneratedDocument string `json:"generatedDocument"`
}

// Submission decodes the serialized key/value mapping for display.
func (r Record) Submission() (map[string]string, error) {
	submission := map[string]string{}
	if err := json.Unmarshal([]byte(r.SubmittedData), &submission); err != nil {
		return nil, err
	}
	return submission, nil
}

type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "activity-log"}),
	}
}

// EnsureSchema creates the logs table if it does not exist. Called once at
// process start, not per request.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			template_name TEXT NOT NULL,
			submitted_data TEXT NOT NULL,
			generated_document TEXT NOT NULL
		)`)
	if err != nil {
		return apperrors.NewDatabaseConnectionFailedError(err)
	}
	s.logger.Info("activity log schema ready", nil)
	return nil
}

// Record appends one audit entry and returns the id the store assigned to
// it. One atomic insert; id assignment rides on SQLite's own locking, so
// concurrent writers cannot race or lose records.
func (s *Store) Record(ctx context.Context, templateName string, submission map[string]string, document string) (int64, error) {
	createdAt := time.Now().UTC().Format(time.RFC3339)

	submittedData, err := json.Marshal(submission)
	if err != nil {
		return 0, apperrors.NewDatabaseInsertFailedError(err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO logs (created_at, template_name, submitted_data, generated_document)
		VALUES (?, ?, ?, ?)`,
		createdAt,
		templateName,
		string(submittedData),
		document,
	)
	if err != nil {
		return 0, apperrors.NewDatabaseInsertFailedError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, apperrors.NewDatabaseInsertFailedError(err)
	}

	s.logger.Info("recorded generation", map[string]interface{}{
		"templateName": templateName,
		"logId":        id,
	})
	return id, nil
}

// ListRecent returns up to limit records, newest first. Not part of the
// primary flow; serves the audit page and tests.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, template_name, submitted_data, generated_document
		FROM logs
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError(err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.TemplateName, &r.SubmittedData, &r.GeneratedDocument); err != nil {
			return nil, apperrors.NewDatabaseQueryFailedError(err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabaseQueryFailedError(err)
	}
	return records, nil
}
