package activitylog

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/askillindva/XmlTemplateGenerator/internal/common/errors"
	"github.com/askillindva/XmlTemplateGenerator/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db, logger.NewTestLogger(t)), mock
}

// ==========================
// Schema Tests
// ==========================

func TestStore_EnsureSchema(t *testing.T) {
	store, mock := createTestStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS logs`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_EnsureSchema_Failure(t *testing.T) {
	store, mock := createTestStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS logs`).
		WillReturnError(errors.New("disk I/O error"))

	err := store.EnsureSchema(context.Background())

	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDatabaseConnectionFailed))
}

// ==========================
// Record Tests
// ==========================

func TestStore_Record(t *testing.T) {
	store, mock := createTestStore(t)

	mock.ExpectExec(`INSERT INTO logs`).
		WithArgs(
			sqlmock.AnyArg(), // created_at
			"order",
			`{"order_id":"42"}`,
			`<order><id>42</id></order>`,
		).
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := store.Record(
		context.Background(),
		"order",
		map[string]string{"order_id": "42"},
		`<order><id>42</id></order>`,
	)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Record_InsertFailure(t *testing.T) {
	store, mock := createTestStore(t)

	mock.ExpectExec(`INSERT INTO logs`).
		WillReturnError(errors.New("database is locked"))

	_, err := store.Record(context.Background(), "order", map[string]string{}, `<order/>`)

	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDatabaseInsertFailed))
}

// ==========================
// ListRecent Tests
// ==========================

func TestStore_ListRecent(t *testing.T) {
	store, mock := createTestStore(t)

	rows := sqlmock.NewRows([]string{"id", "created_at", "template_name", "submitted_data", "generated_document"}).
		AddRow(3, "2026-09-01T10:00:00Z", "order", `{"order_id":"2"}`, `<order><id>2</id></order>`).
		AddRow(2, "2026-09-01T09:00:00Z", "order", `{"order_id":"1"}`, `<order><id>1</id></order>`)

	mock.ExpectQuery(`SELECT id, created_at, template_name, submitted_data, generated_document`).
		WithArgs(10).
		WillReturnRows(rows)

	records, err := store.ListRecent(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(3), records[0].ID, "newest first")
	assert.Equal(t, "order", records[0].TemplateName)

	submission, err := records[0].Submission()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"order_id": "2"}, submission)
}

func TestStore_ListRecent_DefaultLimit(t *testing.T) {
	store, mock := createTestStore(t)

	mock.ExpectQuery(`SELECT id, created_at, template_name, submitted_data, generated_document`).
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "template_name", "submitted_data", "generated_document"}))

	records, err := store.ListRecent(context.Background(), 0)

	assert.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListRecent_QueryFailure(t *testing.T) {
	store, mock := createTestStore(t)

	mock.ExpectQuery(`SELECT id, created_at, template_name, submitted_data, generated_document`).
		WillReturnError(errors.New("no such table: logs"))

	_, err := store.ListRecent(context.Background(), 5)

	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDatabaseQueryFailed))
}
