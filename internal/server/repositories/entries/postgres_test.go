package entries

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/echojournal/internal/common"
	"github.com/dmitrijs2005/echojournal/internal/journal"
)

const entryID = "4f7d6f2e-8c1a-4c4e-9a55-0b7f3d2a9c11"

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock, db
}

func stubID(t *testing.T, id string) {
	t.Helper()
	orig := newID
	newID = func() string { return id }
	t.Cleanup(func() { newID = orig })
}

var (
	insertQuery = regexp.QuoteMeta(`INSERT INTO journal_entries (id, user_id, title, content)`)
	selectQuery = `SELECT id, user_id, title, content, sentiment_score, sentiment_summary, created_at, updated_at\s+FROM journal_entries\s+WHERE user_id = \$1\s+ORDER BY created_at DESC`
	ownerQuery  = regexp.QuoteMeta(`SELECT user_id FROM journal_entries WHERE id = $1 FOR UPDATE`)
	deleteQuery = regexp.QuoteMeta(`DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`)
	updateQuery = `UPDATE journal_entries\s+SET sentiment_summary = \$1, sentiment_score = \$2, updated_at = now\(\)\s+WHERE id = \$3`
)

func TestCreate_Success(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	stubID(t, entryID)

	mock.ExpectExec(insertQuery).
		WithArgs(entryID, "u1", "Hello", "Hello").
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := repo.Create(context.Background(), "u1", "Hello")
	require.NoError(t, err)
	assert.Equal(t, entryID, id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_TitleIsTruncated(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	stubID(t, entryID)

	text := "This entry is definitely longer than fifty characters in total."
	mock.ExpectExec(insertQuery).
		WithArgs(entryID, "u1", "This entry is definitely longer than fifty charact...", text).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.Create(context.Background(), "u1", text)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectExec(insertQuery).WillReturnError(errors.New("db is down"))

	_, err := repo.Create(context.Background(), "u1", "Hello")
	if err == nil || !regexp.MustCompile(`db error: .*db is down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestList_Success(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "title", "content", "sentiment_score", "sentiment_summary", "created_at", "updated_at",
	}).AddRow(
		"e2", "u1", "Second", "Second", 0.6, "The entry has a positive, happy tone.", "2024-03-06T10:00:00Z", "2024-03-06T10:00:05Z",
	).AddRow(
		"e1", "u1", "First", "First", nil, nil, "2024-03-05T10:00:00Z", "2024-03-05T10:00:00Z",
	)
	mock.ExpectQuery(selectQuery).WithArgs("u1").WillReturnRows(rows)

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	first, ok := got[0].(journal.SupabaseRow)
	require.True(t, ok)
	assert.Equal(t, "e2", first.ID)
	require.NotNil(t, first.SentimentScore)
	assert.InDelta(t, 0.6, *first.SentimentScore, 1e-9)
	require.NotNil(t, first.SentimentSummary)
	assert.Equal(t, "2024-03-06T10:00:00Z", first.CreatedAt)

	second := got[1].(journal.SupabaseRow)
	assert.Nil(t, second.SentimentScore)
	assert.Nil(t, second.SentimentSummary)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(selectQuery).WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "content", "sentiment_score", "sentiment_summary", "created_at", "updated_at"}))

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_QueryError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(selectQuery).WithArgs("u1").WillReturnError(errors.New("db err"))

	_, err := repo.List(context.Background(), "u1")
	if err == nil || !regexp.MustCompile(`failed to select entries: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped select error, got %v", err)
	}
}

func TestList_RowError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "content", "sentiment_score", "sentiment_summary", "created_at", "updated_at"}).
		AddRow("e1", "u1", "t", "c", nil, nil, "2024-03-05T10:00:00Z", "2024-03-05T10:00:00Z").
		RowError(0, errors.New("row broke"))
	mock.ExpectQuery(selectQuery).WithArgs("u1").WillReturnRows(rows)

	_, err := repo.List(context.Background(), "u1")
	assert.Error(t, err)
}

func TestDelete_Success(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(ownerQuery).WithArgs(entryID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u1"))
	mock.ExpectExec(deleteQuery).WithArgs(entryID, "u1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), entryID, "u1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotOwner(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(ownerQuery).WithArgs(entryID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("someone-else"))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), entryID, "u1")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(ownerQuery).WithArgs(entryID).WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), entryID, "u1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_MalformedIDSkipsDatabase(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	err := repo.Delete(context.Background(), "not-a-uuid", "u1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_ExecError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(ownerQuery).WithArgs(entryID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u1"))
	mock.ExpectExec(deleteQuery).WithArgs(entryID, "u1").WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), entryID, "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetSentiment_Success(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)
	score := 0.6

	mock.ExpectBegin()
	mock.ExpectQuery(ownerQuery).WithArgs(entryID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u1"))
	mock.ExpectExec(updateQuery).WithArgs("happy", 0.6, entryID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SetSentiment(context.Background(), entryID, "u1", Sentiment{Summary: "happy", Score: &score})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetSentiment_NullScore(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(ownerQuery).WithArgs(entryID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u1"))
	mock.ExpectExec(updateQuery).WithArgs("meh", nil, entryID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SetSentiment(context.Background(), entryID, "u1", Sentiment{Summary: "meh"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetSentiment_NotOwner(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(ownerQuery).WithArgs(entryID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u2"))
	mock.ExpectRollback()

	err := repo.SetSentiment(context.Background(), entryID, "u1", Sentiment{Summary: "x"})
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestPostgresRepository_ImplementsRepository(t *testing.T) {
	var _ Repository = (*PostgresRepository)(nil)
	var _ Repository = (*MemoryRepository)(nil)
	var _ Repository = (*FirestoreRepository)(nil)
}
