package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/echojournal/internal/common"
	"github.com/dmitrijs2005/echojournal/internal/dbx"
	"github.com/dmitrijs2005/echojournal/internal/journal"
)

// newID is a seam for tests.
var newID = uuid.NewString

// PostgresRepository stores entries as rows of the journal_entries table
// (the Supabase schema).
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository constructs a repository bound to db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a row with a title derived from the text.
func (r *PostgresRepository) Create(ctx context.Context, userID, text string) (string, error) {
	query := `
		INSERT INTO journal_entries (id, user_id, title, content)
		VALUES ($1, $2, $3, $4)
	`
	id := newID()
	if _, err := r.db.ExecContext(ctx, query, id, userID, journal.Title(text), text); err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// List returns the user's rows, newest first.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]journal.RawRecord, error) {
	query := `
		SELECT id, user_id, title, content, sentiment_score, sentiment_summary, created_at, updated_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	result := []journal.RawRecord{}
	for rows.Next() {
		var (
			row     journal.SupabaseRow
			score   sql.NullFloat64
			summary sql.NullString
		)
		if err := rows.Scan(
			&row.ID, &row.UserID, &row.Title, &row.Content,
			&score, &summary, &row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if score.Valid {
			row.SentimentScore = &score.Float64
		}
		if summary.Valid {
			row.SentimentSummary = &summary.String
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the row after checking, under a row lock, that userID owns it.
func (r *PostgresRepository) Delete(ctx context.Context, entryID, userID string) error {
	if _, err := uuid.Parse(entryID); err != nil {
		return common.ErrorNotFound
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := checkOwner(ctx, tx, entryID, userID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`, entryID, userID)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if err := dbx.ExpectRows(res); err != nil {
			if errors.Is(err, dbx.ErrNoRowsAffected) {
				return common.ErrorNotFound
			}
			return err
		}
		return nil
	})
}

// SetSentiment stores the enrichment of an entry owned by userID.
func (r *PostgresRepository) SetSentiment(ctx context.Context, entryID, userID string, s Sentiment) error {
	if _, err := uuid.Parse(entryID); err != nil {
		return common.ErrorNotFound
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := checkOwner(ctx, tx, entryID, userID); err != nil {
			return err
		}
		var score sql.NullFloat64
		if s.Score != nil {
			score = sql.NullFloat64{Float64: *s.Score, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			UPDATE journal_entries
			SET sentiment_summary = $1, sentiment_score = $2, updated_at = now()
			WHERE id = $3
		`, s.Summary, score, entryID)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}

func checkOwner(ctx context.Context, tx dbx.DBTX, entryID, userID string) error {
	var owner string
	err := tx.QueryRowContext(ctx, `SELECT user_id FROM journal_entries WHERE id = $1 FOR UPDATE`, entryID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if owner != userID {
		return common.ErrorUnauthorized
	}
	return nil
}
