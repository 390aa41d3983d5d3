package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"

	"review_copilot/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

const duplicateEntryErrNo = 1062

func isDuplicateKey(err error) bool {
	var me *gomysql.MySQLError
	return errors.As(err, &me) && me.Number == duplicateEntryErrNo
}

func (r *Repo) Insert(ctx context.Context, rv domain.Review) error {
	topics, err := json.Marshal(rv.Topics)
	if err != nil {
		return fmt.Errorf("marshal topics for %s: %w", rv.ID, err)
	}
	_, err = r.db.ExecContext(ctx, insertReviewSQL,
		rv.ID, rv.Location, rv.Rating, rv.Date, rv.Text, rv.Sentiment, string(topics))
	if isDuplicateKey(err) {
		return fmt.Errorf("insert %s: %w", rv.ID, domain.ErrDuplicateID)
	}
	return err
}

// InsertBatch runs every insert inside one transaction so a duplicate id
// anywhere in the batch leaves the store untouched.
func (r *Repo) InsertBatch(ctx context.Context, rs []domain.Review) error {
	if len(rs) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, rv := range rs {
		topics, err := json.Marshal(rv.Topics)
		if err != nil {
			return fmt.Errorf("marshal topics for %s: %w", rv.ID, err)
		}
		if _, err := tx.ExecContext(ctx, insertReviewSQL,
			rv.ID, rv.Location, rv.Rating, rv.Date, rv.Text, rv.Sentiment, string(topics)); err != nil {
			if isDuplicateKey(err) {
				return fmt.Errorf("insert %s: %w", rv.ID, domain.ErrDuplicateID)
			}
			return err
		}
	}
	return tx.Commit()
}

func (r *Repo) Get(ctx context.Context, id string) (domain.Review, error) {
	return scanReview(r.db.QueryRowContext(ctx, getReviewSQL, id))
}

func (r *Repo) ListAll(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) SetReply(ctx context.Context, id, reply string) error {
	res, err := r.db.ExecContext(ctx, setReplySQL, reply, id)
	if err != nil {
		return err
	}
	// RowsAffected is 0 both for a missing row and for an unchanged value;
	// distinguish by re-checking existence only when nothing was touched.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, gerr := r.Get(ctx, id); gerr != nil {
			return gerr
		}
	}
	return nil
}

func (r *Repo) GetReply(ctx context.Context, id string) (string, error) {
	var reply sql.NullString
	err := r.db.QueryRowContext(ctx, getReplySQL, id).Scan(&reply)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	// NULL and empty both mean "no reply generated yet".
	if !reply.Valid || reply.String == "" {
		return "", domain.ErrNotFound
	}
	return reply.String, nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanReview(row rowScanner) (domain.Review, error) {
	var rv domain.Review
	var topicsJSON []byte
	var reply sql.NullString
	err := row.Scan(&rv.ID, &rv.Location, &rv.Rating, &rv.Date, &rv.Text, &rv.Sentiment, &topicsJSON, &reply)
	if err == sql.ErrNoRows {
		return domain.Review{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Review{}, err
	}
	if err := json.Unmarshal(topicsJSON, &rv.Topics); err != nil {
		return domain.Review{}, fmt.Errorf("unmarshal topics for %s: %w", rv.ID, err)
	}
	if reply.Valid {
		rv.SuggestedReply = reply.String
	}
	return rv, nil
}
