package store

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/deepeshsaheb-tal/bookcritic/log"
	"github.com/deepeshsaheb-tal/bookcritic/model"
)

func (s *Store) GetReadingStatus(find *model.FindReadingStatus) (*model.ReadingStatus, error) {
	list, err := s.ListReadingStatuses(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListReadingStatuses(find *model.FindReadingStatus) ([]*model.ReadingStatus, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "rs.user_id = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where, args = append(where, "rs.book_id = ?"), append(args, *v)
	}
	if v := find.State; v != nil {
		where, args = append(where, "rs.state = ?"), append(args, *v)
	}

	query := `
		SELECT
			rs.user_id,
			rs.book_id,
			rs.state,
			rs.updated_ts,
			b.title,
			b.author,
			b.cover_url,
			b.average_rating
		FROM reading_status rs
		JOIN book b ON b.id = rs.book_id
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY rs.updated_ts DESC`
	if v := find.Take; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
		if v := find.Skip; v != nil {
			query += fmt.Sprintf(" OFFSET %d", *v)
		}
	}

	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query reading statuses", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.ReadingStatus, 0)
	for rows.Next() {
		var status model.ReadingStatus
		var book model.BookSummary
		if err := rows.Scan(
			&status.UserID,
			&status.BookID,
			&status.State,
			&status.UpdatedTs,
			&book.Title,
			&book.Author,
			&book.CoverURL,
			&book.AverageRating,
		); err != nil {
			return nil, err
		}
		book.ID = status.BookID
		status.Book = &book
		list = append(list, &status)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// SetReadingStatus inserts or updates the reading state of a book for a user.
func (s *Store) SetReadingStatus(userID, bookID int32, state model.ReadingState) (*model.ReadingStatus, error) {
	stmt := `
		INSERT INTO reading_status (user_id, book_id, state)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, book_id) DO UPDATE
		SET
			state = EXCLUDED.state,
			updated_ts = strftime('%s', 'now')
	`
	if _, err := s.db.Exec(stmt, userID, bookID, state); err != nil {
		return nil, errors.Wrap(err, "failed to set reading status")
	}
	return s.GetReadingStatus(&model.FindReadingStatus{UserID: &userID, BookID: &bookID})
}

func (s *Store) RemoveReadingStatus(userID, bookID int32) error {
	res, err := s.db.Exec(`DELETE FROM reading_status WHERE user_id = ? AND book_id = ?`, userID, bookID)
	if err != nil {
		return errors.Wrap(err, "failed to remove reading status")
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return errors.Errorf("reading status not found for user %d and book %d", userID, bookID)
	}
	return nil
}
