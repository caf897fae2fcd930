package store

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/deepeshsaheb-tal/bookcritic/log"
	"github.com/deepeshsaheb-tal/bookcritic/model"
)

func (s *Store) GetReview(find *model.FindReview) (*model.Review, error) {
	list, err := s.ListReviews(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func reviewWhere(find *model.FindReview) ([]string, []any) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "r.id = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where, args = append(where, "r.book_id = ?"), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "r.user_id = ?"), append(args, *v)
	}
	return where, args
}

func (s *Store) ListReviews(find *model.FindReview) ([]*model.Review, error) {
	where, args := reviewWhere(find)

	query := `
		SELECT
			r.id,
			r.created_ts,
			r.updated_ts,
			r.book_id,
			r.user_id,
			r.content,
			r.rating,
			u.username,
			u.nickname,
			b.title,
			b.author,
			b.cover_url,
			b.average_rating
		FROM review r
		JOIN user u ON u.id = r.user_id
		JOIN book b ON b.id = r.book_id
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY r.created_ts DESC`
	if v := find.Take; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
		if v := find.Skip; v != nil {
			query += fmt.Sprintf(" OFFSET %d", *v)
		}
	}

	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query reviews", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Review, 0)
	for rows.Next() {
		var review model.Review
		var user model.UserSummary
		var book model.BookSummary
		if err := rows.Scan(
			&review.ID,
			&review.CreatedTs,
			&review.UpdatedTs,
			&review.BookID,
			&review.UserID,
			&review.Content,
			&review.Rating,
			&user.Username,
			&user.Nickname,
			&book.Title,
			&book.Author,
			&book.CoverURL,
			&book.AverageRating,
		); err != nil {
			return nil, err
		}
		user.ID = review.UserID
		book.ID = review.BookID
		review.User = &user
		review.Book = &book
		list = append(list, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// CountReviews returns the total number of reviews matching find, ignoring pagination.
func (s *Store) CountReviews(find *model.FindReview) (int, error) {
	where, args := reviewWhere(find)
	query := `SELECT COUNT(*) FROM review r WHERE ` + strings.Join(where, " AND ")

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count reviews")
	}
	return count, nil
}

func (s *Store) CreateReview(create *model.Review) (*model.Review, error) {
	stmt := `
		INSERT INTO review (book_id, user_id, content, rating)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var id int32
	if err := tx.QueryRow(stmt, create.BookID, create.UserID, create.Content, create.Rating).Scan(&id); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, errors.New("user already reviewed this book")
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.GetReview(&model.FindReview{ID: &id})
}

func (s *Store) UpdateReview(id int32, update *model.ReviewUpdateRequest) (*model.Review, error) {
	set, args := []string{}, []any{}

	if v := update.Content; v != nil {
		set, args = append(set, "content = ?"), append(args, *v)
	}
	if v := update.Rating; v != nil {
		set, args = append(set, "rating = ?"), append(args, *v)
	}
	if len(set) == 0 {
		return nil, errors.New("nothing to update")
	}
	set = append(set, "updated_ts = strftime('%s', 'now')")
	args = append(args, id)

	stmt := `UPDATE review SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
	if _, err := s.db.Exec(stmt, args...); err != nil {
		return nil, errors.Wrap(err, "failed to update review")
	}

	return s.GetReview(&model.FindReview{ID: &id})
}

func (s *Store) RemoveReview(id int32) error {
	res, err := s.db.Exec(`DELETE FROM review WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete review")
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return errors.Errorf("review not found with ID: %d", id)
	}
	return nil
}

// RecomputeBookAggregates refreshes the denormalized rating columns
// of a book from its reviews. Called by the rating worker.
func (s *Store) RecomputeBookAggregates(bookID int32) error {
	stmt := `
		UPDATE book SET
			average_rating = COALESCE((SELECT ROUND(AVG(rating), 2) FROM review WHERE book_id = ?), 0),
			total_reviews = (SELECT COUNT(*) FROM review WHERE book_id = ?)
		WHERE id = ?
	`
	if _, err := s.db.Exec(stmt, bookID, bookID, bookID); err != nil {
		return errors.Wrapf(err, "failed to recompute aggregates for book %d", bookID)
	}
	s.BookCache.Delete(bookID)
	return nil
}

// RecomputeUserReviewCount refreshes the denormalized review count of a user.
func (s *Store) RecomputeUserReviewCount(userID int32) error {
	stmt := `
		UPDATE user SET
			review_count = (SELECT COUNT(*) FROM review WHERE user_id = ?)
		WHERE id = ?
	`
	if _, err := s.db.Exec(stmt, userID, userID); err != nil {
		return errors.Wrapf(err, "failed to recompute review count for user %d", userID)
	}
	s.UserCache.Delete(userID)
	return nil
}
