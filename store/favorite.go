package store

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/deepeshsaheb-tal/bookcritic/log"
	"github.com/deepeshsaheb-tal/bookcritic/model"
)

func (s *Store) GetFavorite(find *model.FindFavorite) (*model.Favorite, error) {
	list, err := s.ListFavorites(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) ListFavorites(find *model.FindFavorite) ([]*model.Favorite, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "f.user_id = ?"), append(args, *v)
	}
	if v := find.BookID; v != nil {
		where, args = append(where, "f.book_id = ?"), append(args, *v)
	}

	query := `
		SELECT
			f.user_id,
			f.book_id,
			f.created_ts,
			b.title,
			b.author,
			b.cover_url,
			b.average_rating
		FROM user_favorite f
		JOIN book b ON b.id = f.book_id
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY f.created_ts DESC`
	if v := find.Take; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
		if v := find.Skip; v != nil {
			query += fmt.Sprintf(" OFFSET %d", *v)
		}
	}

	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query favorites", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Favorite, 0)
	for rows.Next() {
		var favorite model.Favorite
		var book model.BookSummary
		if err := rows.Scan(
			&favorite.UserID,
			&favorite.BookID,
			&favorite.CreatedTs,
			&book.Title,
			&book.Author,
			&book.CoverURL,
			&book.AverageRating,
		); err != nil {
			return nil, err
		}
		book.ID = favorite.BookID
		favorite.Book = &book
		list = append(list, &favorite)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) AddFavorite(userID, bookID int32) (*model.Favorite, error) {
	stmt := `
		INSERT INTO user_favorite (user_id, book_id)
		VALUES (?, ?)
		ON CONFLICT(user_id, book_id) DO NOTHING
	`
	if _, err := s.db.Exec(stmt, userID, bookID); err != nil {
		return nil, errors.Wrap(err, "failed to add favorite")
	}
	return s.GetFavorite(&model.FindFavorite{UserID: &userID, BookID: &bookID})
}

func (s *Store) RemoveFavorite(userID, bookID int32) error {
	res, err := s.db.Exec(`DELETE FROM user_favorite WHERE user_id = ? AND book_id = ?`, userID, bookID)
	if err != nil {
		return errors.Wrap(err, "failed to remove favorite")
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return errors.Errorf("favorite not found for user %d and book %d", userID, bookID)
	}
	return nil
}
