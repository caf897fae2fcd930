package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/deepeshsaheb-tal/bookcritic/log"
	"github.com/deepeshsaheb-tal/bookcritic/model"
)

func (s *Store) GetBook(find *model.FindBook) (*model.Book, error) {
	if find.ID != nil {
		if cache, ok := s.BookCache.Load(*find.ID); ok {
			return cache.(*model.Book), nil
		}
	}

	list, err := s.ListBooks(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	book := list[0]
	s.BookCache.Store(book.ID, book)
	return book, nil
}

func bookWhere(find *model.FindBook) ([]string, []any) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "b.id = ?"), append(args, *v)
	}
	if v := find.Title; v != nil {
		where, args = append(where, "b.title = ?"), append(args, *v)
	}
	if v := find.ISBN; v != nil {
		where, args = append(where, "b.isbn = ?"), append(args, *v)
	}
	if v := find.Query; v != nil && *v != "" {
		pattern := "%" + strings.ToLower(*v) + "%"
		where = append(where, "(LOWER(b.title) LIKE ? OR LOWER(b.author) LIKE ?)")
		args = append(args, pattern, pattern)
	}
	if v := find.Genre; v != nil && *v != "" {
		where = append(where, "b.id IN (SELECT bgl.book_id FROM book_genre_link bgl JOIN genre g ON g.id = bgl.genre_id WHERE g.name = ?)")
		args = append(args, *v)
	}
	return where, args
}

func (s *Store) ListBooks(find *model.FindBook) ([]*model.Book, error) {
	where, args := bookWhere(find)

	// Default order by title
	orderBy := "b.title"
	if find.OrderBy != nil {
		switch *find.OrderBy {
		case "rating":
			orderBy = "b.average_rating DESC, b.title"
		case "reviews":
			orderBy = "b.total_reviews DESC, b.title"
		case "recent":
			orderBy = "b.created_ts DESC"
		}
	}

	query := `
        SELECT
            b.id,
            b.created_ts,
            b.updated_ts,
            b.title,
            b.author,
            b.isbn,
            b.description,
            b.publish_date,
            b.cover_url,
            b.average_rating,
            b.total_reviews,
            sortconcat(g.name) AS genres
        FROM book b
        LEFT JOIN book_genre_link bgl ON bgl.book_id = b.id
        LEFT JOIN genre g ON g.id = bgl.genre_id
    WHERE ` + strings.Join(where, " AND ") + `
    GROUP BY b.id ORDER BY ` + orderBy
	if v := find.Take; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
		if v := find.Skip; v != nil {
			query += fmt.Sprintf(" OFFSET %d", *v)
		}
	}

	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		var book model.Book
		var genres string
		if err := rows.Scan(
			&book.ID,
			&book.CreatedTs,
			&book.UpdatedTs,
			&book.Title,
			&book.Author,
			&book.ISBN,
			&book.Description,
			&book.PublishDate,
			&book.CoverURL,
			&book.AverageRating,
			&book.TotalReviews,
			&genres,
		); err != nil {
			return nil, err
		}
		if genres != "" {
			book.Genres = strings.Split(genres, ",")
		} else {
			book.Genres = []string{}
		}
		list = append(list, &book)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// CountBooks returns the total number of books matching find, ignoring pagination.
func (s *Store) CountBooks(find *model.FindBook) (int, error) {
	where, args := bookWhere(find)
	query := `SELECT COUNT(*) FROM book b WHERE ` + strings.Join(where, " AND ")

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count books")
	}
	return count, nil
}

func (s *Store) CreateBook(create *model.Book) (*model.Book, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	stmt := `
		INSERT INTO book (title, author, isbn, description, publish_date, cover_url)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, created_ts, updated_ts, title, author, isbn, description, publish_date, cover_url, average_rating, total_reviews
	`
	var book model.Book
	if err := tx.QueryRow(stmt,
		create.Title,
		create.Author,
		create.ISBN,
		create.Description,
		create.PublishDate,
		create.CoverURL,
	).Scan(
		&book.ID,
		&book.CreatedTs,
		&book.UpdatedTs,
		&book.Title,
		&book.Author,
		&book.ISBN,
		&book.Description,
		&book.PublishDate,
		&book.CoverURL,
		&book.AverageRating,
		&book.TotalReviews,
	); err != nil {
		return nil, err
	}

	if err := linkGenres(tx, book.ID, create.Genres); err != nil {
		return nil, err
	}
	book.Genres = normalizeGenres(create.Genres)

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &book, nil
}

func (s *Store) UpdateBook(id int32, update *model.BookUpdateRequest) (*model.Book, error) {
	set, args := []string{}, []any{}

	if v := update.Title; v != nil {
		set, args = append(set, "title = ?"), append(args, *v)
	}
	if v := update.Author; v != nil {
		set, args = append(set, "author = ?"), append(args, *v)
	}
	if v := update.ISBN; v != nil {
		set, args = append(set, "isbn = ?"), append(args, *v)
	}
	if v := update.Description; v != nil {
		set, args = append(set, "description = ?"), append(args, *v)
	}
	if v := update.PublishDate; v != nil {
		set, args = append(set, "publish_date = ?"), append(args, *v)
	}
	if v := update.CoverURL; v != nil {
		set, args = append(set, "cover_url = ?"), append(args, *v)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if len(set) > 0 {
		set = append(set, "updated_ts = strftime('%s', 'now')")
		args = append(args, id)
		stmt := `UPDATE book SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
		if _, err := tx.Exec(stmt, args...); err != nil {
			return nil, errors.Wrap(err, "failed to update book")
		}
	}

	if update.Genres != nil {
		if _, err := tx.Exec(`DELETE FROM book_genre_link WHERE book_id = ?`, id); err != nil {
			return nil, errors.Wrap(err, "failed to clear book genres")
		}
		if err := linkGenres(tx, id, *update.Genres); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.BookCache.Delete(id)
	return s.GetBook(&model.FindBook{ID: &id})
}

func (s *Store) RemoveBook(bookID int32) error {
	stmt := `DELETE FROM book WHERE id = ?`

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(stmt, bookID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return errors.Errorf("book not found with ID: %d", bookID)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.BookCache.Delete(bookID)
	return nil
}

// ListGenres returns all known genre names, sorted.
func (s *Store) ListGenres() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM genre ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		list = append(list, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func linkGenres(tx *sql.Tx, bookID int32, genres []string) error {
	for _, name := range normalizeGenres(genres) {
		if _, err := tx.Exec(`INSERT INTO genre (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name); err != nil {
			return errors.Wrapf(err, "failed to insert genre %q", name)
		}
		if _, err := tx.Exec(`
			INSERT INTO book_genre_link (book_id, genre_id)
			SELECT ?, id FROM genre WHERE name = ?
			ON CONFLICT(book_id, genre_id) DO NOTHING
		`, bookID, name); err != nil {
			return errors.Wrapf(err, "failed to link genre %q", name)
		}
	}
	return nil
}

func normalizeGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	seen := make(map[string]bool)
	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}
