package store

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/deepeshsaheb-tal/bookcritic/log"
	"github.com/deepeshsaheb-tal/bookcritic/model"
)

func (s *Store) GetUser(find *model.FindUser) (*model.User, error) {
	if find.ID != nil {
		if cache, ok := s.UserCache.Load(*find.ID); ok {
			return cache.(*model.User), nil
		}
	}

	list, err := s.ListUsers(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	user := list[0]
	s.UserCache.Store(user.ID, user)
	return user, nil
}

func (s *Store) ListUsers(find *model.FindUser) ([]*model.User, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.RowStatus; v != nil {
		where, args = append(where, "row_status = ?"), append(args, *v)
	}
	if v := find.Username; v != nil {
		where, args = append(where, "username = ?"), append(args, *v)
	}
	if v := find.Role; v != nil {
		where, args = append(where, "role = ?"), append(args, *v)
	}
	if v := find.Email; v != nil {
		where, args = append(where, "email = ?"), append(args, *v)
	}

	// Here will return password_hash, so need to be careful.
	// If need to response to client, use response.UserResponse to strip it.
	query := `
		SELECT
			id,
			row_status,
			created_ts,
			updated_ts,
			username,
			role,
			email,
			nickname,
			password_hash,
			avatar_url,
			last_login_ts,
			review_count
		FROM user
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC`
	if v := find.Take; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
		if v := find.Skip; v != nil {
			query += fmt.Sprintf(" OFFSET %d", *v)
		}
	}

	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Debug("Error querying users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.User, 0)
	for rows.Next() {
		var user model.User
		// The ordering of scan targets must match the query columns.
		if err := rows.Scan(
			&user.ID,
			&user.RowStatus,
			&user.CreatedTs,
			&user.UpdatedTs,
			&user.Username,
			&user.Role,
			&user.Email,
			&user.Nickname,
			&user.PasswordHash,
			&user.AvatarURL,
			&user.LastLoginTs,
			&user.ReviewCount,
		); err != nil {
			return nil, err
		}
		list = append(list, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// CountUsers returns the total number of users matching find, ignoring pagination.
func (s *Store) CountUsers(find *model.FindUser) (int, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.RowStatus; v != nil {
		where, args = append(where, "row_status = ?"), append(args, *v)
	}
	if v := find.Role; v != nil {
		where, args = append(where, "role = ?"), append(args, *v)
	}

	query := `SELECT COUNT(*) FROM user WHERE ` + strings.Join(where, " AND ")
	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}
	return count, nil
}

func (s *Store) CreateUser(create *model.User) (*model.User, error) {
	fields := []string{"`username`", "`role`", "`email`", "`nickname`", "`password_hash`", "`avatar_url`"}
	placeholder := []string{"?", "?", "?", "?", "?", "?"}
	args := []any{create.Username, create.Role, create.Email, create.Nickname, create.PasswordHash, create.AvatarURL}
	stmt := "INSERT INTO user (" + strings.Join(fields, ", ") + ") VALUES (" + strings.Join(placeholder, ", ") + ") RETURNING id, row_status, created_ts, updated_ts, username, role, email, nickname, avatar_url, last_login_ts, review_count"

	log.Fallback("Debug", fmt.Sprintf("CreateUser\nstmt: %s\nargs: %v\n", stmt, args))

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var user model.User
	if err := tx.QueryRow(stmt, args...).Scan(
		&user.ID,
		&user.RowStatus,
		&user.CreatedTs,
		&user.UpdatedTs,
		&user.Username,
		&user.Role,
		&user.Email,
		&user.Nickname,
		&user.AvatarURL,
		&user.LastLoginTs,
		&user.ReviewCount,
	); err != nil {
		return nil, err
	}
	user.PasswordHash = create.PasswordHash

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Store) UpdateUser(update *model.UpdateUser) (*model.User, error) {
	set, args := []string{}, []any{}

	if v := update.RowStatus; v != nil {
		set, args = append(set, "row_status = ?"), append(args, *v)
	}
	if v := update.Role; v != nil {
		set, args = append(set, "role = ?"), append(args, *v)
	}
	if v := update.Nickname; v != nil {
		set, args = append(set, "nickname = ?"), append(args, *v)
	}
	if v := update.AvatarURL; v != nil {
		set, args = append(set, "avatar_url = ?"), append(args, *v)
	}
	if len(set) == 0 {
		return nil, errors.New("nothing to update")
	}
	set = append(set, "updated_ts = strftime('%s', 'now')")
	args = append(args, update.ID)

	stmt := `UPDATE user SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
	if _, err := s.db.Exec(stmt, args...); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	s.UserCache.Delete(update.ID)
	return s.GetUser(&model.FindUser{ID: &update.ID})
}

func (s *Store) SetLastLogin(userID int32) error {
	stmt := `UPDATE user SET last_login_ts = strftime('%s', 'now') WHERE id = ?`
	if _, err := s.db.Exec(stmt, userID); err != nil {
		return errors.Wrap(err, "unable to update last login date")
	}
	s.UserCache.Delete(userID)
	return nil
}
