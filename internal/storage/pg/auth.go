package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dailypush/dailypush/internal/domain"
	internal_errors "github.com/dailypush/dailypush/internal/errors"
)

// =========================================================================
// Public Methods (satisfy service.AuthStorage and service.AdminStorage)
// =========================================================================

func (s *Storage) SaveUser(ctx context.Context, user domain.User) (domain.UserId, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var id domain.UserId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveUser(ctx, tx, user)
		return err
	})
	return id, err
}

func (s *Storage) UserByUsername(ctx context.Context, username domain.Username) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return s.userBy(ctx, s.db, "username", username)
}

func (s *Storage) UserById(ctx context.Context, id domain.UserId) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return s.userBy(ctx, s.db, "id", id)
}

func (s *Storage) UpdateUsername(ctx context.Context, id domain.UserId, username domain.Username) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updateUsername(ctx, tx, id, username)
	})
}

// DeleteUser removes the user; topics and posts go with it (ON DELETE CASCADE).
func (s *Storage) DeleteUser(ctx context.Context, id domain.UserId) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.deleteUser(ctx, tx, id)
	})
}

// SearchUsers matches q anywhere in the username, ordered by username.
func (s *Storage) SearchUsers(ctx context.Context, q string, limit, offset int) ([]domain.User, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return s.searchUsers(ctx, s.db, q, limit, offset)
}

// =========================================================================
// Internal Methods
// =========================================================================

func (s *Storage) saveUser(ctx context.Context, q Querier, user domain.User) (domain.UserId, error) {
	var id domain.UserId
	err := q.QueryRowContext(ctx, "INSERT INTO users(username, hash) VALUES($1, $2) RETURNING id",
		user.Username, user.PassHash).Scan(&id)
	if err != nil {
		err = mapConstraintError(err, fmt.Sprintf("Username '%s' is already registered.", user.Username), "")
		if internal_errors.IsIntegrity(err) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

// column is never user input
func (s *Storage) userBy(ctx context.Context, q Querier, column string, value any) (domain.User, error) {
	var user domain.User
	err := q.QueryRowContext(ctx, "SELECT id, username, hash FROM users WHERE "+column+" = $1", value).
		Scan(&user.Id, &user.Username, &user.PassHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (s *Storage) updateUsername(ctx context.Context, q Querier, id domain.UserId, username domain.Username) error {
	result, err := q.ExecContext(ctx, "UPDATE users SET username = $1 WHERE id = $2", username, id)
	if err != nil {
		err = mapConstraintError(err, fmt.Sprintf("Username '%s' is already registered.", username), "")
		if internal_errors.IsIntegrity(err) {
			return err
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return checkAffected(result, "User not found")
}

func (s *Storage) deleteUser(ctx context.Context, q Querier, id domain.UserId) error {
	result, err := q.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return checkAffected(result, "User not found")
}

func (s *Storage) searchUsers(ctx context.Context, q Querier, query string, limit, offset int) ([]domain.User, int, error) {
	pattern := containsPattern(query)

	var total int
	if err := q.QueryRowContext(ctx, "SELECT count(*) FROM users WHERE username ILIKE $1", pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	rows, err := q.QueryContext(ctx,
		"SELECT id, username, hash FROM users WHERE username ILIKE $1 ORDER BY username, id LIMIT $2 OFFSET $3",
		pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Id, &u.Username, &u.PassHash); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, total, nil
}
