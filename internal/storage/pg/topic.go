package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dailypush/dailypush/internal/domain"
	internal_errors "github.com/dailypush/dailypush/internal/errors"
)

const topicColumns = `t.id, t.name, t.created, t.author_id, u.username, t.is_public
FROM topics t JOIN users u ON u.id = t.author_id`

// =========================================================================
// Public Methods (satisfy service.TopicStorage)
// =========================================================================

func (s *Storage) CreateTopic(ctx context.Context, data domain.TopicCreationData) (domain.Topic, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var topic domain.Topic
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := s.createTopic(ctx, tx, data)
		if err != nil {
			return err
		}
		topic, err = s.getTopic(ctx, tx, id)
		return err
	})
	return topic, err
}

func (s *Storage) GetTopic(ctx context.Context, id domain.TopicId) (domain.Topic, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return s.getTopic(ctx, s.db, id)
}

func (s *Storage) TopicsByAuthor(ctx context.Context, authorId domain.UserId) ([]domain.Topic, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return s.queryTopics(ctx, s.db, "SELECT "+topicColumns+" WHERE t.author_id = $1 ORDER BY t.created DESC, t.id DESC", authorId)
}

func (s *Storage) PublicTopics(ctx context.Context) ([]domain.Topic, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return s.queryTopics(ctx, s.db, "SELECT "+topicColumns+" WHERE t.is_public ORDER BY t.created DESC, t.id DESC")
}

func (s *Storage) UpdateTopic(ctx context.Context, id domain.TopicId, data domain.TopicUpdateData) (domain.Topic, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var topic domain.Topic
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.updateTopic(ctx, tx, id, data); err != nil {
			return err
		}
		var err error
		topic, err = s.getTopic(ctx, tx, id)
		return err
	})
	return topic, err
}

// DeleteTopic removes the topic and, by cascade, its posts.
func (s *Storage) DeleteTopic(ctx context.Context, id domain.TopicId) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM topics WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete topic: %w", err)
		}
		return checkAffected(result, "Topic not found")
	})
}

// SearchTopics matches q against the topic name or the author's username, ordered by name.
func (s *Storage) SearchTopics(ctx context.Context, q string, limit, offset int) ([]domain.Topic, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	pattern := containsPattern(q)
	var total int
	err := s.db.QueryRowContext(ctx,
		"SELECT count(*) FROM topics t JOIN users u ON u.id = t.author_id WHERE t.name ILIKE $1 OR u.username ILIKE $1",
		pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count topics: %w", err)
	}

	topics, err := s.queryTopics(ctx, s.db,
		"SELECT "+topicColumns+" WHERE t.name ILIKE $1 OR u.username ILIKE $1 ORDER BY t.name, t.id LIMIT $2 OFFSET $3",
		pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return topics, total, nil
}

// =========================================================================
// Internal Methods
// =========================================================================

func (s *Storage) createTopic(ctx context.Context, q Querier, data domain.TopicCreationData) (domain.TopicId, error) {
	var id domain.TopicId
	err := q.QueryRowContext(ctx, "INSERT INTO topics(name, author_id, is_public) VALUES($1, $2, $3) RETURNING id",
		data.Name, data.AuthorId, data.IsPublic).Scan(&id)
	if err != nil {
		err = mapConstraintError(err, "Topic already exists", "User not found")
		if internal_errors.IsNotFound(err) || internal_errors.IsIntegrity(err) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to insert topic: %w", err)
	}
	return id, nil
}

func (s *Storage) getTopic(ctx context.Context, q Querier, id domain.TopicId) (domain.Topic, error) {
	var t domain.Topic
	err := q.QueryRowContext(ctx, "SELECT "+topicColumns+" WHERE t.id = $1", id).
		Scan(&t.Id, &t.Name, &t.Created, &t.AuthorId, &t.AuthorUsername, &t.IsPublic)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Topic{}, internal_errors.NotFound("Topic not found")
		}
		return domain.Topic{}, fmt.Errorf("failed to query topic: %w", err)
	}
	return t, nil
}

func (s *Storage) updateTopic(ctx context.Context, q Querier, id domain.TopicId, data domain.TopicUpdateData) error {
	result, err := q.ExecContext(ctx, "UPDATE topics SET name = $1, is_public = $2 WHERE id = $3", data.Name, data.IsPublic, id)
	if err != nil {
		return fmt.Errorf("failed to update topic: %w", err)
	}
	return checkAffected(result, "Topic not found")
}

func (s *Storage) queryTopics(ctx context.Context, q Querier, query string, args ...any) ([]domain.Topic, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	topics := []domain.Topic{}
	for rows.Next() {
		var t domain.Topic
		if err := rows.Scan(&t.Id, &t.Name, &t.Created, &t.AuthorId, &t.AuthorUsername, &t.IsPublic); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate topics: %w", err)
	}
	return topics, nil
}
