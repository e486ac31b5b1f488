package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dailypush/dailypush/internal/domain"
	internal_errors "github.com/dailypush/dailypush/internal/errors"
)

// Posts carry their topic's name, owner and visibility.
const postColumns = `p.id, p.created, p.title, p.body, p.body_html, p.topic_id, t.name, t.author_id, t.is_public
FROM posts p JOIN topics t ON t.id = p.topic_id`

// =========================================================================
// Public Methods (satisfy service.PostStorage)
// =========================================================================

// CreatePost writes body and body_html in one statement.
func (s *Storage) CreatePost(ctx context.Context, data domain.PostCreationData) (domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var post domain.Post
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		id, err := s.createPost(ctx, tx, data)
		if err != nil {
			return err
		}
		post, err = s.getPost(ctx, tx, id)
		return err
	})
	return post, err
}

func (s *Storage) GetPost(ctx context.Context, id domain.PostId) (domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return s.getPost(ctx, s.db, id)
}

// PostsByTopic returns one page of the topic's posts, newest first, and the total count.
func (s *Storage) PostsByTopic(ctx context.Context, topicId domain.TopicId, limit, offset int) ([]domain.Post, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM posts WHERE topic_id = $1", topicId).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	posts, err := s.queryPosts(ctx, s.db,
		"SELECT "+postColumns+" WHERE p.topic_id = $1 ORDER BY p.created DESC, p.id DESC LIMIT $2 OFFSET $3",
		topicId, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *Storage) UpdatePost(ctx context.Context, id domain.PostId, data domain.PostUpdateData) (domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var post domain.Post
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "UPDATE posts SET title = $1, body = $2, body_html = $3 WHERE id = $4",
			data.Title, data.Body, data.BodyHTML, id)
		if err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}
		if err := checkAffected(result, "Post not found"); err != nil {
			return err
		}
		post, err = s.getPost(ctx, tx, id)
		return err
	})
	return post, err
}

func (s *Storage) DeletePost(ctx context.Context, id domain.PostId) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		return checkAffected(result, "Post not found")
	})
}

// SearchPosts matches q against the post title or its topic's name, newest first.
func (s *Storage) SearchPosts(ctx context.Context, q string, limit, offset int) ([]domain.Post, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	pattern := containsPattern(q)
	var total int
	err := s.db.QueryRowContext(ctx,
		"SELECT count(*) FROM posts p JOIN topics t ON t.id = p.topic_id WHERE p.title ILIKE $1 OR t.name ILIKE $1",
		pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	posts, err := s.queryPosts(ctx, s.db,
		"SELECT "+postColumns+" WHERE p.title ILIKE $1 OR t.name ILIKE $1 ORDER BY p.created DESC, p.id DESC LIMIT $2 OFFSET $3",
		pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *Storage) Stats(ctx context.Context) (domain.Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var st domain.Stats
	err := s.db.QueryRowContext(ctx,
		"SELECT (SELECT count(*) FROM users), (SELECT count(*) FROM topics), (SELECT count(*) FROM posts)").
		Scan(&st.Users, &st.Topics, &st.Posts)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("failed to count records: %w", err)
	}
	return st, nil
}

// =========================================================================
// Internal Methods
// =========================================================================

func (s *Storage) createPost(ctx context.Context, q Querier, data domain.PostCreationData) (domain.PostId, error) {
	var id domain.PostId
	err := q.QueryRowContext(ctx, "INSERT INTO posts(title, body, body_html, topic_id) VALUES($1, $2, $3, $4) RETURNING id",
		data.Title, data.Body, data.BodyHTML, data.TopicId).Scan(&id)
	if err != nil {
		err = mapConstraintError(err, "Post already exists", "Topic not found")
		if internal_errors.IsNotFound(err) || internal_errors.IsIntegrity(err) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to insert post: %w", err)
	}
	return id, nil
}

func (s *Storage) getPost(ctx context.Context, q Querier, id domain.PostId) (domain.Post, error) {
	var p domain.Post
	err := q.QueryRowContext(ctx, "SELECT "+postColumns+" WHERE p.id = $1", id).
		Scan(&p.Id, &p.Created, &p.Title, &p.Body, &p.BodyHTML, &p.TopicId, &p.TopicName, &p.OwnerId, &p.IsPublic)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, internal_errors.NotFound("Post not found")
		}
		return domain.Post{}, fmt.Errorf("failed to query post: %w", err)
	}
	return p, nil
}

func (s *Storage) queryPosts(ctx context.Context, q Querier, query string, args ...any) ([]domain.Post, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.Id, &p.Created, &p.Title, &p.Body, &p.BodyHTML, &p.TopicId, &p.TopicName, &p.OwnerId, &p.IsPublic); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}
