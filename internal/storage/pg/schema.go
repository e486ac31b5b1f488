package pg

import (
	"context"
	"database/sql"
	"fmt"
)

const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS users (
    id       BIGSERIAL PRIMARY KEY,
    username VARCHAR(50) NOT NULL UNIQUE,
    hash     VARCHAR(128) NOT NULL
);

CREATE TABLE IF NOT EXISTS topics (
    id        BIGSERIAL PRIMARY KEY,
    name      VARCHAR(100) NOT NULL,
    created   TIMESTAMPTZ NOT NULL DEFAULT now(),
    author_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    is_public BOOLEAN NOT NULL DEFAULT false
);
CREATE INDEX IF NOT EXISTS ix_topics_name ON topics(name);
CREATE INDEX IF NOT EXISTS ix_topics_author ON topics(author_id);

CREATE TABLE IF NOT EXISTS posts (
    id        BIGSERIAL PRIMARY KEY,
    created   TIMESTAMPTZ NOT NULL DEFAULT now(),
    title     VARCHAR(100) NOT NULL DEFAULT '',
    body      TEXT NOT NULL,
    body_html TEXT NOT NULL,
    topic_id  BIGINT NOT NULL REFERENCES topics(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS ix_posts_title ON posts(title);
CREATE INDEX IF NOT EXISTS ix_posts_topic_created ON posts(topic_id, created DESC, id DESC);
`

const dropSchemaSQL = `DROP TABLE IF EXISTS posts, topics, users CASCADE;`

// CreateSchema is idempotent.
func (s *Storage) CreateSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, createSchemaSQL); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		return nil
	})
}

// ResetSchema drops every table and recreates it. All data is lost.
func (s *Storage) ResetSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, dropSchemaSQL); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if _, err := tx.ExecContext(ctx, createSchemaSQL); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		return nil
	})
}
