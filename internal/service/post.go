package service

import (
	"context"

	"github.com/dailypush/dailypush/internal/domain"
	"github.com/dailypush/dailypush/internal/logger"
)

// to mock service in tests
type PostService interface {
	Create(ctx context.Context, p domain.Principal, topicId domain.TopicId, title domain.PostTitle, body domain.PostBody) (domain.Post, error)
	Get(ctx context.Context, p domain.Principal, id domain.PostId) (domain.Post, error)
	ListByTopic(ctx context.Context, p domain.Principal, topicId domain.TopicId, page int) (domain.PostPage, error)
	Update(ctx context.Context, p domain.Principal, id domain.PostId, title domain.PostTitle, body domain.PostBody) (domain.Post, error)
	Delete(ctx context.Context, p domain.Principal, id domain.PostId) error
}

type Post struct {
	storage   PostStorage
	validator PostValidator
	renderer  domain.BodyRenderer
	perPage   int
}

type PostStorage interface {
	GetTopic(ctx context.Context, id domain.TopicId) (domain.Topic, error)
	CreatePost(ctx context.Context, data domain.PostCreationData) (domain.Post, error)
	GetPost(ctx context.Context, id domain.PostId) (domain.Post, error)
	PostsByTopic(ctx context.Context, topicId domain.TopicId, limit, offset int) ([]domain.Post, int, error)
	UpdatePost(ctx context.Context, id domain.PostId, data domain.PostUpdateData) (domain.Post, error)
	DeletePost(ctx context.Context, id domain.PostId) error
}

type PostValidator interface {
	PostTitle(title domain.PostTitle) error
	PostBody(body domain.PostBody) error
}

func NewPost(storage PostStorage, validator PostValidator, renderer domain.BodyRenderer, perPage int) *Post {
	return &Post{storage: storage, validator: validator, renderer: renderer, perPage: max(1, perPage)}
}

// Create adds a post to a topic owned by p, public or not.
func (s *Post) Create(ctx context.Context, p domain.Principal, topicId domain.TopicId, title domain.PostTitle, body domain.PostBody) (domain.Post, error) {
	if err := requireAuth(p); err != nil {
		return domain.Post{}, err
	}
	topic, err := s.storage.GetTopic(ctx, topicId)
	if err != nil {
		return domain.Post{}, err
	}
	if err := requireOwner(p, topic.AuthorId); err != nil {
		return domain.Post{}, err
	}
	if err := s.validate(title, body); err != nil {
		return domain.Post{}, err
	}

	post := domain.Post{TopicId: topicId, Title: title}
	post.SetBody(body, s.renderer)

	created, err := s.storage.CreatePost(ctx, domain.PostCreationData{
		TopicId:  post.TopicId,
		Title:    post.Title,
		Body:     post.Body,
		BodyHTML: post.BodyHTML,
	})
	if err != nil {
		return domain.Post{}, err
	}
	logger.Log.Info("post created", "post_id", created.Id, "topic_id", topicId, "user_id", p.UserId)
	return created, nil
}

// Get follows the visibility of the post's topic.
func (s *Post) Get(ctx context.Context, p domain.Principal, id domain.PostId) (domain.Post, error) {
	post, err := s.storage.GetPost(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}
	if err := requirePostVisible(p, post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// ListByTopic returns one page of posts, newest first. Pages past the end are empty.
func (s *Post) ListByTopic(ctx context.Context, p domain.Principal, topicId domain.TopicId, page int) (domain.PostPage, error) {
	topic, err := s.storage.GetTopic(ctx, topicId)
	if err != nil {
		return domain.PostPage{}, err
	}
	if err := requireTopicVisible(p, topic); err != nil {
		return domain.PostPage{}, err
	}

	pagination := domain.NewPagination(page, s.perPage, 0)
	posts, total, err := s.storage.PostsByTopic(ctx, topicId, pagination.PerPage, pagination.Offset())
	if err != nil {
		return domain.PostPage{}, err
	}
	pagination.Total = total

	return domain.PostPage{Topic: topic, Posts: posts, Pagination: pagination}, nil
}

// Update replaces title and body. A blank title is kept blank; the body is re-rendered.
func (s *Post) Update(ctx context.Context, p domain.Principal, id domain.PostId, title domain.PostTitle, body domain.PostBody) (domain.Post, error) {
	if err := requireAuth(p); err != nil {
		return domain.Post{}, err
	}
	post, err := s.storage.GetPost(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}
	if err := requireOwner(p, post.OwnerId); err != nil {
		return domain.Post{}, err
	}
	if err := s.validate(title, body); err != nil {
		return domain.Post{}, err
	}

	post.Title = title
	post.SetBody(body, s.renderer)
	return s.storage.UpdatePost(ctx, id, domain.PostUpdateData{Title: post.Title, Body: post.Body, BodyHTML: post.BodyHTML})
}

func (s *Post) Delete(ctx context.Context, p domain.Principal, id domain.PostId) error {
	if err := requireAuth(p); err != nil {
		return err
	}
	post, err := s.storage.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(p, post.OwnerId); err != nil {
		return err
	}

	if err := s.storage.DeletePost(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("post deleted", "post_id", id, "user_id", p.UserId)
	return nil
}

func (s *Post) validate(title domain.PostTitle, body domain.PostBody) error {
	if err := s.validator.PostTitle(title); err != nil {
		return err
	}
	return s.validator.PostBody(body)
}
