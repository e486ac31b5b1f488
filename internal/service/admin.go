package service

import (
	"context"
	"fmt"

	"github.com/dailypush/dailypush/internal/domain"
	"github.com/dailypush/dailypush/internal/errors"
	"github.com/dailypush/dailypush/internal/logger"
)

// Admin manages every record regardless of ownership. Each call re-checks
// that the principal is the configured administrator.
type Admin struct {
	storage   AdminStorage
	validator AdminValidator
	renderer  domain.BodyRenderer
	cfg       AdminConfig
}

type AdminConfig struct {
	Username      domain.Username
	UsersPerPage  int
	TopicsPerPage int
	PostsPerPage  int
}

type AdminStorage interface {
	Stats(ctx context.Context) (domain.Stats, error)

	SearchUsers(ctx context.Context, q string, limit, offset int) ([]domain.User, int, error)
	UserById(ctx context.Context, id domain.UserId) (domain.User, error)
	UserByUsername(ctx context.Context, username domain.Username) (domain.User, error)
	UpdateUsername(ctx context.Context, id domain.UserId, username domain.Username) error
	DeleteUser(ctx context.Context, id domain.UserId) error

	SearchTopics(ctx context.Context, q string, limit, offset int) ([]domain.Topic, int, error)
	CreateTopic(ctx context.Context, data domain.TopicCreationData) (domain.Topic, error)
	UpdateTopic(ctx context.Context, id domain.TopicId, data domain.TopicUpdateData) (domain.Topic, error)
	DeleteTopic(ctx context.Context, id domain.TopicId) error

	SearchPosts(ctx context.Context, q string, limit, offset int) ([]domain.Post, int, error)
	CreatePost(ctx context.Context, data domain.PostCreationData) (domain.Post, error)
	GetPost(ctx context.Context, id domain.PostId) (domain.Post, error)
	UpdatePost(ctx context.Context, id domain.PostId, data domain.PostUpdateData) (domain.Post, error)
	DeletePost(ctx context.Context, id domain.PostId) error
}

type AdminValidator interface {
	Username(username domain.Username) error
	TopicValidator
	PostValidator
}

func NewAdmin(storage AdminStorage, validator AdminValidator, renderer domain.BodyRenderer, cfg AdminConfig) *Admin {
	cfg.UsersPerPage = max(1, cfg.UsersPerPage)
	cfg.TopicsPerPage = max(1, cfg.TopicsPerPage)
	cfg.PostsPerPage = max(1, cfg.PostsPerPage)
	return &Admin{storage: storage, validator: validator, renderer: renderer, cfg: cfg}
}

// IsAdmin is the single gate of the admin surface.
func (a *Admin) IsAdmin(p domain.Principal) bool {
	return p.IsAdmin(a.cfg.Username)
}

func (a *Admin) gate(p domain.Principal) error {
	if !a.IsAdmin(p) {
		return errors.Forbidden()
	}
	return nil
}

func (a *Admin) Stats(ctx context.Context, p domain.Principal) (domain.Stats, error) {
	if err := a.gate(p); err != nil {
		return domain.Stats{}, err
	}
	return a.storage.Stats(ctx)
}

// =========================================================================
// Users
// =========================================================================

func (a *Admin) Users(ctx context.Context, p domain.Principal, q string, page int) ([]domain.User, domain.Pagination, error) {
	if err := a.gate(p); err != nil {
		return nil, domain.Pagination{}, err
	}
	pg := domain.NewPagination(page, a.cfg.UsersPerPage, 0)
	users, total, err := a.storage.SearchUsers(ctx, q, pg.PerPage, pg.Offset())
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	pg.Total = total
	return users, pg, nil
}

func (a *Admin) RenameUser(ctx context.Context, p domain.Principal, id domain.UserId, username domain.Username) (domain.User, error) {
	if err := a.gate(p); err != nil {
		return domain.User{}, err
	}
	if err := a.validator.Username(username); err != nil {
		return domain.User{}, err
	}

	existing, err := a.storage.UserByUsername(ctx, username)
	if err == nil && existing.Id != id {
		return domain.User{}, errors.Validation(fmt.Sprintf("Username '%s' is already registered.", username))
	}
	if err != nil && !errors.IsNotFound(err) {
		return domain.User{}, err
	}

	if err := a.storage.UpdateUsername(ctx, id, username); err != nil {
		return domain.User{}, err
	}
	logger.Log.Info("admin renamed user", "user_id", id, "admin_id", p.UserId)
	return a.storage.UserById(ctx, id)
}

// DeleteUser removes the user with all of their topics and posts.
func (a *Admin) DeleteUser(ctx context.Context, p domain.Principal, id domain.UserId) error {
	if err := a.gate(p); err != nil {
		return err
	}
	if err := a.storage.DeleteUser(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("admin deleted user", "user_id", id, "admin_id", p.UserId)
	return nil
}

// =========================================================================
// Topics
// =========================================================================

func (a *Admin) Topics(ctx context.Context, p domain.Principal, q string, page int) ([]domain.Topic, domain.Pagination, error) {
	if err := a.gate(p); err != nil {
		return nil, domain.Pagination{}, err
	}
	pg := domain.NewPagination(page, a.cfg.TopicsPerPage, 0)
	topics, total, err := a.storage.SearchTopics(ctx, q, pg.PerPage, pg.Offset())
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	pg.Total = total
	return topics, pg, nil
}

// CreateTopic takes the author explicitly.
func (a *Admin) CreateTopic(ctx context.Context, p domain.Principal, data domain.TopicCreationData) (domain.Topic, error) {
	if err := a.gate(p); err != nil {
		return domain.Topic{}, err
	}
	if err := a.validator.TopicName(data.Name); err != nil {
		return domain.Topic{}, err
	}
	return a.storage.CreateTopic(ctx, data)
}

func (a *Admin) UpdateTopic(ctx context.Context, p domain.Principal, id domain.TopicId, data domain.TopicUpdateData) (domain.Topic, error) {
	if err := a.gate(p); err != nil {
		return domain.Topic{}, err
	}
	if err := a.validator.TopicName(data.Name); err != nil {
		return domain.Topic{}, err
	}
	return a.storage.UpdateTopic(ctx, id, data)
}

func (a *Admin) DeleteTopic(ctx context.Context, p domain.Principal, id domain.TopicId) error {
	if err := a.gate(p); err != nil {
		return err
	}
	return a.storage.DeleteTopic(ctx, id)
}

// =========================================================================
// Posts
// =========================================================================

func (a *Admin) Posts(ctx context.Context, p domain.Principal, q string, page int) ([]domain.Post, domain.Pagination, error) {
	if err := a.gate(p); err != nil {
		return nil, domain.Pagination{}, err
	}
	pg := domain.NewPagination(page, a.cfg.PostsPerPage, 0)
	posts, total, err := a.storage.SearchPosts(ctx, q, pg.PerPage, pg.Offset())
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	pg.Total = total
	return posts, pg, nil
}

// CreatePost takes the topic explicitly; the post belongs to that topic's owner.
func (a *Admin) CreatePost(ctx context.Context, p domain.Principal, topicId domain.TopicId, title domain.PostTitle, body domain.PostBody) (domain.Post, error) {
	if err := a.gate(p); err != nil {
		return domain.Post{}, err
	}
	if err := a.validatePost(title, body); err != nil {
		return domain.Post{}, err
	}

	post := domain.Post{TopicId: topicId, Title: title}
	post.SetBody(body, a.renderer)
	return a.storage.CreatePost(ctx, domain.PostCreationData{TopicId: post.TopicId, Title: post.Title, Body: post.Body, BodyHTML: post.BodyHTML})
}

func (a *Admin) UpdatePost(ctx context.Context, p domain.Principal, id domain.PostId, title domain.PostTitle, body domain.PostBody) (domain.Post, error) {
	if err := a.gate(p); err != nil {
		return domain.Post{}, err
	}
	if err := a.validatePost(title, body); err != nil {
		return domain.Post{}, err
	}

	post, err := a.storage.GetPost(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}
	post.Title = title
	post.SetBody(body, a.renderer)
	return a.storage.UpdatePost(ctx, id, domain.PostUpdateData{Title: post.Title, Body: post.Body, BodyHTML: post.BodyHTML})
}

func (a *Admin) DeletePost(ctx context.Context, p domain.Principal, id domain.PostId) error {
	if err := a.gate(p); err != nil {
		return err
	}
	return a.storage.DeletePost(ctx, id)
}

func (a *Admin) validatePost(title domain.PostTitle, body domain.PostBody) error {
	if err := a.validator.PostTitle(title); err != nil {
		return err
	}
	return a.validator.PostBody(body)
}
