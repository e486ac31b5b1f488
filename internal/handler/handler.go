package handler

import (
	"context"

	"github.com/dailypush/dailypush/internal/config"
	"github.com/dailypush/dailypush/internal/domain"
	"github.com/dailypush/dailypush/internal/service"
)

// HealthChecker reports whether the database answers.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// AdminService is the surface of service.Admin used by the admin handlers.
type AdminService interface {
	IsAdmin(p domain.Principal) bool
	Stats(ctx context.Context, p domain.Principal) (domain.Stats, error)

	Users(ctx context.Context, p domain.Principal, q string, page int) ([]domain.User, domain.Pagination, error)
	RenameUser(ctx context.Context, p domain.Principal, id domain.UserId, username domain.Username) (domain.User, error)
	DeleteUser(ctx context.Context, p domain.Principal, id domain.UserId) error

	Topics(ctx context.Context, p domain.Principal, q string, page int) ([]domain.Topic, domain.Pagination, error)
	CreateTopic(ctx context.Context, p domain.Principal, data domain.TopicCreationData) (domain.Topic, error)
	UpdateTopic(ctx context.Context, p domain.Principal, id domain.TopicId, data domain.TopicUpdateData) (domain.Topic, error)
	DeleteTopic(ctx context.Context, p domain.Principal, id domain.TopicId) error

	Posts(ctx context.Context, p domain.Principal, q string, page int) ([]domain.Post, domain.Pagination, error)
	CreatePost(ctx context.Context, p domain.Principal, topicId domain.TopicId, title domain.PostTitle, body domain.PostBody) (domain.Post, error)
	UpdatePost(ctx context.Context, p domain.Principal, id domain.PostId, title domain.PostTitle, body domain.PostBody) (domain.Post, error)
	DeletePost(ctx context.Context, p domain.Principal, id domain.PostId) error
}

type Handler struct {
	auth   service.AuthService
	topic  service.TopicService
	post   service.PostService
	admin  AdminService
	health HealthChecker
	cfg    *config.Config
}

func New(auth service.AuthService, topic service.TopicService, post service.PostService, admin AdminService, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{
		auth:   auth,
		topic:  topic,
		post:   post,
		admin:  admin,
		health: health,
		cfg:    cfg,
	}
}
