package service

import (
	"context"

	"github.com/dailypush/dailypush/internal/domain"
	"github.com/dailypush/dailypush/internal/errors"
	"github.com/dailypush/dailypush/internal/logger"
)

// to mock service in tests
type TopicService interface {
	Create(ctx context.Context, p domain.Principal, name domain.TopicName, isPublic bool) (domain.Topic, error)
	Get(ctx context.Context, p domain.Principal, id domain.TopicId) (domain.Topic, error)
	List(ctx context.Context, p domain.Principal, scope domain.TopicScope) ([]domain.Topic, error)
	Update(ctx context.Context, p domain.Principal, id domain.TopicId, data domain.TopicUpdateData) (domain.Topic, error)
	Delete(ctx context.Context, p domain.Principal, id domain.TopicId) error
}

type Topic struct {
	storage   TopicStorage
	validator TopicValidator
}

type TopicStorage interface {
	CreateTopic(ctx context.Context, data domain.TopicCreationData) (domain.Topic, error)
	GetTopic(ctx context.Context, id domain.TopicId) (domain.Topic, error)
	TopicsByAuthor(ctx context.Context, authorId domain.UserId) ([]domain.Topic, error)
	PublicTopics(ctx context.Context) ([]domain.Topic, error)
	UpdateTopic(ctx context.Context, id domain.TopicId, data domain.TopicUpdateData) (domain.Topic, error)
	DeleteTopic(ctx context.Context, id domain.TopicId) error
}

type TopicValidator interface {
	TopicName(name domain.TopicName) error
}

func NewTopic(storage TopicStorage, validator TopicValidator) *Topic {
	return &Topic{storage: storage, validator: validator}
}

// Create makes p the owner of the new topic.
func (t *Topic) Create(ctx context.Context, p domain.Principal, name domain.TopicName, isPublic bool) (domain.Topic, error) {
	if err := requireAuth(p); err != nil {
		return domain.Topic{}, err
	}
	if err := t.validator.TopicName(name); err != nil {
		return domain.Topic{}, err
	}

	topic, err := t.storage.CreateTopic(ctx, domain.TopicCreationData{Name: name, AuthorId: p.UserId, IsPublic: isPublic})
	if err != nil {
		return domain.Topic{}, err
	}
	logger.Log.Info("topic created", "topic_id", topic.Id, "user_id", p.UserId)
	return topic, nil
}

func (t *Topic) Get(ctx context.Context, p domain.Principal, id domain.TopicId) (domain.Topic, error) {
	topic, err := t.storage.GetTopic(ctx, id)
	if err != nil {
		return domain.Topic{}, err
	}
	if err := requireTopicVisible(p, topic); err != nil {
		return domain.Topic{}, err
	}
	return topic, nil
}

// List returns topics newest first. ScopeMine needs an authenticated principal.
func (t *Topic) List(ctx context.Context, p domain.Principal, scope domain.TopicScope) ([]domain.Topic, error) {
	switch scope {
	case domain.ScopeMine:
		if err := requireAuth(p); err != nil {
			return nil, err
		}
		return t.storage.TopicsByAuthor(ctx, p.UserId)
	case domain.ScopePublic:
		return t.storage.PublicTopics(ctx)
	default:
		return nil, errors.Validation("Unknown topic scope.")
	}
}

func (t *Topic) Update(ctx context.Context, p domain.Principal, id domain.TopicId, data domain.TopicUpdateData) (domain.Topic, error) {
	if err := requireAuth(p); err != nil {
		return domain.Topic{}, err
	}
	topic, err := t.storage.GetTopic(ctx, id)
	if err != nil {
		return domain.Topic{}, err
	}
	if err := requireOwner(p, topic.AuthorId); err != nil {
		return domain.Topic{}, err
	}
	if err := t.validator.TopicName(data.Name); err != nil {
		return domain.Topic{}, err
	}

	return t.storage.UpdateTopic(ctx, id, data)
}

// Delete removes the topic together with its posts.
func (t *Topic) Delete(ctx context.Context, p domain.Principal, id domain.TopicId) error {
	if err := requireAuth(p); err != nil {
		return err
	}
	topic, err := t.storage.GetTopic(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(p, topic.AuthorId); err != nil {
		return err
	}

	if err := t.storage.DeleteTopic(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("topic deleted", "topic_id", id, "user_id", p.UserId)
	return nil
}
