package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dailypush/dailypush/internal/domain"
	"github.com/dailypush/dailypush/internal/errors"
)

// memStorage is an in-memory stand-in for the postgres storage, including
// its cascading deletes, for tests that exercise several services together.
type memStorage struct {
	mu     sync.Mutex
	users  map[domain.UserId]domain.User
	topics map[domain.TopicId]domain.Topic
	posts  map[domain.PostId]domain.Post
	lastId int64
	clock  time.Time
}

func newMemStorage() *memStorage {
	return &memStorage{
		users:  map[domain.UserId]domain.User{},
		topics: map[domain.TopicId]domain.Topic{},
		posts:  map[domain.PostId]domain.Post{},
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStorage) nextId() int64 {
	m.lastId++
	return m.lastId
}

func (m *memStorage) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStorage) SaveUser(_ context.Context, user domain.User) (domain.UserId, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return 0, errors.Integrity(fmt.Sprintf("Username '%s' is already registered.", user.Username))
		}
	}
	user.Id = m.nextId()
	m.users[user.Id] = user
	return user.Id, nil
}

func (m *memStorage) UserByUsername(_ context.Context, username domain.Username) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, errors.NotFound("User not found")
}

func (m *memStorage) UserById(_ context.Context, id domain.UserId) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, errors.NotFound("User not found")
	}
	return u, nil
}

func (m *memStorage) UpdateUsername(_ context.Context, id domain.UserId, username domain.Username) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return errors.NotFound("User not found")
	}
	u.Username = username
	m.users[id] = u
	return nil
}

func (m *memStorage) DeleteUser(_ context.Context, id domain.UserId) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return errors.NotFound("User not found")
	}
	delete(m.users, id)
	for tid, t := range m.topics {
		if t.AuthorId == id {
			m.deleteTopicLocked(tid)
		}
	}
	return nil
}

func (m *memStorage) SearchUsers(_ context.Context, q string, limit, offset int) ([]domain.User, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.User
	for _, u := range m.users {
		if containsFold(u.Username, q) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return window(out, limit, offset)
}

func (m *memStorage) CreateTopic(_ context.Context, data domain.TopicCreationData) (domain.Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	author, ok := m.users[data.AuthorId]
	if !ok {
		return domain.Topic{}, errors.NotFound("User not found")
	}
	t := domain.Topic{
		Id:             m.nextId(),
		Name:           data.Name,
		Created:        m.tick(),
		AuthorId:       author.Id,
		AuthorUsername: author.Username,
		IsPublic:       data.IsPublic,
	}
	m.topics[t.Id] = t
	return t, nil
}

func (m *memStorage) GetTopic(_ context.Context, id domain.TopicId) (domain.Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.topics[id]
	if !ok {
		return domain.Topic{}, errors.NotFound("Topic not found")
	}
	return t, nil
}

func (m *memStorage) TopicsByAuthor(_ context.Context, authorId domain.UserId) ([]domain.Topic, error) {
	return m.filterTopics(func(t domain.Topic) bool { return t.AuthorId == authorId }), nil
}

func (m *memStorage) PublicTopics(_ context.Context) ([]domain.Topic, error) {
	return m.filterTopics(func(t domain.Topic) bool { return t.IsPublic }), nil
}

func (m *memStorage) filterTopics(keep func(domain.Topic) bool) []domain.Topic {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Topic{}
	for _, t := range m.topics {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created.After(out[j].Created) })
	return out
}

func (m *memStorage) UpdateTopic(_ context.Context, id domain.TopicId, data domain.TopicUpdateData) (domain.Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.topics[id]
	if !ok {
		return domain.Topic{}, errors.NotFound("Topic not found")
	}
	t.Name = data.Name
	t.IsPublic = data.IsPublic
	m.topics[id] = t
	return t, nil
}

func (m *memStorage) DeleteTopic(_ context.Context, id domain.TopicId) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.topics[id]; !ok {
		return errors.NotFound("Topic not found")
	}
	m.deleteTopicLocked(id)
	return nil
}

func (m *memStorage) deleteTopicLocked(id domain.TopicId) {
	delete(m.topics, id)
	for pid, p := range m.posts {
		if p.TopicId == id {
			delete(m.posts, pid)
		}
	}
}

func (m *memStorage) SearchTopics(_ context.Context, q string, limit, offset int) ([]domain.Topic, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Topic
	for _, t := range m.topics {
		if containsFold(t.Name, q) || containsFold(m.users[t.AuthorId].Username, q) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return window(out, limit, offset)
}

func (m *memStorage) CreatePost(_ context.Context, data domain.PostCreationData) (domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.topics[data.TopicId]
	if !ok {
		return domain.Post{}, errors.NotFound("Topic not found")
	}
	p := domain.Post{
		Id:       m.nextId(),
		Created:  m.tick(),
		Title:    data.Title,
		Body:     data.Body,
		BodyHTML: data.BodyHTML,
		TopicId:  t.Id,
	}
	m.posts[p.Id] = p
	return m.withTopicLocked(p), nil
}

func (m *memStorage) GetPost(_ context.Context, id domain.PostId) (domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return domain.Post{}, errors.NotFound("Post not found")
	}
	return m.withTopicLocked(p), nil
}

func (m *memStorage) PostsByTopic(_ context.Context, topicId domain.TopicId, limit, offset int) ([]domain.Post, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Post
	for _, p := range m.posts {
		if p.TopicId == topicId {
			out = append(out, m.withTopicLocked(p))
		}
	}
	sortNewestFirst(out)
	return window(out, limit, offset)
}

func (m *memStorage) UpdatePost(_ context.Context, id domain.PostId, data domain.PostUpdateData) (domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return domain.Post{}, errors.NotFound("Post not found")
	}
	p.Title, p.Body, p.BodyHTML = data.Title, data.Body, data.BodyHTML
	m.posts[id] = p
	return m.withTopicLocked(p), nil
}

func (m *memStorage) DeletePost(_ context.Context, id domain.PostId) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return errors.NotFound("Post not found")
	}
	delete(m.posts, id)
	return nil
}

func (m *memStorage) SearchPosts(_ context.Context, q string, limit, offset int) ([]domain.Post, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Post
	for _, p := range m.posts {
		p = m.withTopicLocked(p)
		if containsFold(p.Title, q) || containsFold(p.TopicName, q) {
			out = append(out, p)
		}
	}
	sortNewestFirst(out)
	return window(out, limit, offset)
}

func (m *memStorage) Stats(_ context.Context) (domain.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.Stats{Users: len(m.users), Topics: len(m.topics), Posts: len(m.posts)}, nil
}

func (m *memStorage) withTopicLocked(p domain.Post) domain.Post {
	t := m.topics[p.TopicId]
	p.TopicName = t.Name
	p.OwnerId = t.AuthorId
	p.IsPublic = t.IsPublic
	return p
}

func sortNewestFirst(posts []domain.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].Created.Equal(posts[j].Created) {
			return posts[i].Id > posts[j].Id
		}
		return posts[i].Created.After(posts[j].Created)
	})
}

func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(q))
}

// window rejects a negative offset the way postgres does.
func window[T any](items []T, limit, offset int) ([]T, int, error) {
	if offset < 0 || limit < 0 {
		return nil, 0, fmt.Errorf("OFFSET must not be negative: %d", offset)
	}
	if offset >= len(items) {
		return []T{}, len(items), nil
	}
	end := min(len(items), offset+limit)
	return items[offset:end], len(items), nil
}
