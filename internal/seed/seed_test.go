package seed

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailypush/dailypush/internal/domain"
)

type fakeServices struct {
	users       []domain.RegistrationData
	topics      []domain.Topic
	posts       []domain.Post
	registerErr error
}

func (f *fakeServices) Register(ctx context.Context, data domain.RegistrationData) (domain.User, error) {
	if f.registerErr != nil {
		return domain.User{}, f.registerErr
	}
	f.users = append(f.users, data)
	return domain.User{Id: int64(len(f.users)), Username: data.Username}, nil
}

type topicFake struct{ *fakeServices }

func (f topicFake) Create(ctx context.Context, p domain.Principal, name domain.TopicName, isPublic bool) (domain.Topic, error) {
	t := domain.Topic{Id: int64(len(f.topics) + 1), Name: name, AuthorId: p.UserId, IsPublic: isPublic}
	f.topics = append(f.topics, t)
	return t, nil
}

type postFake struct{ *fakeServices }

func (f postFake) Create(ctx context.Context, p domain.Principal, topicId domain.TopicId, title domain.PostTitle, body domain.PostBody) (domain.Post, error) {
	post := domain.Post{Id: int64(len(f.posts) + 1), TopicId: topicId, Title: title, Body: body}
	f.posts = append(f.posts, post)
	return post, nil
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]+$`)

func TestRun(t *testing.T) {
	fake := &fakeServices{}
	s := New(fake, topicFake{fake}, postFake{fake}, 42)

	res, err := s.Run(context.Background(), Options{Users: 3, TopicsPerUser: 2, PostsPerTopic: 4})
	require.NoError(t, err)

	assert.Len(t, res.Users, 3)
	assert.Equal(t, 6, res.Topics)
	assert.Equal(t, 24, res.Posts)
	assert.Len(t, fake.posts, 24)

	seen := map[string]bool{}
	for _, u := range fake.users {
		assert.Regexp(t, usernamePattern, u.Username)
		assert.LessOrEqual(t, len(u.Username), 50)
		assert.False(t, seen[u.Username], "duplicate username %s", u.Username)
		seen[u.Username] = true
		assert.Equal(t, DemoPassword, u.Password)
		assert.Equal(t, u.Password, u.Confirmation)
	}

	for i, topic := range fake.topics {
		assert.NotEmpty(t, topic.Name)
		assert.LessOrEqual(t, utf8.RuneCountInString(topic.Name), 100)
		if i%2 == 0 {
			assert.True(t, topic.IsPublic, "first topic of each user is public")
		}
	}
	for _, post := range fake.posts {
		assert.NotEmpty(t, post.Body)
		assert.LessOrEqual(t, utf8.RuneCountInString(post.Title), 100)
	}
}

func TestRunStopsOnError(t *testing.T) {
	fake := &fakeServices{registerErr: errors.New("db down")}
	s := New(fake, topicFake{fake}, postFake{fake}, 1)

	res, err := s.Run(context.Background(), DefaultOptions())
	assert.ErrorContains(t, err, "db down")
	assert.Empty(t, res.Users)
	assert.Empty(t, fake.topics)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "жё", truncate("жёлтый", 2))
}
