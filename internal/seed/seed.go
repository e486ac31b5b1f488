// Package seed fills a fresh database with demo users, topics and posts.
// Everything goes through the services, so passwords are hashed and post
// bodies rendered exactly as for real users.
package seed

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/dailypush/dailypush/internal/domain"
	"github.com/dailypush/dailypush/internal/logger"
)

// DemoPassword satisfies the password rules; every seeded user shares it.
const DemoPassword = "validUser#1"

type Registrar interface {
	Register(ctx context.Context, data domain.RegistrationData) (domain.User, error)
}

type TopicCreator interface {
	Create(ctx context.Context, p domain.Principal, name domain.TopicName, isPublic bool) (domain.Topic, error)
}

type PostCreator interface {
	Create(ctx context.Context, p domain.Principal, topicId domain.TopicId, title domain.PostTitle, body domain.PostBody) (domain.Post, error)
}

type Options struct {
	Users         int
	TopicsPerUser int
	PostsPerTopic int
	Seed          int64 // 0 picks a random seed
}

func DefaultOptions() Options {
	return Options{Users: 5, TopicsPerUser: 2, PostsPerTopic: 12}
}

type Result struct {
	Users  []domain.User
	Topics int
	Posts  int
}

type Seeder struct {
	auth  Registrar
	topic TopicCreator
	post  PostCreator
	faker *gofakeit.Faker
}

func New(auth Registrar, topic TopicCreator, post PostCreator, seed int64) *Seeder {
	return &Seeder{auth: auth, topic: topic, post: post, faker: gofakeit.New(seed)}
}

func (s *Seeder) Run(ctx context.Context, opts Options) (Result, error) {
	var res Result
	for i := 0; i < opts.Users; i++ {
		username := s.username(i)
		user, err := s.auth.Register(ctx, domain.RegistrationData{
			Username:     username,
			Password:     DemoPassword,
			Confirmation: DemoPassword,
		})
		if err != nil {
			return res, fmt.Errorf("register %q: %w", username, err)
		}
		res.Users = append(res.Users, user)
		principal := domain.PrincipalOf(user)

		for j := 0; j < opts.TopicsPerUser; j++ {
			// First topic of every user is public so anonymous visitors see something.
			topic, err := s.topic.Create(ctx, principal, s.topicName(), j == 0 || s.faker.Bool())
			if err != nil {
				return res, fmt.Errorf("create topic for %q: %w", username, err)
			}
			res.Topics++

			for k := 0; k < opts.PostsPerTopic; k++ {
				if _, err := s.post.Create(ctx, principal, topic.Id, s.postTitle(), s.postBody()); err != nil {
					return res, fmt.Errorf("create post in topic %d: %w", topic.Id, err)
				}
				res.Posts++
			}
		}
	}

	logger.Log.Info("seeded demo data", "users", len(res.Users), "topics", res.Topics, "posts", res.Posts)
	return res, nil
}

// username builds a name matching ^[A-Za-z][A-Za-z0-9_-]+$. The index keeps it unique.
func (s *Seeder) username(i int) string {
	name := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToLower(r)
		}
		return -1
	}, s.faker.FirstName())
	if name == "" || !unicode.IsLetter(rune(name[0])) {
		name = "user"
	}
	if len(name) > 20 {
		name = name[:20]
	}
	return fmt.Sprintf("%s_%d", name, i+1)
}

func (s *Seeder) topicName() string {
	name := s.faker.BuzzWord() + " " + s.faker.Noun()
	return truncate(strings.ToUpper(name[:1])+name[1:], 100)
}

func (s *Seeder) postTitle() string {
	return truncate(strings.TrimSuffix(s.faker.Sentence(5), "."), 100)
}

func (s *Seeder) postBody() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", s.faker.HackerPhrase())
	b.WriteString(s.faker.Paragraph(2, 3, 10, "\n\n"))
	b.WriteString("\n\n")
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, "- **%s** %s\n", s.faker.Verb(), s.faker.Noun())
	}
	return b.String()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max]))
}
