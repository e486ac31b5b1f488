package domain

type (
	UserId   = int64
	Username = string
	Password = string

	TopicId   = int64
	TopicName = string

	PostId    = int64
	PostTitle = string
	PostBody  = string
)

// TopicScope selects which topics a listing returns.
type TopicScope string

const (
	ScopeMine   TopicScope = "mine"
	ScopePublic TopicScope = "public"
)

func (s TopicScope) Valid() bool {
	return s == ScopeMine || s == ScopePublic
}
