package domain

import "time"

type Topic struct {
	Id             TopicId   `json:"id"`
	Name           TopicName `json:"name"`
	Created        time.Time `json:"created"`
	AuthorId       UserId    `json:"author_id"`
	AuthorUsername Username  `json:"author"`
	IsPublic       bool      `json:"is_public"`
}

// VisibleTo: the owner always sees a topic, anyone sees a public one.
func (t Topic) VisibleTo(p Principal) bool {
	return t.IsPublic || p.Owns(t.AuthorId)
}

type TopicCreationData struct {
	Name     TopicName
	AuthorId UserId
	IsPublic bool
}

type TopicUpdateData struct {
	Name     TopicName
	IsPublic bool
}
