package domain

import "time"

// BodyRenderer turns raw post markup into sanitized HTML.
type BodyRenderer interface {
	Render(markup string) string
}

type Post struct {
	Id        PostId    `json:"id"`
	Created   time.Time `json:"created"`
	Title     PostTitle `json:"title"`
	Body      PostBody  `json:"body"`
	BodyHTML  string    `json:"body_html"`
	TopicId   TopicId   `json:"topic_id"`
	TopicName TopicName `json:"topic"`
	// OwnerId is the author of the post's topic; posts have no owner of their own.
	OwnerId  UserId `json:"owner_id"`
	IsPublic bool   `json:"is_public"`
}

// SetBody is the only way a post body changes: BodyHTML always follows it.
func (p *Post) SetBody(body PostBody, r BodyRenderer) {
	p.Body = body
	p.BodyHTML = r.Render(body)
}

func (p Post) VisibleTo(pr Principal) bool {
	return p.IsPublic || pr.Owns(p.OwnerId)
}

type PostCreationData struct {
	TopicId  TopicId
	Title    PostTitle
	Body     PostBody
	BodyHTML string
}

type PostUpdateData struct {
	Title    PostTitle
	Body     PostBody
	BodyHTML string
}
