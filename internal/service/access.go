package service

import (
	"github.com/dailypush/dailypush/internal/domain"
	"github.com/dailypush/dailypush/internal/errors"
)

var ErrLoginRequired = errors.Unauthorized("Please log in to access this page.")

func requireAuth(p domain.Principal) error {
	if p.IsAnonymous() {
		return ErrLoginRequired
	}
	return nil
}

// Posts are owned through their topic, so both checks take the topic owner.
func requireOwner(p domain.Principal, ownerId domain.UserId) error {
	if err := requireAuth(p); err != nil {
		return err
	}
	if !p.Owns(ownerId) {
		return errors.Forbidden()
	}
	return nil
}

func requireTopicVisible(p domain.Principal, t domain.Topic) error {
	if !t.VisibleTo(p) {
		return errors.Forbidden()
	}
	return nil
}

func requirePostVisible(p domain.Principal, post domain.Post) error {
	if !post.VisibleTo(p) {
		return errors.Forbidden()
	}
	return nil
}
