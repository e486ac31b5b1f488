package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/dailypush/dailypush/internal/domain"
	"github.com/dailypush/dailypush/internal/errors"
	"github.com/dailypush/dailypush/internal/logger"
	"github.com/dailypush/dailypush/internal/session"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials never tells which of the two fields was wrong.
var ErrInvalidCredentials = errors.Unauthorized("Invalid username and/or password.")

type AuthService interface {
	Register(ctx context.Context, data domain.RegistrationData) (domain.User, error)
	Authenticate(ctx context.Context, creds domain.Credentials) (domain.User, error)
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) domain.Principal
}

type Auth struct {
	storage   AuthStorage
	validator CredentialsValidator
	tokens    Tokens
	revoker   session.Revoker
	cost      int

	dummyOnce sync.Once
	dummyHash []byte
}

type AuthStorage interface {
	SaveUser(ctx context.Context, user domain.User) (domain.UserId, error)
	UserByUsername(ctx context.Context, username domain.Username) (domain.User, error)
	UserById(ctx context.Context, id domain.UserId) (domain.User, error)
}

type CredentialsValidator interface {
	Username(username domain.Username) error
	Password(password domain.Password) error
	Confirmation(password, confirmation domain.Password) error
}

type Tokens interface {
	NewToken(user domain.User) (string, error)
	Decode(token string) (session.Claims, error)
}

func NewAuth(storage AuthStorage, validator CredentialsValidator, tokens Tokens, revoker session.Revoker) *Auth {
	return &Auth{
		storage:   storage,
		validator: validator,
		tokens:    tokens,
		revoker:   revoker,
		cost:      bcrypt.DefaultCost,
	}
}

// Register creates the user. Only the bcrypt hash of the password is stored.
func (a *Auth) Register(ctx context.Context, data domain.RegistrationData) (domain.User, error) {
	if err := a.validator.Username(data.Username); err != nil {
		return domain.User{}, err
	}
	if err := a.validator.Password(data.Password); err != nil {
		return domain.User{}, err
	}
	if err := a.validator.Confirmation(data.Password, data.Confirmation); err != nil {
		return domain.User{}, err
	}

	_, err := a.storage.UserByUsername(ctx, data.Username)
	if err == nil {
		return domain.User{}, errors.Validation(fmt.Sprintf("Username '%s' is already registered.", data.Username))
	}
	if !errors.IsNotFound(err) {
		return domain.User{}, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(data.Password), a.cost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, err
	}

	user := domain.User{Username: data.Username, PassHash: string(passHash)}
	// a concurrent registration may still win the race; storage reports it as an integrity error
	user.Id, err = a.storage.SaveUser(ctx, user)
	if err != nil {
		if errors.IsIntegrity(err) {
			logger.Log.Warn("duplicate username on insert", "username", data.Username)
		}
		return domain.User{}, err
	}

	registrationsTotal.Inc()
	logger.Log.Info("user registered", "user_id", user.Id, "username", user.Username)
	return user, nil
}

// Authenticate returns the user only if the password matches its hash.
// Unknown usernames cost the same bcrypt comparison as wrong passwords.
func (a *Auth) Authenticate(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	user, err := a.storage.UserByUsername(ctx, creds.Username)
	if err != nil {
		if errors.IsNotFound(err) {
			bcrypt.CompareHashAndPassword(a.dummy(), []byte(creds.Password))
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a session token.
func (a *Auth) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	user, err := a.Authenticate(ctx, creds)
	if err != nil {
		if errors.IsUnauthorized(err) {
			loginsTotal.WithLabelValues("failure").Inc()
		}
		return "", err
	}

	token, err := a.tokens.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return "", err
	}

	loginsTotal.WithLabelValues("success").Inc()
	logger.Log.Info("user logged in", "user_id", user.Id)
	return token, nil
}

// Logout revokes the token until it expires. Invalid tokens need no revocation.
func (a *Auth) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := a.tokens.Decode(token)
	if err != nil {
		return nil
	}
	if err := a.revoker.Revoke(ctx, claims.TokenId, claims.ExpiresAt); err != nil {
		logger.Log.Error("failed to revoke token", "user_id", claims.UserId, "error", err)
		return err
	}
	logger.Log.Info("user logged out", "user_id", claims.UserId)
	return nil
}

// Resolve maps a session token to the acting principal. It fails open:
// any problem with the token or its user yields Anonymous.
func (a *Auth) Resolve(ctx context.Context, token string) domain.Principal {
	if token == "" {
		return domain.Anonymous
	}

	claims, err := a.tokens.Decode(token)
	if err != nil {
		logger.Log.Debug("rejected session token", "error", err)
		return domain.Anonymous
	}

	revoked, err := a.revoker.IsRevoked(ctx, claims.TokenId)
	if err != nil {
		logger.Log.Warn("failed to check token revocation", "user_id", claims.UserId, "error", err)
		return domain.Anonymous
	}
	if revoked {
		return domain.Anonymous
	}

	user, err := a.storage.UserById(ctx, claims.UserId)
	if err != nil {
		if !errors.IsNotFound(err) {
			logger.Log.Warn("failed to load session user", "user_id", claims.UserId, "error", err)
		}
		return domain.Anonymous
	}
	return domain.PrincipalOf(user)
}

func (a *Auth) dummy() []byte {
	a.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("dummy password"), a.cost)
		if err != nil {
			logger.Log.Error("failed to hash dummy password", "error", err)
		}
		a.dummyHash = hash
	})
	return a.dummyHash
}
