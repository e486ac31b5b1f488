// Package session issues and verifies signed session tokens and keeps the
// list of tokens revoked by logout.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/dailypush/dailypush/internal/domain"
	"github.com/dailypush/dailypush/internal/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrCreateToken  = errors.New("can't create token")
)

// Claims is what a verified token tells about its bearer.
type Claims struct {
	UserId    domain.UserId
	TokenId   string
	ExpiresAt time.Time
}

type Tokens struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewTokens(secretKey string, ttl time.Duration) *Tokens {
	return &Tokens{secretKey: []byte(secretKey), ttl: ttl, now: time.Now}
}

func (t *Tokens) TTL() time.Duration {
	return t.ttl
}

func (t *Tokens) NewToken(user domain.User) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{}
	claims["uid"] = user.Id
	claims["jti"] = uuid.NewString()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(t.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(t.secretKey)
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", ErrCreateToken
	}
	return tokenString, nil
}

// Decode verifies signature and expiry. Any defect yields ErrInvalidToken.
func (t *Tokens) Decode(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secretKey, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	// numbers come back from JSON as float64
	uid, ok := mc["uid"].(float64)
	if !ok || uid <= 0 {
		return Claims{}, ErrInvalidToken
	}
	jti, _ := mc["jti"].(string)
	if jti == "" {
		return Claims{}, ErrInvalidToken
	}
	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserId: domain.UserId(uid), TokenId: jti, ExpiresAt: exp.Time}, nil
}
