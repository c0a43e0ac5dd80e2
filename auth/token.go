package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/masum-diu/nishaan/models"
)

type claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

func (p *Provider) issueToken(profile *models.Profile, now time.Time) (string, *claims, error) {
	c := &claims{
		Role: profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   profile.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, c, nil
}

func (p *Provider) parseToken(tokenString string) (*claims, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(p.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if c.Subject == "" || c.ID == "" || c.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	return c, nil
}
