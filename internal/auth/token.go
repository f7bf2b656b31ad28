// Package auth выдаёт и проверяет токены и держит сессию запроса.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Leganyst/crew-platform/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims — полезная нагрузка токена. Роль в токене справочная,
// при разборе сессии роль перечитывается из профиля.
type Claims struct {
	ProfileID string `json:"pid"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue подписывает HS256-токен для профиля, возвращает токен и срок действия.
func (i *Issuer) Issue(profileID uuid.UUID, role model.ProfileRole) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.ttl)

	claims := &Claims{
		ProfileID: profileID.String(),
		Role:      string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profileID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Parse проверяет подпись и срок действия.
func (i *Issuer) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// ProfileUUID разбирает идентификатор профиля из claims.
func (c *Claims) ProfileUUID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.ProfileID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad profile id", ErrInvalidToken)
	}
	return id, nil
}
