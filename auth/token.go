package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/roboarchive/roboarchive-backend/models"
)

// TokenTTL is how long an issued identity token stays valid.
const TokenTTL = 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Claims is the decoded identity carried by a bearer token.
type Claims struct {
	MemberID       uint
	Email          string
	PrivilegeLevel models.PrivilegeLevel
}

// Service issues and verifies HS256-signed identity tokens. The secret
// is injected at construction; there is no package-level state.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret), ttl: TokenTTL}
}

// IssueToken signs a token embedding the member's id, email and
// privilege level, expiring after the service TTL.
func (s *Service) IssueToken(m *models.Member) (string, error) {
	claims := jwt.MapClaims{
		"member_id":       m.ID,
		"email":           m.Email,
		"privilege_level": string(m.PrivilegeLevel),
		"exp":             time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken validates the signature and expiry and returns the
// decoded claims.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	memberID, ok := mapClaims["member_id"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	email, _ := mapClaims["email"].(string)
	level, _ := mapClaims["privilege_level"].(string)

	return &Claims{
		MemberID:       uint(memberID),
		Email:          email,
		PrivilegeLevel: models.PrivilegeLevel(level),
	}, nil
}
