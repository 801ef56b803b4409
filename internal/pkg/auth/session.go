package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/unipem/lms/internal/app/models"
)

// Session errors
var (
	ErrMalformedSession = errors.New("malformed session")
	ErrExpiredSession   = errors.New("session expired")
)

// Cookie encodings
const (
	ModePlain  = "plain"
	ModeSigned = "signed"
)

// Session is the identity carried by the session cookie
type Session struct {
	ID       uuid.UUID   `json:"id"`
	Username string      `json:"username"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

// NewSession builds the session for an authenticated user
func NewSession(user *models.User) Session {
	return Session{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
	}
}

func (s Session) validate() error {
	if s.ID == uuid.Nil || s.Username == "" || !s.Role.Valid() {
		return ErrMalformedSession
	}
	return nil
}

// SessionCodec converts a session to and from the cookie value
type SessionCodec interface {
	Encode(session Session) (string, error)
	Decode(value string) (*Session, error)
}

// SessionConfig defines session cookie encoding settings
type SessionConfig struct {
	Mode   string
	Secret string
	Issuer string
	MaxAge time.Duration
}

// NewSessionCodec returns the codec for the configured mode
func NewSessionCodec(config SessionConfig) (SessionCodec, error) {
	switch strings.ToLower(config.Mode) {
	case "", ModePlain:
		return plainCodec{}, nil
	case ModeSigned:
		if config.Secret == "" {
			return nil, fmt.Errorf("signed session mode requires a secret")
		}
		return &signedCodec{config: config}, nil
	default:
		return nil, fmt.Errorf("unknown session mode %q", config.Mode)
	}
}

// plainCodec stores the session as bare JSON, readable and forgeable by the client
type plainCodec struct{}

func (plainCodec) Encode(session Session) (string, error) {
	raw, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}
	return string(raw), nil
}

func (plainCodec) Decode(value string) (*Session, error) {
	var session Session
	if err := json.Unmarshal([]byte(value), &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	if err := session.validate(); err != nil {
		return nil, err
	}
	return &session, nil
}

// sessionClaims defines the signed cookie content
type sessionClaims struct {
	Session
	jwt.RegisteredClaims
}

// signedCodec stores the session as the claims of an HS256 JWT
type signedCodec struct {
	config SessionConfig
}

func (c *signedCodec) Encode(session Session) (string, error) {
	now := time.Now()
	claims := &sessionClaims{
		Session: session,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    c.config.Issuer,
			Subject:   session.ID.String(),
		},
	}
	if c.config.MaxAge > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.config.MaxAge))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

func (c *signedCodec) Decode(value string) (*Session, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if c.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(value, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(c.config.Secret), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredSession
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, ErrMalformedSession
	}
	if err := claims.Session.validate(); err != nil {
		return nil, err
	}
	session := claims.Session
	return &session, nil
}
