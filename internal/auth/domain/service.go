package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	userdomain "github.com/smallbiznis/comercio/internal/user/domain"
)

type Service interface {
	// Register creates a new account. Accounts always start inactive and in
	// the employee role, regardless of submitted role hints.
	Register(ctx context.Context, req RegisterRequest) (*userdomain.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
}

type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	// Role is accepted but ignored on registration.
	Role string `json:"role"`
}

type LoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	UserAgent string `json:"-"`
	IPAddress string `json:"-"`
}

type LoginResult struct {
	UserID    snowflake.ID
	Email     string
	FullName  string
	RawToken  string
	ExpiresAt time.Time
	SessionID snowflake.ID
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	TouchSession(ctx context.Context, id snowflake.ID, lastSeenAt time.Time) error
	RevokeSession(ctx context.Context, id snowflake.ID, revokedAt time.Time) error
}
