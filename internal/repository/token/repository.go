package token

import (
	"context"
	"time"
)

// Token is a provisioned bearer credential accepted by the content API.
type Token struct {
	Token string
	Label string
	// UserID is empty for provisioned tokens not tied to a sign-in.
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, token Token) error
	// Upsert inserts the token or refreshes its label and expiry.
	Upsert(ctx context.Context, token Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
}
