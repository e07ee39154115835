package auth

import (
	"context"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, req LogoutRequest) error
	Me(ctx context.Context, userID string) (user.UserResponse, error)
	// EnsureUser creates the user unless the email is already registered.
	EnsureUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error)
	// PurgeSessions drops refresh tokens that can no longer be used.
	PurgeSessions(ctx context.Context) (int64, error)
}
