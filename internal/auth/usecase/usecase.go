package usecase

import (
	"context"

	authdomain "mindmaker-backend/internal/auth/domain"
	authdto "mindmaker-backend/internal/auth/dto"
)

// AuthUsecase defines the authentication operations
type AuthUsecase interface {
	Register(ctx context.Context, req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*authdto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateToken(ctx context.Context, accessToken string) (*authdomain.User, error)

	// SetSignOutCallback registers fn to run after a successful logout
	SetSignOutCallback(fn func(userID string))
}
