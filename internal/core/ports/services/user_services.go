package services

import (
	"context"

	"github.com/rukibhamz/erpsolution-sub001/internal/core/domain"
	"github.com/rukibhamz/erpsolution-sub001/internal/dto"
)

// UserSvcFacade defines user management and authentication operations.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// Authenticate verifies credentials and returns the issued bearer token.
	Authenticate(ctx context.Context, username string, password string) (*dto.LoginResponse, error)
}
