package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/Kavin001K/fabzclean-backend/internal/domain"
	"github.com/Kavin001K/fabzclean-backend/internal/repository"
	"github.com/Kavin001K/fabzclean-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	staffRepo    repository.StaffRepository
	tokenManager security.TokenManager
}

func NewAuthService(staffRepo repository.StaffRepository, tokenManager security.TokenManager) AuthService {
	return &authService{staffRepo: staffRepo, tokenManager: tokenManager}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.StaffUser, error) {
	user, err := s.staffRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokenManager.GenerateAccessToken(user.ID, user.Name, user.Email, string(user.Role), user.FranchiseID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
