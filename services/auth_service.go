package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/utils"
)

type AuthService interface {
	// Login проверяет пароль администратора и возвращает роль для токена.
	Login(ctx context.Context, input LoginInput) (models.Actor, error)
}

type LoginInput struct {
	Password string `json:"password"`
}

type authService struct {
	adminPasswordHash string
}

// NewAuthService принимает bcrypt-хеш пароля администратора.
func NewAuthService(adminPasswordHash string) AuthService {
	return &authService{adminPasswordHash: adminPasswordHash}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (models.Actor, error) {
	if input.Password == "" {
		return models.Actor{}, ErrAuthInvalidCredentials
	}
	if err := utils.ComparePassword(s.adminPasswordHash, input.Password); err != nil {
		if errors.Is(err, utils.ErrPasswordMismatch) {
			return models.Actor{}, ErrAuthInvalidCredentials
		}
		return models.Actor{}, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}
	return models.Actor{Role: models.RoleAdmin}, nil
}
