package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-bracket/models"
	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const userContextKey contextKey = "user"

// Имена JWT claims
const (
	JWTClaimRole = "role"
	JWTClaimExp  = "exp"
	JWTClaimIat  = "iat"
)

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context or invalid type")
	}

	roleClaim, ok := claims[JWTClaimRole]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", JWTClaimRole)
	}

	roleStr, ok := roleClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", JWTClaimRole, roleClaim)
	}

	role := models.UserRole(roleStr)
	switch role {
	case models.RoleAdmin, models.RoleGuest:
		return role, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
}

// ActorFromContext возвращает гостя, если запрос не аутентифицирован.
func ActorFromContext(ctx context.Context) models.Actor {
	role, err := GetUserRoleFromContext(ctx)
	if err != nil {
		return models.Actor{Role: models.RoleGuest}
	}
	return models.Actor{Role: role}
}
