package usecase

import (
	"seat-reservation/internal/domain/user"
	"seat-reservation/internal/pkg/errs"
	"seat-reservation/internal/pkg/jwt"

	"github.com/google/uuid"
)

// TokenValidator resolves a bearer token into the caller identity used by
// the seat API: who they are and whether they may act as an administrator.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, user.Role, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, user.Role, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, jwt.ErrInvalidToken)
	}

	return claims.UserID, role, nil
}
