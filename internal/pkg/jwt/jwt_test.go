//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"seat-reservation/internal/domain/user"
	"seat-reservation/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, method gojwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	token, err := gojwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims(userID uuid.UUID) jwt.Claims {
	now := time.Now()
	return jwt.Claims{
		UserID: userID,
		Role:   user.RoleMember.String(),
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    "seat-reservation",
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestService(t *testing.T) {
	svc := jwt.NewService(secret, time.Hour)

	t.Run("基本成功ケース", func(t *testing.T) {
		userID := uuid.New()
		token, err := svc.GenerateToken(userID, user.RoleAdmin)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, userID.String(), claims.Subject)
	})

	t.Run("期限切れ", func(t *testing.T) {
		claims := validClaims(uuid.New())
		claims.ExpiresAt = gojwt.NewNumericDate(time.Now().Add(-time.Minute))

		_, err := svc.ValidateToken(sign(t, gojwt.SigningMethodHS256, []byte(secret), claims))
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("不正なトークン", func(t *testing.T) {
		noExp := validClaims(uuid.New())
		noExp.ExpiresAt = nil
		wrongIssuer := validClaims(uuid.New())
		wrongIssuer.Issuer = "someone-else"

		tests := []struct {
			name  string
			token string
		}{
			{name: "形式不正", token: "not-a-jwt"},
			{name: "署名鍵違い", token: sign(t, gojwt.SigningMethodHS256, []byte("other"), validClaims(uuid.New()))},
			{name: "アルゴリズム違い", token: sign(t, gojwt.SigningMethodHS512, []byte(secret), validClaims(uuid.New()))},
			{name: "発行者違い", token: sign(t, gojwt.SigningMethodHS256, []byte(secret), wrongIssuer)},
			{name: "期限なし", token: sign(t, gojwt.SigningMethodHS256, []byte(secret), noExp)},
			{name: "ユーザーIDなし", token: sign(t, gojwt.SigningMethodHS256, []byte(secret), validClaims(uuid.Nil))},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.ValidateToken(tt.token)
				assert.ErrorIs(t, err, jwt.ErrInvalidToken)
			})
		}
	})
}
