package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "64b7f0c2e1a1b2c3d4e5f607", RoleManager, time.Hour)
	require.NoError(t, err)

	t.Run("WithBearerPrefix", func(t *testing.T) {
		claims, err := ValidateToken(testSecret, "Bearer "+token)
		require.NoError(t, err)
		assert.Equal(t, "64b7f0c2e1a1b2c3d4e5f607", claims.AdminID)
		assert.Equal(t, RoleManager, claims.Role)
	})

	t.Run("RawToken", func(t *testing.T) {
		claims, err := ValidateToken(testSecret, token)
		require.NoError(t, err)
		assert.Equal(t, RoleManager, claims.Role)
	})
}

func TestValidateToken_Errors(t *testing.T) {
	expired, err := GenerateToken(testSecret, "admin-1", RoleSupport, -time.Minute)
	require.NoError(t, err)

	otherKey, err := GenerateToken([]byte("other-secret"), "admin-1", RoleSupport, time.Hour)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{AdminID: "admin-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   error
	}{
		{name: "Empty", header: "", want: ErrMissingToken},
		{name: "BearerOnly", header: "Bearer ", want: ErrMissingToken},
		{name: "Garbage", header: "Bearer not-a-jwt", want: ErrInvalidToken},
		{name: "Expired", header: "Bearer " + expired, want: ErrInvalidToken},
		{name: "WrongSecret", header: "Bearer " + otherKey, want: ErrInvalidToken},
		{name: "AlgNone", header: "Bearer " + noneToken, want: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(testSecret, tt.header)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
