package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("a-very-long-test-secret-for-signing", 30)

	token, err := tm.GenerateAccessToken(7, "9876543210")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), claims.UserID)
	assert.Equal(t, "9876543210", claims.Phone)
	assert.Equal(t, "borrowhood", claims.Issuer)
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	tm := NewTokenManager("a-very-long-test-secret-for-signing", 30)
	other := NewTokenManager("a-different-secret-entirely-here!!", 30)

	token, err := other.GenerateAccessToken(7, "9876543210")
	assert.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm := NewTokenManager("a-very-long-test-secret-for-signing", -1)

	token, err := tm.GenerateAccessToken(7, "9876543210")
	assert.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := NewTokenManager("a-very-long-test-secret-for-signing", 30)
	_, err := tm.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
