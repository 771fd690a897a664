package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 15)

	token, err := svc.Generate("auth0|alice", "Alice", "Acme Outreach")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "auth0|alice", claims.UserID)
	assert.Equal(t, "Alice", claims.DisplayName)
	assert.Equal(t, "Acme Outreach", claims.OrgName)
}

func TestJWTService_Verify_WrongSecret(t *testing.T) {
	svc := NewJWTService("test-secret", 15)
	other := NewJWTService("other-secret", 15)

	token, err := svc.Generate("auth0|alice", "", "")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestJWTService_Generate_MissingUserID(t *testing.T) {
	svc := NewJWTService("test-secret", 15)

	_, err := svc.Generate("", "Alice", "")
	assert.Error(t, err)
}

func TestJWTService_Verify_Garbage(t *testing.T) {
	svc := NewJWTService("test-secret", 15)

	_, err := svc.Verify("not-a-token")
	assert.Error(t, err)
}
