package authz

import (
	"Folio/internal/domain"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCan(t *testing.T) {
	tests := []struct {
		role    Role
		allowed []Action
		denied  []Action
	}{
		{role: RoleViewer, allowed: []Action{ActionRead}, denied: []Action{ActionWrite, ActionManage, ActionReconcile}},
		{role: RoleEditor, allowed: []Action{ActionRead, ActionWrite}, denied: []Action{ActionManage, ActionReconcile}},
		{role: RoleManager, allowed: []Action{ActionRead, ActionWrite, ActionManage}, denied: []Action{ActionReconcile}},
		{role: RoleAdmin, allowed: []Action{ActionRead, ActionWrite, ActionManage, ActionReconcile}},
		{role: Role("ghost"), denied: []Action{ActionRead}},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			for _, action := range tt.allowed {
				assert.True(t, Can(tt.role, action), action)
			}
			for _, action := range tt.denied {
				assert.False(t, Can(tt.role, action), action)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, RoleManager, Normalize("manager"))
	assert.Equal(t, RoleViewer, Normalize("superuser"))
	assert.Equal(t, RoleViewer, Normalize(""))
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize(System(), ActionReconcile))

	err := Authorize(Principal{UserID: "u1", Role: RoleEditor}, ActionManage)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestHMACTokens_RoundTrip(t *testing.T) {
	tokens, err := NewHMACTokens("secret")
	require.NoError(t, err)

	signed, err := tokens.Issue(Principal{UserID: "u1", Role: RoleManager}, time.Hour)
	require.NoError(t, err)

	principal, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, Principal{UserID: "u1", Role: RoleManager}, principal)
}

func TestHMACTokens_Rejects(t *testing.T) {
	tokens, err := NewHMACTokens("secret")
	require.NoError(t, err)
	other, err := NewHMACTokens("other")
	require.NoError(t, err)

	foreign, err := other.Issue(Principal{UserID: "u1", Role: RoleAdmin}, time.Hour)
	require.NoError(t, err)
	_, err = tokens.Verify(foreign)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	expired, err := tokens.Issue(Principal{UserID: "u1", Role: RoleAdmin}, -time.Minute)
	require.NoError(t, err)
	_, err = tokens.Verify(expired)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	anonymous, err := tokens.Issue(Principal{Role: RoleAdmin}, time.Hour)
	require.NoError(t, err)
	_, err = tokens.Verify(anonymous)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role:             "admin",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tokens.Verify(none)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = NewHMACTokens("")
	assert.Error(t, err)
}

func TestHMACTokens_UnknownRoleFallsBackToViewer(t *testing.T) {
	tokens, err := NewHMACTokens("secret")
	require.NoError(t, err)

	signed, err := tokens.Issue(Principal{UserID: "u2", Role: Role("root")}, time.Hour)
	require.NoError(t, err)
	principal, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, RoleViewer, principal.Role)
}
