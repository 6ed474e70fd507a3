package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndParse(t *testing.T) {
	m := NewManager("secret", 7*24*time.Hour)
	subject := Subject{
		ID:       uuid.New(),
		Email:    "ana@example.com",
		Role:     "mentor",
		UserType: "mentor",
	}

	signed, err := m.Issue(subject)
	require.NoError(t, err)

	claims, err := m.Parse(signed)
	require.NoError(t, err)

	assert.Equal(t, subject.ID, claims.UserID())
	assert.Equal(t, subject.Email, claims.Email)
	assert.Equal(t, subject.Role, claims.Role)
	assert.Equal(t, subject.UserType, claims.UserType)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestManager_ParseRejects(t *testing.T) {
	m := NewManager("secret", time.Hour)
	valid, err := m.Issue(Subject{ID: uuid.New()})
	require.NoError(t, err)

	expired := NewManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue(Subject{ID: uuid.New()})
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: uuid.NewString(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", mustIssue(t, NewManager("other", time.Hour))},
		{"expired", expiredToken},
		{"alg none", none},
		{"subject is not a uuid", badSubject},
		{"garbage", "abc.def.ghi"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Parse(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	_, err = m.Parse(valid)
	assert.NoError(t, err)
}

func mustIssue(t *testing.T, m *Manager) string {
	t.Helper()
	s, err := m.Issue(Subject{ID: uuid.New()})
	require.NoError(t, err)
	return s
}
