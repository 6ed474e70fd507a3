package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestInitials(t *testing.T) {
	tests := map[string]string{
		"ana maria souza": "AM",
		"Bruno":           "B",
		"  élio   costa ": "ÉC",
		"":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Initials(in), in)
	}
}

func TestEquivalentSessionStatuses(t *testing.T) {
	tests := []struct {
		status string
		want   []string
	}{
		{SessionStatusScheduled, []string{SessionStatusScheduled, SessionStatusUpcoming}},
		{SessionStatusUpcoming, []string{SessionStatusUpcoming, SessionStatusScheduled}},
		{SessionStatusLive, []string{SessionStatusLive, SessionStatusInProgress}},
		{SessionStatusInProgress, []string{SessionStatusInProgress, SessionStatusLive}},
		{SessionStatusCompleted, []string{SessionStatusCompleted}},
		{SessionStatusCancelled, []string{SessionStatusCancelled}},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, EquivalentSessionStatuses(tt.status))
		})
	}
}

func TestSessionStatusRules(t *testing.T) {
	assert.True(t, IsValidSessionStatus(SessionStatusLive))
	assert.False(t, IsValidSessionStatus("archived"))

	assert.True(t, AcceptsEnrollment(SessionStatusUpcoming))
	assert.False(t, AcceptsEnrollment(SessionStatusCompleted))
	assert.False(t, AcceptsEnrollment(SessionStatusCancelled))

	assert.ElementsMatch(t,
		[]string{SessionStatusScheduled, SessionStatusUpcoming, SessionStatusInProgress, SessionStatusLive},
		ActiveSessionStatuses,
	)
}

func TestMentorOwnedBy(t *testing.T) {
	user := &User{}
	user.ID[0] = 1
	other := &User{}
	other.ID[0] = 2

	assert.True(t, (&Mentor{UserID: &user.ID}).OwnedBy(user.ID))
	assert.False(t, (&Mentor{UserID: &user.ID}).OwnedBy(other.ID))
	assert.False(t, (&Mentor{}).OwnedBy(user.ID))
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (*User)(nil).IsAdmin())
}

func TestBeforeCreate_AssignsTimeOrderedIDs(t *testing.T) {
	user, mentor, mentee := &User{}, &Mentor{}, &Mentee{}
	session, document, goal, review := &Session{}, &Document{}, &Goal{}, &Review{}

	hooks := map[string]struct {
		create func(*gorm.DB) error
		id     *uuid.UUID
	}{
		"user":     {user.BeforeCreate, &user.ID},
		"mentor":   {mentor.BeforeCreate, &mentor.ID},
		"mentee":   {mentee.BeforeCreate, &mentee.ID},
		"session":  {session.BeforeCreate, &session.ID},
		"document": {document.BeforeCreate, &document.ID},
		"goal":     {goal.BeforeCreate, &goal.ID},
		"review":   {review.BeforeCreate, &review.ID},
	}
	for name, h := range hooks {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, h.create(nil))
			assert.Equal(t, uuid.Version(7), h.id.Version())
		})
	}

	preset := uuid.New()
	kept := &User{ID: preset}
	require.NoError(t, kept.BeforeCreate(nil))
	assert.Equal(t, preset, kept.ID)
}
