// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"testing"
	"time"

	"anoa.com/mentoria/internal/bootstrap"
	"anoa.com/mentoria/internal/entity"
	"anoa.com/mentoria/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Options{
		Driver:     database.DriverSQLite,
		SQLitePath: ":memory:",
		LogLevel:   logger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, bootstrap.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with the given role and type.
func CreateUser(t *testing.T, db *gorm.DB, email, role, userType string) *entity.User {
	t.Helper()

	user := &entity.User{
		Name:         "User " + email,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		UserType:     userType,
		Avatar:       "US",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateMentor inserts a mentor profile owned by user (nil for an orphan profile).
func CreateMentor(t *testing.T, db *gorm.DB, user *entity.User, specialties ...string) *entity.Mentor {
	t.Helper()

	mentor := &entity.Mentor{Name: "Mentor", Avatar: "ME", IsAvailable: true}
	if user != nil {
		mentor.UserID = &user.ID
		mentor.Name = user.Name
	}
	require.NoError(t, db.Omit("Specialties", "Languages", "Certifications", "Availability").Create(mentor).Error)

	for i, s := range specialties {
		require.NoError(t, db.Create(&entity.MentorSpecialty{MentorID: mentor.ID, Name: s, Position: i}).Error)
	}
	return mentor
}

// CreateSession inserts a session for mentor with the given capacity and status.
func CreateSession(t *testing.T, db *gorm.DB, mentor *entity.Mentor, maxParticipants *int, status string) *entity.Session {
	t.Helper()

	session := &entity.Session{
		MentorID:        mentor.ID,
		Title:           "Sessão",
		ScheduledAt:     time.Now().UTC().Add(24 * time.Hour),
		Duration:        60,
		Status:          status,
		Type:            entity.SessionTypeGroup,
		MaxParticipants: maxParticipants,
		IsPublic:        true,
	}
	require.NoError(t, db.Omit("Requirements", "Objectives", "Participants").Create(session).Error)
	return session
}

func IntPtr(v int) *int {
	return &v
}

// CreateDocument inserts a document attached to session.
func CreateDocument(t *testing.T, db *gorm.DB, session *entity.Session, public bool) *entity.Document {
	t.Helper()

	doc := &entity.Document{
		SessionID: session.ID,
		MentorID:  session.MentorID,
		Title:     "Material",
		FileURL:   "https://res.cloudinary.com/demo/raw/upload/v1/documents/material.pdf",
		FileName:  "material.pdf",
		FileType:  "application/pdf",
		FileSize:  1024,
		IsPublic:  public,
	}
	require.NoError(t, db.Omit("Tags").Create(doc).Error)
	return doc
}
