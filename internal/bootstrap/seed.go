package bootstrap

import (
	"anoa.com/mentoria/internal/entity"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	adminEmail    = "admin@mentoria.dev"
	adminPassword = "admin123"
)

// Migrate creates or updates the schema. Parents are listed before the
// tables that reference them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Mentor{},
		&entity.MentorSpecialty{},
		&entity.MentorLanguage{},
		&entity.MentorCertification{},
		&entity.MentorAvailability{},
		&entity.Mentee{},
		&entity.MenteeGoal{},
		&entity.MenteeInterest{},
		&entity.Session{},
		&entity.SessionRequirement{},
		&entity.SessionObjective{},
		&entity.SessionParticipant{},
		&entity.Document{},
		&entity.DocumentTag{},
		&entity.Goal{},
		&entity.Review{},
	)
}

func SeedAdminUser(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", adminEmail).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Debug("admin user already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.User{
		Name:         "Administrador",
		Email:        adminEmail,
		PasswordHash: string(hashedPasswordBytes),
		Role:         entity.RoleAdmin,
		UserType:     entity.UserTypeAprendiz,
		Avatar:       "AD",
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Info("admin user seeded", zap.String("email", adminEmail), zap.String("password", adminPassword))
	return nil
}
