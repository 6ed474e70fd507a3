package entity

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleUser   = "user"
	RoleMentor = "mentor"
)

const (
	UserTypeMentor   = "mentor"
	UserTypeAprendiz = "aprendiz"
)

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"size:120;not null" json:"name"`
	Email           string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash    string    `gorm:"size:255;not null" json:"-"`
	Role            string    `gorm:"size:20;not null;default:user" json:"role"`
	UserType        string    `gorm:"size:20;not null" json:"userType"`
	Avatar          string    `gorm:"size:8" json:"avatar"`
	ProfileImageURL *string   `gorm:"type:text" json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID, err = uuid.NewV7()
	}
	return
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Initials returns the upper-cased first letters of the first two words of name.
func Initials(name string) string {
	var b strings.Builder
	for i, word := range strings.Fields(name) {
		if i == 2 {
			break
		}
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
