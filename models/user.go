package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents an account that owns tags, ingredients and recipes
type User struct {
	ID          uint   `gorm:"primaryKey"`
	Email       string `gorm:"size:255;uniqueIndex;not null"`
	Password    string `gorm:"not null"` // bcrypt hash
	Name        string `gorm:"size:255"`
	IsActive    bool   `gorm:"not null;default:true"`
	IsStaff     bool   `gorm:"not null;default:false"`
	IsSuperuser bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SetPassword replaces the stored hash with one derived from raw
func (u *User) SetPassword(raw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether raw matches the stored hash
func (u *User) CheckPassword(raw string) bool {
	if u.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(raw)) == nil
}

func (u User) String() string {
	return u.Email
}
