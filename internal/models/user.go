package models

import (
	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// User represents a doctor, patient or admin account.
type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Name         string `gorm:"size:150;not null" json:"name"`
	Role         Role   `gorm:"size:20;default:'patient'" json:"role"`

	// Doctor-only
	Department string `gorm:"size:100" json:"department,omitempty"`

	// Patient-only: external clinical key (PT-00001 style) and caretaker
	// contact details collected at registration.
	PatientID      string `gorm:"size:64;index" json:"patientId,omitempty"`
	CaretakerName  string `gorm:"size:150" json:"caretakerName,omitempty"`
	CaretakerPhone string `gorm:"size:40" json:"caretakerPhone,omitempty"`
	CaretakerEmail string `gorm:"size:255" json:"caretakerEmail,omitempty"`

	// Relations (not always preloaded)
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
	EMRRecords    []EMRRecord    `gorm:"foreignKey:DoctorID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           Role   `json:"role"`
	Department     string `json:"department,omitempty"`
	PatientID      string `json:"patientId,omitempty"`
	CaretakerName  string `json:"caretakerName,omitempty"`
	CaretakerPhone string `json:"caretakerPhone,omitempty"`
	CaretakerEmail string `json:"caretakerEmail,omitempty"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		Department:     u.Department,
		PatientID:      u.PatientID,
		CaretakerName:  u.CaretakerName,
		CaretakerPhone: u.CaretakerPhone,
		CaretakerEmail: u.CaretakerEmail,
	}
}
