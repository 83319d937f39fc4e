package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserAccount holds login credentials. Profile data lives in UserProfile.
type UserAccount struct {
	UserID       string    `gorm:"column:user_id;primaryKey;size:64" json:"user_id"`
	Email        string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Name         string    `gorm:"column:name" json:"name"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (UserAccount) TableName() string {
	return "user_accounts"
}

func (u *UserAccount) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	return nil
}

// UserProfile is the marketplace identity filled after signup.
type UserProfile struct {
	UserID      string    `gorm:"column:user_id;primaryKey;size:64" json:"userId"`
	Name        string    `gorm:"column:name" json:"name"`
	Document    string    `gorm:"column:document;size:14" json:"document"`
	Phone       string    `gorm:"column:phone;size:20" json:"phone"`
	CEP         string    `gorm:"column:cep;size:8" json:"cep"`
	Address     string    `gorm:"column:address" json:"address"`
	City        string    `gorm:"column:city" json:"city"`
	State       string    `gorm:"column:state;size:2" json:"state"`
	ProfileType string    `gorm:"column:profile_type;size:16" json:"profileType"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
