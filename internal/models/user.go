package models

import (
	"time"
)

type User struct {
	UserID       uint      `json:"user_id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// 关联
	Tags     []Tag     `json:"tags,omitempty" gorm:"foreignKey:CreatedBy"`
	Expenses []Expense `json:"expenses,omitempty" gorm:"foreignKey:UserID"`
	Invoices []Invoice `json:"invoices,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

type UserRegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserUpdateRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	IsActive *bool   `json:"is_active"`
}

type UserResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
