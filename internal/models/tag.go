package models

import (
	"time"
)

type Tag struct {
	TagID     uint      `json:"tag_id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;not null"`
	Color     *string   `json:"color" gorm:"size:7"`
	CreatedBy *uint     `json:"created_by" gorm:"index"`
	IsSystem  bool      `json:"is_system" gorm:"not null;default:false"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}

// 约束：系统标签没有创建者且始终处于激活状态
func (Tag) TableName() string {
	return "tags"
}

type UserFavoriteTag struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	TagID     uint      `json:"tag_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserFavoriteTag) TableName() string {
	return "user_favorite_tags"
}

// AvailableTag 对应 user_available_tags 视图的行
type AvailableTag struct {
	TagID      uint    `json:"tag_id"`
	Name       string  `json:"name"`
	Color      *string `json:"color"`
	IsSystem   bool    `json:"is_system"`
	CreatedBy  *uint   `json:"created_by"`
	IsFavorite bool    `json:"is_favorite"`
}

type TagCreateRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color" validate:"required,hexcolor"`
}

type TagUpdateRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color" validate:"required,hexcolor"`
}
