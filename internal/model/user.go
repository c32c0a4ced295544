package model

import (
	"time"
)

// User 用户模型（账号在系统外创建，这里只读）
type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name" gorm:"not null"`
	Email        string    `json:"email" db:"email" gorm:"unique;not null"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"not null"`
	IsActive     bool      `json:"is_active" db:"is_active" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Identity 登录成功后返回给客户端的身份信息
type Identity struct {
	ID    int    `json:"id" toml:"id"`
	Name  string `json:"name" toml:"name"`
	Email string `json:"email" toml:"email"`
}

// Identity 提取公开身份字段
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email}
}
