package entity

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// 用户角色
const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleInspector = "inspector"
	RoleViewer    = "viewer"
)

// User 系统用户
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:64;not null;uniqueIndex"`
	Email        string    `json:"email" gorm:"size:120;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Role         string    `json:"role" gorm:"size:20;not null;default:inspector"`
	Department   *string   `json:"department" gorm:"size:50"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// SetPassword 写入bcrypt哈希
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword 校验明文密码
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsAdmin admin角色
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager admin或manager角色
func (u *User) IsManager() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}
