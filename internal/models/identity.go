package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin 管理员表
type Admin struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                         // 主键
	Username           string         `gorm:"uniqueIndex;not null" json:"username"`         // 管理员账号
	PasswordHash       string         `gorm:"not null" json:"-"`                            // 密码哈希
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                  // Token 版本
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                               // 该时间点前签发的 Token 失效
	IsSuper            bool           `gorm:"not null;default:false;index" json:"is_super"` // 是否超级管理员（免权限校验）
	LastLoginAt        *time.Time     `json:"last_login_at"`                                // 最后登录时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}

// User 用户表（买家与卖家共用）
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                      // 主键
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`                         // 邮箱
	PasswordHash       string         `gorm:"not null" json:"-"`                                         // 密码哈希
	DisplayName        string         `gorm:"default:''" json:"display_name"`                            // 昵称
	Locale             string         `gorm:"default:'zh-CN'" json:"locale"`                             // 语言偏好
	Status             string         `gorm:"default:'active'" json:"status"`                            // 账号状态
	CustomerType       string         `gorm:"type:varchar(40);not null;default:''" json:"customer_type"` // 客户类型（corporate/wholesale/vip）
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                               // Token 版本
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                                            // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time     `json:"last_login_at"`                                             // 最后登录时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// AccountMember 企业账户成员（成员可代为管理账户下商品的定价）
type AccountMember struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                              // 主键
	AccountID uint      `gorm:"not null;uniqueIndex:idx_account_member_user" json:"account_id"`    // 企业账户ID
	UserID    uint      `gorm:"not null;uniqueIndex:idx_account_member_user;index" json:"user_id"` // 用户ID
	Role      string    `gorm:"type:varchar(20);not null;default:'member'" json:"role"`            // 成员角色
	CreatedAt time.Time `json:"created_at"`                                                        // 创建时间
}

// TableName 指定表名
func (AccountMember) TableName() string {
	return "account_members"
}
