package repository

import (
	"github.com/duomart-next/internal/models"

	"gorm.io/gorm"
)

// AccountMemberRepository 企业账户成员数据访问接口
type AccountMemberRepository interface {
	IsMember(accountID, userID uint) (bool, error)
	Add(member *models.AccountMember) error
	WithTx(tx *gorm.DB) AccountMemberRepository
}

// GormAccountMemberRepository GORM 实现
type GormAccountMemberRepository struct {
	db *gorm.DB
}

// NewAccountMemberRepository 创建企业账户成员仓库
func NewAccountMemberRepository(db *gorm.DB) *GormAccountMemberRepository {
	return &GormAccountMemberRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAccountMemberRepository) WithTx(tx *gorm.DB) AccountMemberRepository {
	if tx == nil {
		return r
	}
	return &GormAccountMemberRepository{db: tx}
}

// IsMember 判断用户是否属于企业账户
func (r *GormAccountMemberRepository) IsMember(accountID, userID uint) (bool, error) {
	if accountID == 0 || userID == 0 {
		return false, nil
	}
	var count int64
	if err := r.db.Model(&models.AccountMember{}).
		Where("account_id = ? AND user_id = ?", accountID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add 添加企业账户成员
func (r *GormAccountMemberRepository) Add(member *models.AccountMember) error {
	return r.db.Create(member).Error
}
