package service

import (
	"github.com/duomart-next/internal/models"
	"github.com/duomart-next/internal/repository"
)

// Actor 发起操作的身份（登录用户或管理员）
type Actor struct {
	UserID  uint
	AdminID uint
}

// UserActor 用户身份
func UserActor(userID uint) Actor {
	return Actor{UserID: userID}
}

// AdminActor 管理员身份
func AdminActor(adminID uint) Actor {
	return Actor{AdminID: adminID}
}

// IsAdmin 是否管理员（路由层已完成 RBAC 校验）
func (a Actor) IsAdmin() bool {
	return a.AdminID != 0
}

// authorizeProduct 商品定价管理权限：管理员、卖家本人或其企业账户成员
func authorizeProduct(actor Actor, product *models.Product, memberRepo repository.AccountMemberRepository) error {
	if product == nil {
		return ErrProductNotFound
	}
	if actor.IsAdmin() {
		return nil
	}
	if actor.UserID == 0 {
		return ErrForbidden
	}
	if product.OwnerID != 0 && product.OwnerID == actor.UserID {
		return nil
	}
	if product.AccountID != nil && memberRepo != nil {
		ok, err := memberRepo.IsMember(*product.AccountID, actor.UserID)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return ErrForbidden
}
