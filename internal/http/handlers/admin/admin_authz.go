package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/duomart-next/internal/authz"
	handlershared "github.com/duomart-next/internal/http/handlers/shared"
	"github.com/duomart-next/internal/http/response"
	"github.com/duomart-next/internal/models"

	"github.com/gin-gonic/gin"
)

type setAdminRolesRequest struct {
	Roles []string `json:"roles"`
}

// GetAuthzMe 当前管理员的角色与生效策略
func (h *Handler) GetAuthzMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.AdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	policies, err := h.AuthzService.AdminPolicies(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"admin_id": adminID,
		"is_super": handlershared.IsSuperAdmin(c),
		"roles":    roles,
		"policies": policies,
	})
}

// ListAuthzRoles 已登记角色
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.Roles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, roles)
}

// GetAuthzAdminRoles 指定管理员的角色
func (h *Handler) GetAuthzAdminRoles(c *gin.Context) {
	target, ok := h.loadTargetAdmin(c, "error.internal")
	if !ok {
		return
	}
	roles, err := h.AuthzService.AdminRoles(target.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, roles)
}

// SetAuthzAdminRoles 覆盖指定管理员的角色
func (h *Handler) SetAuthzAdminRoles(c *gin.Context) {
	target, ok := h.loadTargetAdmin(c, "error.authz_update_failed")
	if !ok {
		return
	}
	var req setAdminRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthzService.SetAdminRoles(target.ID, req.Roles); err != nil {
		switch {
		case errors.Is(err, authz.ErrUnknownRole), errors.Is(err, authz.ErrInvalidRole):
			respondError(c, response.CodeBadRequest, "error.authz_role_invalid", err)
		default:
			respondError(c, response.CodeInternal, "error.authz_update_failed", err)
		}
		return
	}

	handlershared.RequestLog(c).Infow("admin_authz_admin_roles_updated",
		"target_admin_id", target.ID,
		"target_username", target.Username,
		"roles", req.Roles,
	)
	response.Success(c, nil)
}

// loadTargetAdmin 解析路径中的管理员 ID 并确认其存在
func (h *Handler) loadTargetAdmin(c *gin.Context, failKey string) (*models.Admin, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.admin_id_invalid", nil)
		return nil, false
	}
	admin, err := h.AdminRepo.GetByID(uint(id))
	if err != nil {
		respondError(c, response.CodeInternal, failKey, err)
		return nil, false
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return nil, false
	}
	return admin, true
}
