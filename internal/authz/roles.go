package authz

import "fmt"

// 预置角色名
const (
	RolePricingAuditor = "pricing_auditor"
	RoleCatalogEditor  = "catalog_editor"
	RolePricingManager = "pricing_manager"
	RoleAccessManager  = "access_manager"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 预置角色矩阵，父角色需排在子角色之前
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: RolePricingAuditor,
			Policies: []Policy{
				{Object: "/admin/products", Action: "GET"},
				{Object: "/admin/products/:id", Action: "GET"},
				{Object: "/admin/categories", Action: "GET"},
				{Object: "/admin/products/:id/pricing-strategies", Action: "GET"},
				{Object: "/admin/products/:id/competitive-analysis", Action: "GET"},
			},
		},
		{
			Role:     RoleCatalogEditor,
			Inherits: []string{RolePricingAuditor},
			Policies: []Policy{
				{Object: "/admin/products", Action: "POST"},
				{Object: "/admin/categories", Action: "POST"},
			},
		},
		{
			Role:     RolePricingManager,
			Inherits: []string{RoleCatalogEditor},
			Policies: []Policy{
				{Object: "/admin/products/:id/pricing-strategies", Action: "POST"},
				{Object: "/admin/pricing-strategies/:id", Action: "*"},
				{Object: "/admin/products/:id/volume-discounts", Action: "PUT"},
				{Object: "/admin/products/:id/pricing-summary/recompute", Action: "POST"},
			},
		},
		{
			Role: RoleAccessManager,
			Policies: []Policy{
				{Object: "/admin/authz/*", Action: "*"},
			},
		},
	}
}

// GrantRolePolicy 登记角色并授予一条策略
func (s *Service) GrantRolePolicy(role, object, action string) error {
	normalized, err := s.ensureRole(role)
	if err != nil {
		return err
	}
	action = NormalizeAction(action)
	if action == "" {
		return fmt.Errorf("action is required")
	}
	if _, err := s.enforcer.AddPolicy(normalized, NormalizeObject(object), action); err != nil {
		return fmt.Errorf("grant policy failed: %w", err)
	}
	return nil
}

// BootstrapBuiltinRoles 写入预置角色，已存在的规则保持不变
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.ensureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := s.ensureRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link %s to %s failed: %w", role, parentRole, err)
			}
		}
		for _, policy := range seed.Policies {
			if err := s.GrantRolePolicy(role, policy.Object, policy.Action); err != nil {
				return fmt.Errorf("seed %s failed: %w", role, err)
			}
		}
	}
	return nil
}

func (s *Service) ensureRole(role string) (string, error) {
	normalized, err := NormalizeRole(role)
	if err != nil {
		return "", err
	}
	if err := s.ready(); err != nil {
		return "", err
	}
	if _, err := s.enforcer.AddNamedGroupingPolicy("g", normalized, roleAnchor); err != nil {
		return "", fmt.Errorf("register role failed: %w", err)
	}
	return normalized, nil
}
