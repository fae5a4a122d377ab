package router

import (
	"sort"
	"strings"

	"github.com/duomart-next/internal/authz"

	"github.com/gin-gonic/gin"
)

const adminRoutePrefix = "/api/v1/admin/"

// permissionEntry 后台可授权的接口
type permissionEntry struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// permissionCatalog 从已注册路由生成后台权限目录，按模块、对象、方法排序
func permissionCatalog(routes gin.RoutesInfo) []permissionEntry {
	entries := make([]permissionEntry, 0, len(routes))
	seen := make(map[string]bool, len(routes))
	for _, route := range routes {
		method := strings.ToUpper(strings.TrimSpace(route.Method))
		if !strings.HasPrefix(route.Path, adminRoutePrefix) || route.Path == adminRoutePrefix+"login" {
			continue
		}
		if method == "" || method == "HEAD" || method == "OPTIONS" {
			continue
		}
		object := authz.NormalizeObject(route.Path)
		permission := method + ":" + object
		if seen[permission] {
			continue
		}
		seen[permission] = true
		entries = append(entries, permissionEntry{
			Module:     permissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		if a.Object != b.Object {
			return a.Object < b.Object
		}
		return a.Method < b.Method
	})
	return entries
}

// permissionModule /admin/<module>/... 取 module；pricing-strategies 归入 products
func permissionModule(object string) string {
	segments := strings.Split(strings.Trim(object, "/"), "/")
	if len(segments) < 2 || segments[0] != "admin" {
		if segments[0] == "" {
			return "system"
		}
		return segments[0]
	}
	if segments[1] == "pricing-strategies" {
		return "products"
	}
	return segments[1]
}
