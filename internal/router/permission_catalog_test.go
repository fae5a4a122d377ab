package router

import (
	"testing"

	"github.com/gin-gonic/gin"
)

func TestPermissionCatalogSkipsLoginAndDuplicates(t *testing.T) {
	routes := gin.RoutesInfo{
		{Method: "POST", Path: "/api/v1/admin/login"},
		{Method: "GET", Path: "/api/v1/admin/products/:id"},
		{Method: "GET", Path: "/api/v1/admin/products/:id"},
		{Method: "PUT", Path: "/api/v1/admin/pricing-strategies/:id"},
		{Method: "GET", Path: "/api/v1/admin/authz/roles"},
		{Method: "GET", Path: "/api/v1/public/products"},
		{Method: "OPTIONS", Path: "/api/v1/admin/products"},
	}
	entries := permissionCatalog(routes)
	if len(entries) != 3 {
		t.Fatalf("want 3 entries, got %+v", entries)
	}
	if entries[0].Module != "authz" || entries[1].Module != "products" || entries[2].Module != "products" {
		t.Fatalf("unexpected module order: %+v", entries)
	}
	if entries[1].Object != "/admin/pricing-strategies/:id" || entries[1].Permission != "PUT:/admin/pricing-strategies/:id" {
		t.Fatalf("unexpected entry: %+v", entries[1])
	}
}

func TestPermissionModule(t *testing.T) {
	cases := map[string]string{
		"/admin/categories":             "categories",
		"/admin/authz/admins/:id/roles": "authz",
		"/":                             "system",
		"/other":                        "other",
	}
	for object, want := range cases {
		if got := permissionModule(object); got != want {
			t.Fatalf("permissionModule(%q) = %q, want %q", object, got, want)
		}
	}
}
