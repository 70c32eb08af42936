package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adcu-admin/adcu-admin/internal/auth"
)

func menuURLs(items []MenuItem) []string {
	urls := make([]string, 0, len(items))
	for _, item := range items {
		urls = append(urls, item.URL)
	}

	return urls
}

func TestMenu(t *testing.T) {
	tests := []struct {
		role auth.Role
		want []string
	}{
		{role: auth.RoleAdmin, want: []string{"/dashboard", "/users", "/contracts", "/documents", "/analysis-data"}},
		{role: auth.RoleStaff, want: []string{"/dashboard", "/users", "/contracts", "/documents", "/analysis-data"}},
		{role: auth.RoleContractor, want: []string{"/dashboard", "/documents"}},
		{role: auth.RoleNone, want: []string{"/dashboard"}},
	}

	for _, tc := range tests {
		t.Run(tc.role.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, menuURLs(Menu(auth.PermissionsFor(tc.role))))
		})
	}
}

func TestContext_WithMenu(t *testing.T) {
	ctx := NewContext("Documentos", "documents", "list").
		AddBreadcrumb("Inicio", "/dashboard", false).
		WithMenu(auth.PermissionsFor(auth.RoleContractor))

	assert.Len(t, ctx.Menu, 2)
	assert.True(t, ctx.IsSectionActive("documents"))
}
