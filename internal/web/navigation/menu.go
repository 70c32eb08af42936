package navigation

import "github.com/adcu-admin/adcu-admin/internal/auth"

// MenuItem is one entry of the side menu.
type MenuItem struct {
	Title   string
	URL     string
	Section string
}

// ResourceMenuItem describes the list page of a resource.
type ResourceMenuItem struct {
	MenuItem
	Resource auth.Resource
}

// resourceMenu is the side menu in display order.
var resourceMenu = []ResourceMenuItem{ //nolint:gochecknoglobals
	{MenuItem{Title: "Usuarios", URL: "/users", Section: "users"}, auth.ResourceUsers},
	{MenuItem{Title: "Contratos", URL: "/contracts", Section: "contracts"}, auth.ResourceContracts},
	{MenuItem{Title: "Documentos", URL: "/documents", Section: "documents"}, auth.ResourceDocuments},
	{MenuItem{Title: "Datos de análisis", URL: "/analysis-data", Section: "analysisData"}, auth.ResourceAnalysisData},
}

// ResourceItems returns the resource entries of the menu in display order.
func ResourceItems() []ResourceMenuItem {
	return append([]ResourceMenuItem(nil), resourceMenu...)
}

// Menu returns the entries whose list page perms may read. The dashboard is always first.
func Menu(perms auth.Permissions) []MenuItem {
	items := []MenuItem{{Title: "Inicio", URL: "/dashboard", Section: "dashboard"}}

	for _, item := range resourceMenu {
		if perms[item.Resource][auth.ActionRead] {
			items = append(items, item.MenuItem)
		}
	}

	return items
}

// WithMenu attaches the menu for perms to the context.
func (c *Context) WithMenu(perms auth.Permissions) *Context {
	c.Menu = Menu(perms)

	return c
}
