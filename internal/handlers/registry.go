package handlers

type AppHandlers struct {
	AuthHandler        *AuthHandler
	PropertyHandler    *PropertyHandler
	ApplicationHandler *ApplicationHandler
	ViewingHandler     *ViewingHandler
	FavoriteHandler    *FavoriteHandler
	DashboardHandler   *DashboardHandler
	AdminHandler       *AdminHandler
}
