package services

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	UserService        UserService
	PropertyService    PropertyService
	ApplicationService ApplicationService
	ViewingService     ViewingService
	FavoriteService    FavoriteService
	DashboardService   DashboardService
}
