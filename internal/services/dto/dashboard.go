package dto

import "realestate_backend/internal/models"

type DashboardStats struct {
	PropertyCount        int64 `json:"property_count"`
	PendingViewings      int64 `json:"pending_viewings"`
	PendingApplications  int64 `json:"pending_applications"`
	FavoritesCount       int64 `json:"favorites_count"`
	ViewingRequestsCount int64 `json:"viewing_requests_count"`
	ApplicationsCount    int64 `json:"applications_count"`
}

type AdminDashboardStats struct {
	PendingCount      int64                     `json:"pending_count"`
	TotalUsers        int64                     `json:"total_users"`
	ActiveUsers       int64                     `json:"active_users"`
	UsersByRole       map[models.UserRole]int64 `json:"users_by_role"`
	PendingProperties []*PropertyResponse       `json:"pending_properties"`
}
