package dto

// DashboardStats backs the four cards at the top of the admin dashboard.
type DashboardStats struct {
	TotalUsers     int64 `json:"totalUsers"`
	ActiveRoutes   int64 `json:"activeRoutes"`
	PendingReports int64 `json:"pendingReports"`
	SearchesToday  int64 `json:"searchesToday"`
}
