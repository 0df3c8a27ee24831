package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	ActivePartners int `json:"active_partners"`
	TotalStartups  int `json:"total_startups"`

	TotalCollaborations      int `json:"total_collaborations"`
	CompletedCollaborations  int `json:"completed_collaborations"`  // COMPLETED + SELF_ACTIVATED
	RequestedCollaborations  int `json:"requested_collaborations"`  // REQUESTED + REVIEWING
	InProgressCollaborations int `json:"in_progress_collaborations"`

	AvgRating float64 `json:"avg_rating"` // 1 decimal

	// Últimas 5 colaboraciones por fecha de creación
	RecentCollaborations []CollaborationResponse `json:"recent_collaborations"`
}
