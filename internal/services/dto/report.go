package dto

// SubmitReportRequest - commuter issue report. Submitter identity comes from
// the session, not the payload.
type SubmitReportRequest struct {
	IssueType     string `json:"issueType" binding:"required"`
	Location      string `json:"location" binding:"required"`
	AffectedRoute string `json:"affectedRoute"`
	Description   string `json:"description" binding:"required"`
}

// SetReportStatusRequest - admin triage decision.
type SetReportStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"is-report-status"`
}

// PendingCountResponse feeds the sidebar polling badge.
type PendingCountResponse struct {
	Count int64 `json:"count"`
}
