package models

import "time"

// Report is a commuter-submitted issue awaiting admin triage.
// Status moves one way: pending -> verified or pending -> rejected.
type Report struct {
	BaseModel
	IssueType     string       `gorm:"not null" json:"issueType"`
	Location      string       `gorm:"not null" json:"location"`
	AffectedRoute string       `json:"affectedRoute,omitempty"`
	Description   string       `gorm:"not null" json:"description"`
	User          string       `gorm:"default:'Anonymous'" json:"user"`
	Status        ReportStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Timestamp     time.Time    `gorm:"default:now()" json:"timestamp"`
}
