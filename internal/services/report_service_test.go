package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sakay_backend/internal/models"
	"sakay_backend/internal/services/dto"
	"sakay_backend/pkg/apperrors"
)

func submitTestReport(t *testing.T, svc ReportService, submitter string) *models.Report {
	t.Helper()
	report, err := svc.Submit(nil, submitter, &dto.SubmitReportRequest{
		IssueType:   "delay",
		Location:    "EDSA Ortigas",
		Description: "Bus stuck for 40 minutes",
	})
	require.NoError(t, err)
	return report
}

func TestSubmitReport_Defaults(t *testing.T) {
	svc := NewReportService(newFakeReportRepo())

	report := submitTestReport(t, svc, "")
	assert.Equal(t, "Anonymous", report.User)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.False(t, report.Timestamp.IsZero())

	named := submitTestReport(t, svc, "juan")
	assert.Equal(t, "juan", named.User)
}

func TestSetReportStatus_Transitions(t *testing.T) {
	repo := newFakeReportRepo()
	svc := NewReportService(repo)
	report := submitTestReport(t, svc, "juan")

	updated, err := svc.SetStatus(nil, report.ID, models.ReportStatusVerified)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusVerified, updated.Status)

	// Repeating the same decision is a no-op.
	again, err := svc.SetStatus(nil, report.ID, models.ReportStatusVerified)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusVerified, again.Status)

	// Flipping a settled decision is rejected.
	_, err = svc.SetStatus(nil, report.ID, models.ReportStatusRejected)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
	assert.Equal(t, 400, appErr.HTTPCode)

	// Settled reports cannot go back to pending either.
	_, err = svc.SetStatus(nil, report.ID, models.ReportStatusPending)
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestSetReportStatus_NotFound(t *testing.T) {
	svc := NewReportService(newFakeReportRepo())

	_, err := svc.SetStatus(nil, "missing", models.ReportStatusVerified)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestCountPending(t *testing.T) {
	repo := newFakeReportRepo()
	svc := NewReportService(repo)

	a := submitTestReport(t, svc, "juan")
	submitTestReport(t, svc, "maria")
	submitTestReport(t, svc, "pedro")

	count, err := svc.CountPending(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	_, err = svc.SetStatus(nil, a.ID, models.ReportStatusRejected)
	require.NoError(t, err)

	count, err = svc.CountPending(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
